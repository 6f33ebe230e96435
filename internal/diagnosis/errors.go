package diagnosis

import "fmt"

// InputError reports a request that failed validation before reaching the
// scoring pipeline.
type InputError struct {
	Field   string
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("invalid input: %s: %s", e.Field, e.Message)
}

func invalidInput(field, message string) error {
	return &InputError{Field: field, Message: message}
}

var validCustomerTypes = map[string]struct{}{
	CustomerB2BSMB: {}, CustomerB2BEnterprise: {}, CustomerB2CMass: {},
	CustomerB2CAffluent: {}, CustomerB2CNiche: {},
}

var validTriggers = map[string]struct{}{
	TriggerLifeEvent: {}, TriggerUrgentProblem: {}, TriggerPlannedPurchase: {},
	TriggerOngoingPain: {}, TriggerAspiration: {},
}

var validChannels = map[string]struct{}{
	ChannelReferrals: {}, ChannelPaidAds: {}, ChannelOrganic: {},
	ChannelPartnerships: {}, ChannelOutbound: {}, ChannelLocal: {},
}

// ValidateInput rejects malformed metrics before they can reach a template.
// PainPoint may be empty; the scorer is the fallback for that case.
func ValidateInput(in Input) error {
	if in.Revenue <= 0 {
		return invalidInput("revenue", "must be greater than zero")
	}
	if in.Margin < -1 || in.Margin > 1 {
		return invalidInput("margin", "must be between -1 and 1")
	}
	if in.CAC < 0 {
		return invalidInput("cac", "must not be negative")
	}
	if in.LTV < 0 {
		return invalidInput("ltv", "must not be negative")
	}
	if in.CustomerType != "" {
		if _, ok := validCustomerTypes[in.CustomerType]; !ok {
			return invalidInput("customerType", "unknown value "+in.CustomerType)
		}
	}
	if in.CustomerTrigger != "" {
		if _, ok := validTriggers[in.CustomerTrigger]; !ok {
			return invalidInput("customerTrigger", "unknown value "+in.CustomerTrigger)
		}
	}
	if in.AcquisitionChannel != "" {
		if _, ok := validChannels[in.AcquisitionChannel]; !ok {
			return invalidInput("acquisitionChannel", "unknown value "+in.AcquisitionChannel)
		}
	}
	return nil
}
