package diagnosis

// ConstraintCategory labels the dominant bottleneck limiting a business's
// growth. The set is closed; every generator in this package switches
// exhaustively over it.
type ConstraintCategory string

const (
	Demand     ConstraintCategory = "demand"
	Delivery   ConstraintCategory = "delivery"
	Efficiency ConstraintCategory = "efficiency"
	Quality    ConstraintCategory = "quality"
	Capital    ConstraintCategory = "capital"
	Retention  ConstraintCategory = "retention"
	Pricing    ConstraintCategory = "pricing"
)

// AllConstraints fixes the evaluation order everywhere the pipeline iterates
// over categories. Tie-breaks in the scorer resolve to the earliest entry.
var AllConstraints = []ConstraintCategory{
	Demand,
	Delivery,
	Efficiency,
	Quality,
	Capital,
	Retention,
	Pricing,
}

// Valid reports whether c is one of the seven known categories.
func (c ConstraintCategory) Valid() bool {
	switch c {
	case Demand, Delivery, Efficiency, Quality, Capital, Retention, Pricing:
		return true
	}
	return false
}

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
)

// Metadata is the static display information for a category.
type Metadata struct {
	Title            string   `json:"title"`
	Emoji            string   `json:"emoji"`
	ShortDescription string   `json:"shortDescription"`
	Severity         Severity `json:"severity"`
}

func MetadataFor(c ConstraintCategory) Metadata {
	switch c {
	case Demand:
		return Metadata{Title: "Demand", Emoji: "📈", ShortDescription: "Not enough customers coming through the door", Severity: SeverityHigh}
	case Delivery:
		return Metadata{Title: "Delivery", Emoji: "⚙️", ShortDescription: "Can't fulfill demand at scale", Severity: SeverityHigh}
	case Efficiency:
		return Metadata{Title: "Efficiency", Emoji: "📊", ShortDescription: "Margins too thin to invest in growth", Severity: SeverityCritical}
	case Quality:
		return Metadata{Title: "Quality", Emoji: "⭐", ShortDescription: "Service/product quality limiting growth", Severity: SeverityHigh}
	case Capital:
		return Metadata{Title: "Capital", Emoji: "💰", ShortDescription: "Unit economics don't work - burning cash", Severity: SeverityCritical}
	case Retention:
		return Metadata{Title: "Retention", Emoji: "🔄", ShortDescription: "Customers leaving too quickly", Severity: SeverityHigh}
	case Pricing:
		return Metadata{Title: "Pricing", Emoji: "💎", ShortDescription: "Undervalued relative to market", Severity: SeverityMedium}
	}
	// The category set is closed and validated at the boundary.
	panic("unknown constraint category: " + string(c))
}

// Positioning enums. Presence of any of the three fields on an Input
// triggers the positioning refinement.
const (
	CustomerB2BSMB        = "b2b_smb"
	CustomerB2BEnterprise = "b2b_enterprise"
	CustomerB2CMass       = "b2c_mass"
	CustomerB2CAffluent   = "b2c_affluent"
	CustomerB2CNiche      = "b2c_niche"

	TriggerLifeEvent       = "life_event"
	TriggerUrgentProblem   = "urgent_problem"
	TriggerPlannedPurchase = "planned_purchase"
	TriggerOngoingPain     = "ongoing_pain"
	TriggerAspiration      = "aspiration"

	ChannelReferrals    = "referrals"
	ChannelPaidAds      = "paid_ads"
	ChannelOrganic      = "organic"
	ChannelPartnerships = "partnerships"
	ChannelOutbound     = "outbound"
	ChannelLocal        = "local"
)

// Input carries one request's worth of self-reported business metrics.
// It is immutable once built; the pipeline copies what it keeps.
type Input struct {
	Revenue   float64 `json:"revenue"`
	Margin    float64 `json:"margin"`
	CAC       float64 `json:"cac"`
	LTV       float64 `json:"ltv"`
	PainPoint string  `json:"painPoint"`
	Vertical  string  `json:"vertical,omitempty"`

	CustomerType       string `json:"customerType,omitempty"`
	CustomerTrigger    string `json:"customerTrigger,omitempty"`
	AcquisitionChannel string `json:"acquisitionChannel,omitempty"`
}

// Metrics is the snapshot of inputs echoed back with a diagnosis.
type Metrics struct {
	Revenue   float64 `json:"revenue"`
	Margin    float64 `json:"margin"`
	CAC       float64 `json:"cac"`
	LTV       float64 `json:"ltv"`
	PainPoint string  `json:"painPoint"`
}

type SuccessMetric struct {
	Metric    string `json:"metric"`
	Current   string `json:"current"`
	Target    string `json:"target"`
	Timeframe string `json:"timeframe"`
}

type MetaAnalysis struct {
	RootCause            string          `json:"rootCause"`
	WhyThisMatters       string          `json:"whyThisMatters"`
	CascadingEffects     []string        `json:"cascadingEffects"`
	WhatItUnlocks        []string        `json:"whatItUnlocks"`
	SuccessMetrics       []SuccessMetric `json:"successMetrics"`
	PotentialRevenueLift string          `json:"potentialRevenueLift"`
}

type Alternative struct {
	Constraint  ConstraintCategory `json:"constraint"`
	Probability int                `json:"probability"`
	Reasoning   string             `json:"reasoning"`
}

type PositioningContext struct {
	CustomerType       string `json:"customerType,omitempty"`
	CustomerTrigger    string `json:"customerTrigger,omitempty"`
	AcquisitionChannel string `json:"acquisitionChannel,omitempty"`
}

// Diagnosis is the full output of the pipeline. All fields are plain data
// so the result serializes cleanly for storage and transport.
type Diagnosis struct {
	PrimaryConstraint      ConstraintCategory  `json:"primaryConstraint"`
	Confidence             int                 `json:"confidence"`
	Explanation            string              `json:"explanation"`
	Reasoning              []string            `json:"reasoning"`
	Metrics                Metrics             `json:"metrics"`
	MetaAnalysis           MetaAnalysis        `json:"metaAnalysis"`
	AlternativeConstraints []Alternative       `json:"alternativeConstraints"`
	NextSteps              []string            `json:"nextSteps"`
	PositioningContext     *PositioningContext `json:"positioningContext,omitempty"`
}
