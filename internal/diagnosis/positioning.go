package diagnosis

import "fmt"

// positioningInsights inspects the optional (customer type, trigger,
// channel) context against the already-computed diagnosis. Each matching
// rule appends a paired strength/followup bullet; rules are not mutually
// exclusive and evaluation order is fixed.
func positioningInsights(primary ConstraintCategory, in Input) []string {
	var out []string
	add := func(strength, followup string) {
		out = append(out, "✓ "+strength, "→ "+followup)
	}

	if in.CustomerType == CustomerB2BEnterprise && in.CAC > 0 && in.CAC < 1000 {
		add("Enterprise buyers at a sub-$1,000 acquisition cost is unusually efficient",
			"Enterprise deals typically support much higher pricing than you are likely charging")
	}
	if in.CustomerType == CustomerB2CMass && in.Margin < 0.15 {
		add("Mass-market positioning explains the volume pressure on your economics",
			"Thin margins at mass-market scale leave no room for acquisition mistakes")
	}
	if in.CustomerType == CustomerB2CAffluent && primary == Pricing {
		add("Affluent customers are the segment most tolerant of premium pricing",
			"A premium tier test carries low risk with this customer base")
	}
	if in.CustomerType == CustomerB2BSMB && in.CAC > 500 {
		add("SMB buyers found you despite a high acquisition cost, so the offer resonates",
			fmt.Sprintf("A $%s CAC is heavy for SMB deal sizes; cheaper channels should exist", fmtUSD(int64(in.CAC))))
	}
	if in.CustomerTrigger == TriggerUrgentProblem {
		add("Urgent-problem buyers decide fast and shop less on price",
			"Urgency supports premium pricing and faster sales cycles than you may be assuming")
	}
	if in.CustomerTrigger == TriggerLifeEvent && primary == Demand {
		add("Life-event triggers make your buyers predictable and reachable",
			"Partnerships with the providers your customers see first are an underused channel")
	}
	if in.CustomerTrigger == TriggerOngoingPain && primary == Retention {
		add("An ongoing-pain trigger means the need recurs; retention is winnable",
			"A subscription or retainer structure fits recurring need better than one-off sales")
	}
	if in.AcquisitionChannel == ChannelReferrals && primary == Demand {
		add("Referral-led acquisition means your existing customers already sell for you",
			"A structured referral program usually outperforms an informal one by 2-3x")
	}
	if in.AcquisitionChannel == ChannelPaidAds && in.CAC > 500 {
		add("Paid acquisition is working well enough to produce customers",
			fmt.Sprintf("At $%s per customer, paid ads need close payback monitoring", fmtUSD(int64(in.CAC))))
	}
	if in.AcquisitionChannel == ChannelOutbound && in.LTV > 0 && in.LTV < 5000 {
		add("Outbound gives you direct control over who you target",
			"Outbound economics strain at sub-$5,000 LTV; reserve it for your best-fit segment")
	}

	return out
}
