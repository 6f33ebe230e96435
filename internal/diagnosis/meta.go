package diagnosis

import (
	"fmt"
	"math"
)

func buildMetaAnalysis(c ConstraintCategory, in Input) MetaAnalysis {
	return MetaAnalysis{
		RootCause:            rootCause(c, in),
		WhyThisMatters:       whyThisMatters(c),
		CascadingEffects:     cascadingEffects(c),
		WhatItUnlocks:        whatItUnlocks(c),
		SuccessMetrics:       successMetrics(c, in),
		PotentialRevenueLift: revenueLift[c],
	}
}

func rootCause(c ConstraintCategory, in Input) string {
	switch c {
	case Demand:
		if in.CAC > 500 {
			return fmt.Sprintf("Your customer acquisition cost ($%s) is high, suggesting an expensive channel or inefficient marketing. "+
				"Most leads either aren't qualified or require heavy nurturing.", fmtUSD(int64(in.CAC)))
		}
		return "Your business can deliver profitably, but you're not getting enough customer requests. " +
			"This is usually a marketing or channel problem—you're either not reaching the right people or not converting interest into sales."
	case Delivery:
		if in.Revenue > 1000000 {
			return fmt.Sprintf("You've achieved significant scale ($%.1fM) but can't add more customers without breaking the system. "+
				"This is a process, team, or infrastructure constraint—you need to systematize before you can scale further.", in.Revenue/1000000)
		}
		return "You have demand and can close deals, but can't fulfill them profitably. This is usually team capacity, " +
			"operational efficiency, or quality consistency—you're saying \"yes\" to business you can't deliver on."
	case Efficiency:
		return fmt.Sprintf("Your costs are eating %.0f%% of every revenue dollar, leaving margins too thin for reinvestment. "+
			"Even with perfect demand and delivery, low margins prevent growth investment and limit pricing power.", (1-in.Margin)*100)
	case Quality:
		return "Quality issues are creating negative word-of-mouth, limiting referrals, and preventing you from charging premium prices. " +
			"You're either losing customers to competitors or can't raise prices because quality inconsistency reduces perceived value."
	case Capital:
		return fmt.Sprintf("Your LTV ($%s) relative to CAC ($%s) creates a %.1f:1 ratio that makes growth unsustainable. "+
			"You're burning more cash acquiring customers than they generate over their lifetime.",
			fmtUSD(int64(in.LTV)), fmtUSD(int64(in.CAC)), ratioOrZero(in))
	case Retention:
		return fmt.Sprintf("Customers are churning too quickly, reducing LTV. Your LTV:CAC ratio of %.1f:1 is unsustainable "+
			"because customer lifetime is too short to justify acquisition spending.", ratioOrZero(in))
	case Pricing:
		return "You're undervalued in the market. Strong demand and good margins suggest customers would pay more. " +
			"You're either leaving revenue on the table or undercutting your positioning through low pricing."
	}
	panic("unknown constraint category: " + string(c))
}

func whyThisMatters(c ConstraintCategory) string {
	switch c {
	case Demand:
		return "The rest of your operation is ready to absorb more customers, so every dollar of effort spent on lead generation compounds."
	case Delivery:
		return "Demand you can't serve is revenue you've already paid to generate; fixing fulfillment converts existing pipeline into growth."
	case Efficiency:
		return "Margin is the fuel for every other fix—without breathing room, you can't invest in demand, delivery, or retention."
	case Quality:
		return "Quality drives referrals, retention, and pricing power at once; until it's consistent, every growth lever underperforms."
	case Capital:
		return "When unit economics are negative, growth accelerates losses—this has to be fixed before scaling anything else."
	case Retention:
		return "Every retained customer compounds LTV and lowers the acquisition burden; churn quietly cancels out your marketing spend."
	case Pricing:
		return "Price is the fastest lever in the business—a pricing fix flows straight to margin with no new costs."
	}
	panic("unknown constraint category: " + string(c))
}

func cascadingEffects(c ConstraintCategory) []string {
	switch c {
	case Demand:
		return []string{
			"Low customer volume limits economies of scale",
			"Can't justify team hires or investment in systems",
			"Revenue stays flat even if margins improve",
			"Low volume means high CAC percentage of revenue",
		}
	case Delivery:
		return []string{
			"Service quality suffers when overstretched",
			"Staff burnout leads to turnover and quality issues",
			"Can't take on better customers due to capacity limits",
			"Margins compress as you cut corners to keep up",
		}
	case Efficiency:
		return []string{
			"Can't afford customer success (higher churn)",
			"Can't invest in marketing (low lead volume)",
			"No breathing room for mistakes or growth experiments",
			"Pressure to cut costs further (race to bottom)",
		}
	case Quality:
		return []string{
			"High churn as customers switch to alternatives",
			"Can't raise prices or defend positioning",
			"Word-of-mouth turns negative",
			"Reputation damage makes future growth harder",
		}
	case Capital:
		return []string{
			"Growth becomes mathematically impossible",
			"Cash flow crisis despite revenue growth",
			"Can't invest in team, technology, or marketing",
			"Forced to choose between growth and survival",
		}
	case Retention:
		return []string{
			"Revenue is entirely dependent on new customer acquisition",
			"Unit economics deteriorate as churn accelerates",
			"High CAC isn't justified by short customer lifetime",
			"Business becomes fragile and unprofitable",
		}
	case Pricing:
		return []string{
			"Opportunity cost: leaving revenue on the table",
			"Attracts price-sensitive customers (high churn)",
			"Can't compete on value, forced to compete on price",
			"Limits ability to build premium positioning",
		}
	}
	panic("unknown constraint category: " + string(c))
}

func whatItUnlocks(c ConstraintCategory) []string {
	switch c {
	case Demand:
		return []string{
			"Higher revenue with same operational structure",
			"Ability to specialize (target better customers)",
			"Justified team expansion and process investment",
			"Faster path to profitability and scalability",
		}
	case Delivery:
		return []string{
			"Ability to take on more profitable customers",
			"Improved service quality and better retention",
			"Higher capacity = lower unit costs",
			"Opportunity to raise prices (less capacity constraint)",
		}
	case Efficiency:
		return []string{
			"Breathing room to invest in growth",
			"Higher take-home profit (better personal economics)",
			"Ability to survive downturns without panic",
			"Justified investment in team and systems",
		}
	case Quality:
		return []string{
			"Better retention and customer lifetime value",
			"Ability to raise prices based on value",
			"Positive word-of-mouth and referrals",
			"Sustainable, profitable growth trajectory",
		}
	case Capital:
		return []string{
			"Unit economics that allow sustainable growth",
			"Ability to invest in scaling without burning cash",
			"Improved cash flow and business stability",
			"Potential for outside capital if desired",
		}
	case Retention:
		return []string{
			"Predictable, recurring revenue stream",
			"Lower customer acquisition burden (LTV grows)",
			"Sustainable unit economics",
			"Capital efficiency improves dramatically",
		}
	case Pricing:
		return []string{
			"Significant revenue lift (10-30% depending on market)",
			"Attracts less price-sensitive, better customers",
			"Supports investment in quality and service",
			"Creates separation from low-cost competitors",
		}
	}
	panic("unknown constraint category: " + string(c))
}

var revenueLift = map[ConstraintCategory]string{
	Demand:     "25-40%",
	Delivery:   "20-35%",
	Efficiency: "20-30%",
	Quality:    "20-35%",
	Capital:    "30-50%",
	Retention:  "25-45%",
	Pricing:    "20-35%",
}

type successMetricBase struct {
	metric    string
	timeframe string
}

var successMetricBases = map[ConstraintCategory][]successMetricBase{
	Demand: {
		{"Monthly lead volume", "90 days"},
		{"CAC spend", "90 days"},
		{"Revenue growth rate", "6 months"},
		{"Pipeline value", "30 days"},
	},
	Delivery: {
		{"Capacity utilization", "90 days"},
		{"Service quality score", "90 days"},
		{"Delivery cycle time", "60 days"},
		{"Customer satisfaction", "90 days"},
	},
	Efficiency: {
		{"Net margin percentage", "6 months"},
		{"Cost per unit", "90 days"},
		{"Operating expense ratio", "6 months"},
		{"Cash runway", "ongoing"},
	},
	Quality: {
		{"Service quality rating", "90 days"},
		{"Customer retention rate", "6 months"},
		{"Referral rate", "6 months"},
		{"Net Promoter Score", "90 days"},
	},
	Capital: {
		{"LTV:CAC ratio", "90 days"},
		{"Monthly burn rate", "30 days"},
		{"Cash runway", "ongoing"},
		{"Unit economics breakeven", "6 months"},
	},
	Retention: {
		{"Monthly churn rate", "90 days"},
		{"Customer lifetime value", "6 months"},
		{"Repeat customer rate", "90 days"},
		{"Customer lifetime", "ongoing"},
	},
	Pricing: {
		{"Average price per customer", "30 days"},
		{"Revenue lift", "90 days"},
		{"Customer acquisition", "90 days"},
		{"Margin improvement", "6 months"},
	},
}

func successMetrics(c ConstraintCategory, in Input) []SuccessMetric {
	bases := successMetricBases[c]
	out := make([]SuccessMetric, 0, len(bases))
	for i, base := range bases {
		current, target := successMetricValues(c, i, in)
		out = append(out, SuccessMetric{
			Metric:    base.metric,
			Current:   current,
			Target:    target,
			Timeframe: base.timeframe,
		})
	}
	return out
}

// successMetricValues fills the current/target cells where the inputs give
// us real numbers; positions without a concrete value keep generic labels.
func successMetricValues(c ConstraintCategory, idx int, in Input) (string, string) {
	switch c {
	case Demand:
		if idx == 1 && in.CAC > 0 {
			return "$" + fmtUSD(int64(in.CAC)), "$" + fmtUSD(int64(in.CAC*0.6))
		}
	case Efficiency:
		if idx == 0 {
			return fmt.Sprintf("%.0f%%", in.Margin*100), fmt.Sprintf("%.0f%%", math.Min(in.Margin*100+15, 35))
		}
		if idx == 2 {
			return fmt.Sprintf("%.0f%%", (1-in.Margin)*100), "60-65%"
		}
	case Capital:
		if idx == 0 && in.CAC > 0 {
			return fmt.Sprintf("%.1f:1", in.LTV/in.CAC), "3:1 or better"
		}
	case Retention:
		if idx == 0 {
			return "10-15%", "2-5%"
		}
		if idx == 1 && in.LTV > 0 {
			return "$" + fmtUSD(int64(in.LTV)), "$" + fmtUSD(int64(in.LTV*2))
		}
	}
	return "Current state", "Target state"
}
