package playbook

import (
	"fmt"

	"github.com/growthphysics/consulting-os/internal/diagnosis"
)

// roadmap returns the three-phase 90-day plan for a constraint. Phases are
// fixed content; personalization happens in the metrics and narrative.
func roadmap(c diagnosis.ConstraintCategory) []RoadmapPhase {
	switch c {
	case diagnosis.Demand:
		return []RoadmapPhase{
			{
				Phase:     "Phase 1: Channel Audit (Days 1-30)",
				Timeframe: "30 days",
				Objectives: []string{
					"Understand current customer acquisition sources",
					"Calculate ROI for each channel",
					"Identify high-potential channels",
				},
				Actions: []string{
					"Track all customer sources for 30 days",
					"Calculate CAC for each channel",
					"Interview 10+ customers about discovery process",
					"Identify your top 3 channels",
				},
				SuccessCriteria: []string{"Complete data on CAC by channel", "Clear understanding of what works and what doesn't"},
				Risks:           []string{"Data collection incomplete", "Attribution challenges for multi-touch sales"},
			},
			{
				Phase:      "Phase 2: Quick Wins (Days 31-90)",
				Timeframe:  "60 days",
				Objectives: []string{"Double down on best channels", "Test 1-2 new channels", "Build repeatable process"},
				Actions: []string{
					"2x budget to your best-performing channel",
					"A/B test messaging/positioning",
					"Test one new channel (referral program, content, paid ads)",
					"Hire or allocate time to manage acquisition",
				},
				SuccessCriteria: []string{"Lead flow increases 50%+", "New channel shows promise"},
				Risks:           []string{"Channel saturation", "Quality degradation with scale"},
			},
			{
				Phase:      "Phase 3: Systematize (Days 91-180)",
				Timeframe:  "90 days",
				Objectives: []string{"Build predictable lead generation machine", "Establish monthly targets", "Plan for scaling"},
				Actions: []string{
					"Document lead generation process",
					"Create monthly lead targets",
					"Build sales funnel analytics",
					"Plan team expansion for Q2",
				},
				SuccessCriteria: []string{"Monthly lead volume increases 100%+", "Predictable pipeline"},
				Risks:           []string{"Inability to scale channel", "Team capacity limits"},
			},
		}
	case diagnosis.Delivery:
		return []RoadmapPhase{
			{
				Phase:      "Phase 1: Process Audit (Days 1-30)",
				Timeframe:  "30 days",
				Objectives: []string{"Map current delivery process", "Identify bottlenecks", "Find quick wins"},
				Actions: []string{
					"Document end-to-end delivery process",
					"Time each step",
					"Identify the 3 biggest bottlenecks",
					"Get team input on pain points",
				},
				SuccessCriteria: []string{"Clear process map", "Bottlenecks identified"},
				Risks:           []string{"Process documentation resistance from team"},
			},
			{
				Phase:      "Phase 2: Systematize (Days 31-90)",
				Timeframe:  "60 days",
				Objectives: []string{"Eliminate bottlenecks", "Build systems", "Improve speed"},
				Actions: []string{
					"Automate or eliminate manual bottleneck steps",
					"Create templates and checklists",
					"Train team on new process",
					"Measure improvement metrics",
				},
				SuccessCriteria: []string{"Speed increased 30%+", "Quality maintained or improved"},
				Risks:           []string{"Team resistance to change", "Process not accounting for edge cases"},
			},
			{
				Phase:      "Phase 3: Scale (Days 91-180)",
				Timeframe:  "90 days",
				Objectives: []string{"Increase capacity 50%", "Maintain quality", "Build team"},
				Actions: []string{
					"Hire additional capacity",
					"Scale systems for new team members",
					"Implement quality controls",
					"Plan for multi-team structure",
				},
				SuccessCriteria: []string{"Revenue capacity increased 50%+", "Quality scores at 4.5+"},
				Risks:           []string{"Training overhead slows delivery", "Quality drops with scale"},
			},
		}
	case diagnosis.Efficiency:
		return []RoadmapPhase{
			{
				Phase:      "Phase 1: Cost Audit (Days 1-30)",
				Timeframe:  "30 days",
				Objectives: []string{"Understand cost structure", "Identify waste", "Find quick wins"},
				Actions: []string{
					"Create detailed cost breakdown",
					"Identify fixed vs. variable costs",
					"Find the 3 biggest cost drains",
					"Calculate cost per customer",
				},
				SuccessCriteria: []string{"Complete cost understanding", "Quick wins identified"},
				Risks:           []string{"Incomplete data", "Difficult to attribute costs"},
			},
			{
				Phase:      "Phase 2: Quick Wins (Days 31-90)",
				Timeframe:  "60 days",
				Objectives: []string{"Improve margins 10-15%", "Find operational efficiencies"},
				Actions: []string{
					"Implement one quick win (renegotiate supplier, reduce waste, etc.)",
					"Optimize labor allocation",
					"Eliminate low-margin customer segments",
					"Test pricing increase on new customers",
				},
				SuccessCriteria: []string{"Margins improve 10%+", "Cost per customer decreases"},
				Risks:           []string{"Changes impact quality", "Customer pushback on price"},
			},
			{
				Phase:      "Phase 3: Systemize (Days 91-180)",
				Timeframe:  "90 days",
				Objectives: []string{"Build sustainable margins", "Scale profitably"},
				Actions: []string{
					"Build cost management dashboard",
					"Train team on cost consciousness",
					"Implement monthly cost review process",
					"Plan for margin expansion at scale",
				},
				SuccessCriteria: []string{"Margins stable at 20%+", "Cost trend improving"},
				Risks:           []string{"Team cost-cutting impacts quality", "Difficult to maintain discipline"},
			},
		}
	case diagnosis.Quality:
		return []RoadmapPhase{
			{
				Phase:      "Phase 1: Measure (Days 1-30)",
				Timeframe:  "30 days",
				Objectives: []string{"Establish quality baseline", "Get customer feedback", "Find problem areas"},
				Actions: []string{
					"Create quality scorecard",
					"Survey 20+ customers about satisfaction",
					"Do exit interviews with churned customers",
					"Identify top complaints",
				},
				SuccessCriteria: []string{"Baseline quality score established", "Root causes identified"},
				Risks:           []string{"Uncomfortable feedback", "Small sample size"},
			},
			{
				Phase:      "Phase 2: Fix Critical Issues (Days 31-90)",
				Timeframe:  "60 days",
				Objectives: []string{"Address top quality complaints", "Improve consistency"},
				Actions: []string{
					"Fix the #1 quality complaint",
					"Create quality standards/checklist",
					"Train team on quality expectations",
					"Implement quality control process",
				},
				SuccessCriteria: []string{"Quality score improves 20%+", "Top complaint resolved"},
				Risks:           []string{"Quick fix causes new problems", "Team execution inconsistent"},
			},
			{
				Phase:      "Phase 3: Systematize (Days 91-180)",
				Timeframe:  "90 days",
				Objectives: []string{"Consistent quality across team", "Build quality culture"},
				Actions: []string{
					"Build ongoing quality measurement",
					"Create incentives for quality",
					"Train new team members on quality",
					"Establish quality as competitive advantage",
				},
				SuccessCriteria: []string{"Quality score reaches 4.5+", "Consistency across team"},
				Risks:           []string{"Quality culture doesn't stick", "Hard to maintain as team grows"},
			},
		}
	case diagnosis.Capital:
		return []RoadmapPhase{
			{
				Phase:      "Phase 1: Diagnose (Days 1-30)",
				Timeframe:  "30 days",
				Objectives: []string{"Understand broken unit economics", "Find root cause"},
				Actions: []string{
					"Calculate detailed customer cohort economics",
					"Understand customer payback timeline",
					"Identify where the losses are (CAC too high, LTV too low, or both)",
					"Analyze by customer segment",
				},
				SuccessCriteria: []string{"Clear understanding of unit economics problem", "Root cause identified"},
				Risks:           []string{"Incomplete data", "Blended numbers hide real problem"},
			},
			{
				Phase:      "Phase 2: Quick Wins (Days 31-90)",
				Timeframe:  "60 days",
				Objectives: []string{"Improve unit economics", "Reduce burn"},
				Actions: []string{
					"If CAC problem: cut inefficient channels, reduce customer acquisition",
					"If LTV problem: improve retention, reduce churn",
					"If both: optimize both simultaneously",
					"Monitor breakeven point daily",
				},
				SuccessCriteria: []string{"Unit economics improve 20%+", "Path to breakeven visible"},
				Risks:           []string{"Cutting growth too aggressively", "Root cause misdiagnosis"},
			},
			{
				Phase:      "Phase 3: Sustainable Growth (Days 91-180)",
				Timeframe:  "90 days",
				Objectives: []string{"Reach breakeven", "Plan for profitable growth"},
				Actions: []string{
					"Hit monthly profitability targets",
					"Build financial modeling",
					"Plan growth at profitable unit economics",
					"Consider outside capital once profitable",
				},
				SuccessCriteria: []string{"Unit economics reach breakeven", "Monthly profitability achieved"},
				Risks:           []string{"Unexpected market changes", "Execution challenges"},
			},
		}
	case diagnosis.Retention:
		return []RoadmapPhase{
			{
				Phase:      "Phase 1: Understand Churn (Days 1-30)",
				Timeframe:  "30 days",
				Objectives: []string{"Measure churn", "Understand why customers leave", "Find patterns"},
				Actions: []string{
					"Calculate monthly churn rate",
					"Do exit interviews with last 10 churned customers",
					"Analyze churn by customer cohort",
					`Identify the "churn cliff" (when customers leave)`,
				},
				SuccessCriteria: []string{"Churn rate measured", "Reasons for churn understood"},
				Risks:           []string{"Incomplete churn data", "Difficult to reach churned customers"},
			},
			{
				Phase:      "Phase 2: Quick Win (Days 31-90)",
				Timeframe:  "60 days",
				Objectives: []string{"Reduce churn 20-30%", "Test retention tactic"},
				Actions: []string{
					"Improve onboarding (most impactful retention lever)",
					"Implement monthly check-in with customers",
					"Proactively reach out before churn cliff",
					"Test retention offer for at-risk customers",
				},
				SuccessCriteria: []string{"Churn decreases 20%+", "Customer feedback improves"},
				Risks:           []string{"Tactic only works for some customers", "Team execution inconsistent"},
			},
			{
				Phase:      "Phase 3: Systemize (Days 91-180)",
				Timeframe:  "90 days",
				Objectives: []string{"Sustained churn reduction", "Build retention culture"},
				Actions: []string{
					"Implement ongoing customer success program",
					"Track retention metrics weekly",
					"Build team accountability for retention",
					"Develop proactive retention playbook",
				},
				SuccessCriteria: []string{"Churn stable at 2-5%", "LTV increases significantly"},
				Risks:           []string{"Hard to sustain focus on retention", "New problems emerge"},
			},
		}
	case diagnosis.Pricing:
		return []RoadmapPhase{
			{
				Phase:      "Phase 1: Research (Days 1-30)",
				Timeframe:  "30 days",
				Objectives: []string{"Understand pricing tolerance", "Test willingness to pay"},
				Actions: []string{
					"Survey 30+ customers: would you pay 20-30% more?",
					"Research competitor pricing",
					"Understand value perception",
					"Plan premium tier structure",
				},
				SuccessCriteria: []string{"Pricing research complete", "Customer willingness confirmed"},
				Risks:           []string{"Customers won't pay more", "Competitive pressure"},
			},
			{
				Phase:      "Phase 2: Test (Days 31-90)",
				Timeframe:  "60 days",
				Objectives: []string{"Test new pricing", "Measure impact"},
				Actions: []string{
					"Raise prices 10-15% on new customers only",
					"Create premium tier for early-adopters",
					"Measure conversion rate impact",
					"Collect customer feedback",
				},
				SuccessCriteria: []string{"Prices implemented on new customers", "Minimal churn from test"},
				Risks:           []string{"Customer backlash", "Sales decline"},
			},
			{
				Phase:      "Phase 3: Optimize (Days 91-180)",
				Timeframe:  "90 days",
				Objectives: []string{"Maximize pricing power", "Establish premium positioning"},
				Actions: []string{
					"Raise prices on existing customers (2-3% gradual or on renewal)",
					"Establish tiered pricing (good/better/best)",
					"Market premium positioning",
					"Build brand around value, not price",
				},
				SuccessCriteria: []string{"Prices increased 15-30%", "Margin expansion significant"},
				Risks:           []string{"Customer retention challenges", "Competitive response"},
			},
		}
	}
	return nil
}

func keyMetrics(c diagnosis.ConstraintCategory, in diagnosis.Input) []KeyMetric {
	switch c {
	case diagnosis.Demand:
		leadCurrent, leadTarget := "50+", "150+"
		switch {
		case in.Revenue < 300000:
			leadCurrent, leadTarget = "5-10", "15-20"
		case in.Revenue < 1000000:
			leadCurrent, leadTarget = "15-25", "40-60"
		}
		return []KeyMetric{
			{
				Name:        "Monthly Lead Volume",
				Current:     leadCurrent,
				Target:      leadTarget,
				Measurement: "Count of qualified leads per month",
				Frequency:   "Weekly",
			},
			{
				Name:        "Customer Acquisition Cost (CAC)",
				Current:     fmtUSD(in.CAC),
				Target:      fmtUSD(in.CAC * 0.6),
				Measurement: "Total acquisition spend / new customers",
				Frequency:   "Monthly",
			},
			{
				Name:        "Sales Conversion Rate",
				Current:     "20-30%",
				Target:      "40-50%",
				Measurement: "Leads closed / total leads",
				Frequency:   "Monthly",
			},
		}
	case diagnosis.Delivery:
		return []KeyMetric{
			{
				Name:        "Fulfillment Time",
				Current:     "30+ days",
				Target:      "14-21 days",
				Measurement: "Days from sale to delivery",
				Frequency:   "Weekly",
			},
			{
				Name:        "Team Utilization",
				Current:     "70-80%",
				Target:      "90%+",
				Measurement: "Billable hours / available hours",
				Frequency:   "Weekly",
			},
			{
				Name:        "Quality Score",
				Current:     "3.5/5",
				Target:      "4.5+/5",
				Measurement: "Customer satisfaction survey",
				Frequency:   "Monthly",
			},
		}
	case diagnosis.Efficiency:
		return []KeyMetric{
			{
				Name:        "Net Profit Margin",
				Current:     fmt.Sprintf("%.0f%%", in.Margin*100),
				Target:      fmt.Sprintf("%.0f%%", targetMarginPct(in.Margin)),
				Measurement: "(Revenue - Costs) / Revenue",
				Frequency:   "Monthly",
			},
			{
				Name:        "Cost Per Unit",
				Current:     fmtUSD(costPerUnit(in)),
				Target:      "30% lower",
				Measurement: "Total costs / units delivered",
				Frequency:   "Monthly",
			},
			{
				Name:        "Operating Expense Ratio",
				Current:     fmt.Sprintf("%.0f%%", (1-in.Margin)*100),
				Target:      "60-65%",
				Measurement: "Operating expenses / revenue",
				Frequency:   "Monthly",
			},
		}
	case diagnosis.Quality:
		return []KeyMetric{
			{
				Name:        "Customer Satisfaction",
				Current:     "3.0-3.5/5",
				Target:      "4.5+/5",
				Measurement: "NPS or satisfaction survey",
				Frequency:   "Monthly",
			},
			{
				Name:        "Customer Retention",
				Current:     "50-70%",
				Target:      "80-90%",
				Measurement: "% of customers retained annually",
				Frequency:   "Monthly",
			},
			{
				Name:        "Referral Rate",
				Current:     "5-15%",
				Target:      "30-40%",
				Measurement: "% of new customers from referrals",
				Frequency:   "Quarterly",
			},
		}
	case diagnosis.Capital:
		current := "Unknown"
		if in.CAC > 0 {
			current = fmt.Sprintf("%.1f:1", in.LTV/in.CAC)
		}
		return []KeyMetric{
			{
				Name:        "LTV:CAC Ratio",
				Current:     current,
				Target:      "3:1 or better",
				Measurement: "Customer lifetime value / acquisition cost",
				Frequency:   "Monthly",
			},
			{
				Name:        "Unit Profitability",
				Current:     "Negative",
				Target:      "Positive",
				Measurement: "Profit per customer after all costs",
				Frequency:   "Monthly",
			},
			{
				Name:        "Monthly Burn Rate",
				Current:     "Increasing",
				Target:      "Breakeven",
				Measurement: "Monthly cash spend vs. revenue",
				Frequency:   "Weekly",
			},
		}
	case diagnosis.Retention:
		return []KeyMetric{
			{
				Name:        "Monthly Churn Rate",
				Current:     "10-15%",
				Target:      "2-5%",
				Measurement: "% of customers lost per month",
				Frequency:   "Monthly",
			},
			{
				Name:        "Customer Lifetime",
				Current:     "6-12 months",
				Target:      "24+ months",
				Measurement: "Average duration of customer relationship",
				Frequency:   "Monthly",
			},
			{
				Name:        "Repeat Customer Rate",
				Current:     "30-50%",
				Target:      "70%+",
				Measurement: "% of customers who repurchase",
				Frequency:   "Monthly",
			},
		}
	case diagnosis.Pricing:
		return []KeyMetric{
			{
				Name:        "Average Price",
				Current:     "Current market rate",
				Target:      "+15-30%",
				Measurement: "Average revenue per customer",
				Frequency:   "Monthly",
			},
			{
				Name:        "Price Elasticity",
				Current:     "Unknown",
				Target:      "<10% churn from 20% increase",
				Measurement: "Churn % caused by price increase",
				Frequency:   "Test",
			},
			{
				Name:        "Margin Impact",
				Current:     fmt.Sprintf("%.0f%%", in.Margin*100),
				Target:      fmt.Sprintf("%.0f%%+", (in.Margin+0.1)*100),
				Measurement: "Net margin impact from pricing",
				Frequency:   "Monthly",
			},
		}
	}
	return nil
}

// costPerUnit treats $50K of revenue as one delivery unit, which keeps the
// figure meaningful across business sizes.
func costPerUnit(in diagnosis.Input) float64 {
	units := in.Revenue / 50000
	if units <= 0 {
		return 0
	}
	return in.Revenue * (1 - in.Margin) / units
}

func criticalActions(c diagnosis.ConstraintCategory) []string {
	switch c {
	case diagnosis.Demand:
		return []string{
			"Identify your top 3 customer acquisition channels NOW",
			"Stop spending on anything that doesn't track to a customer",
			"Pick one channel and 2x the budget this month",
			"Hire or dedicate someone to demand generation full-time",
		}
	case diagnosis.Delivery:
		return []string{
			"Document your current delivery process today",
			"Identify the #1 bottleneck in fulfillment",
			"Set team capacity targets for the next 90 days",
			"Plan how you'll deliver 50% faster with the same team",
		}
	case diagnosis.Efficiency:
		return []string{
			"Create a detailed cost breakdown this week",
			"Identify your top 3 cost drains",
			"Find ONE quick win that improves margins 5%",
			"Set monthly targets for cost reduction",
		}
	case diagnosis.Quality:
		return []string{
			"Survey 20+ customers this week about satisfaction",
			"Do exit interviews with your last 5 churned customers",
			"List the top 3 quality complaints",
			"Fix the #1 complaint in the next 30 days",
		}
	case diagnosis.Capital:
		return []string{
			"Calculate customer profitability by cohort TODAY",
			"Determine if CAC or LTV is the bigger problem",
			"Cut the most inefficient 20% of your customer acquisition",
			"Set 90-day targets to reach unit profitability",
		}
	case diagnosis.Retention:
		return []string{
			"Measure your monthly churn rate today",
			`Identify the "churn cliff" - when customers typically leave`,
			"Do exit interviews with 10 churned customers",
			"Implement better onboarding starting this month",
		}
	case diagnosis.Pricing:
		return []string{
			"Survey 30 customers: would you pay 20% more?",
			"Research your top 3 competitors' pricing",
			"Create a premium tier starting immediately",
			"Raise prices 10-15% on new customers starting next month",
		}
	}
	return nil
}

func resources() []Resource {
	return []Resource{
		{
			Title:       "Growth Physics Framework",
			Description: "The constraint methodology applied to your business model",
			Type:        ResourceFramework,
		},
		{
			Title:       "Unit Economics Calculator",
			Description: "Build a model of your customer profitability",
			Type:        ResourceTool,
		},
		{
			Title:       "Customer Interview Template",
			Description: "Standard questions for understanding customer needs and churn",
			Type:        ResourceTemplate,
		},
		{
			Title:       "90-Day Implementation Tracker",
			Description: "Weekly checklist for staying on track",
			Type:        ResourceTemplate,
		},
	}
}
