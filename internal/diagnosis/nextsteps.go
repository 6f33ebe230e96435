package diagnosis

// nextSteps is a fixed, ordered five-item list per category.
func nextSteps(c ConstraintCategory) []string {
	switch c {
	case Demand:
		return []string{
			"Track every customer source for the next 30 days",
			"Calculate CAC for each acquisition channel",
			"Interview 10 recent customers about how they found you",
			"Double the budget on your best-performing channel",
			"Set a monthly qualified-lead target and review it weekly",
		}
	case Delivery:
		return []string{
			"Document your end-to-end delivery process",
			"Time each step and identify the top 3 bottlenecks",
			"Automate or eliminate the worst manual step",
			"Create templates and checklists for repeat work",
			"Set team capacity targets for the next 90 days",
		}
	case Efficiency:
		return []string{
			"Build a detailed cost breakdown this week",
			"Separate fixed from variable costs",
			"Identify your top 3 cost drains",
			"Implement one quick win that improves margins 5%",
			"Stand up a monthly cost review",
		}
	case Quality:
		return []string{
			"Survey 20+ customers about satisfaction",
			"Run exit interviews with your last 5 churned customers",
			"List the top 3 quality complaints",
			"Fix the #1 complaint within 30 days",
			"Create a quality checklist for every engagement",
		}
	case Capital:
		return []string{
			"Calculate customer profitability by cohort",
			"Determine whether CAC or LTV is the bigger problem",
			"Cut the least efficient 20% of acquisition spend",
			"Monitor your breakeven point weekly",
			"Set 90-day targets for unit profitability",
		}
	case Retention:
		return []string{
			"Measure your monthly churn rate",
			"Identify when in the lifecycle customers typically leave",
			"Run exit interviews with 10 churned customers",
			"Rebuild onboarding around the first 30 days",
			"Schedule a recurring check-in with every active customer",
		}
	case Pricing:
		return []string{
			"Survey 30 customers on willingness to pay 20% more",
			"Research your top 3 competitors' pricing",
			"Introduce a premium tier",
			"Raise prices 10-15% on new customers",
			"Reposition marketing around value rather than cost",
		}
	}
	panic("unknown constraint category: " + string(c))
}
