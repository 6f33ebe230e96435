// Package playbook turns a diagnosed constraint into a personalized 90-day
// execution plan: narrative context, a three-phase roadmap, key metrics with
// targets derived from the business's own numbers, and immediate actions.
package playbook

import (
	"fmt"
	"math"
	"strings"

	"github.com/growthphysics/consulting-os/internal/diagnosis"
	"github.com/growthphysics/consulting-os/internal/verticals"
)

type Playbook struct {
	Title           string                       `json:"title"`
	Constraint      diagnosis.ConstraintCategory `json:"constraint"`
	BusinessContext string                       `json:"businessContext"`
	CurrentState    string                       `json:"currentState"`
	TargetState     string                       `json:"targetState"`
	Roadmap         []RoadmapPhase               `json:"roadmap"`
	KeyMetrics      []KeyMetric                  `json:"keyMetrics"`
	CriticalActions []string                     `json:"criticalActions"`
	Resources       []Resource                   `json:"resources"`
}

type RoadmapPhase struct {
	Phase           string   `json:"phase"`
	Timeframe       string   `json:"timeframe"`
	Objectives      []string `json:"objectives"`
	Actions         []string `json:"actions"`
	SuccessCriteria []string `json:"successCriteria"`
	Risks           []string `json:"risks"`
}

type KeyMetric struct {
	Name        string `json:"name"`
	Current     string `json:"current"`
	Target      string `json:"target"`
	Measurement string `json:"measurement"`
	Frequency   string `json:"frequency"`
}

type ResourceType string

const (
	ResourceFramework ResourceType = "framework"
	ResourceTool      ResourceType = "tool"
	ResourceTemplate  ResourceType = "template"
	ResourceCaseStudy ResourceType = "case-study"
)

type Resource struct {
	Title       string       `json:"title"`
	Description string       `json:"description"`
	Type        ResourceType `json:"type"`
}

// Generate builds the full personalized playbook for a constraint. It is a
// pure function of its inputs: the same constraint and metrics always
// produce the same playbook.
func Generate(constraint diagnosis.ConstraintCategory, in diagnosis.Input) (*Playbook, error) {
	if !constraint.Valid() {
		return nil, &diagnosis.InputError{Field: "constraint", Message: fmt.Sprintf("unknown constraint %q", constraint)}
	}
	if err := diagnosis.ValidateInput(in); err != nil {
		return nil, err
	}
	verticalName := verticals.DisplayName(in.Vertical)
	return &Playbook{
		Title:           fmt.Sprintf("%s Constraint Playbook for %s", capitalize(string(constraint)), verticalName),
		Constraint:      constraint,
		BusinessContext: businessContext(constraint, in, verticalName),
		CurrentState:    currentState(constraint, in),
		TargetState:     targetState(constraint, in),
		Roadmap:         roadmap(constraint),
		KeyMetrics:      keyMetrics(constraint, in),
		CriticalActions: criticalActions(constraint),
		Resources:       resources(),
	}, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func businessContext(c diagnosis.ConstraintCategory, in diagnosis.Input, verticalName string) string {
	revK := in.Revenue / 1000
	marginPct := in.Margin * 100
	switch c {
	case diagnosis.Demand:
		return fmt.Sprintf("You're operating a %s business generating $%.0fK annually. "+
			"With margins at %.0f%%, your profitability is healthy. The constraint isn't your ability to deliver, it's your ability to fill the pipeline. "+
			"You need a systematic approach to generating more qualified leads.", verticalName, revK, marginPct)
	case diagnosis.Delivery:
		return fmt.Sprintf("Your %s business is generating $%.0fK in revenue, but you're hitting a ceiling. "+
			"You've proven you can close deals and deliver profitably (%.0f%% margins), but you can't scale fulfillment. "+
			"The constraint is capacity: you need to systematize and scale your delivery operations.", verticalName, revK, marginPct)
	case diagnosis.Efficiency:
		return fmt.Sprintf("Your %s business is operating at %.0f%% net margins, below what's healthy for your category. "+
			"At $%.0fK revenue, you have enough scale to optimize, but margins are too thin to invest in growth. "+
			"You need to improve unit economics before scaling further.", verticalName, marginPct, revK)
	case diagnosis.Quality:
		return fmt.Sprintf("Your %s business has the demand and capacity, but quality inconsistency is limiting growth. "+
			"This manifests as low retention, negative word-of-mouth, and difficulty commanding premium pricing. "+
			"You need to systematize quality before growth becomes sustainable.", verticalName)
	case diagnosis.Capital:
		return fmt.Sprintf("Your %s business has fundamental unit economics problems. Your LTV:CAC ratio of %.1f:1 "+
			"means you're spending more acquiring customers than they generate over their lifetime. "+
			"This constraint is unsustainable: you're burning cash to grow.", verticalName, safeRatio(in))
	case diagnosis.Retention:
		return fmt.Sprintf("Your %s business has strong acquisition and delivery, but customers aren't staying long enough. "+
			"This compresses LTV and makes your unit economics fragile. "+
			"You need to improve retention before growth becomes profitable.", verticalName)
	case diagnosis.Pricing:
		return fmt.Sprintf("Your %s business is operating at %.0f%% margins with strong demand and good delivery. "+
			"You may be undervalued in the market. Your constraint is pricing power: the ability to capture more value from each transaction.", verticalName, marginPct)
	}
	return ""
}

func currentState(c diagnosis.ConstraintCategory, in diagnosis.Input) string {
	switch c {
	case diagnosis.Demand:
		return joinLines(
			"- Monthly lead flow: Inconsistent and unreliable",
			fmt.Sprintf("- Customer acquisition cost: %s (may be above sustainable levels)", fmtUSD(in.CAC)),
			"- Sales pipeline: Weak and unpredictable",
			"- Revenue growth: Flat or declining due to insufficient leads",
		)
	case diagnosis.Delivery:
		util := "70-80%"
		if in.Revenue > 2000000 {
			util = "90%+"
		}
		return joinLines(
			fmt.Sprintf("- Team capacity: Fully utilized at %s", util),
			"- Fulfillment time: Extended and inconsistent",
			"- Service quality: Declining as you push capacity limits",
			`- Revenue opportunity: Left on the table due to "no capacity" conversations`,
		)
	case diagnosis.Efficiency:
		return joinLines(
			fmt.Sprintf("- Cost structure: %.0f%% of revenue consumed by operations", (1-in.Margin)*100),
			fmt.Sprintf("- Net margin: %.0f%% (below healthy range)", in.Margin*100),
			"- Reinvestment capacity: Limited; can't invest in growth",
			"- Profit per customer: Minimal, limiting business resilience",
		)
	case diagnosis.Quality:
		return joinLines(
			"- Customer satisfaction: Below expectations (3-4/5 typical)",
			"- Retention rate: Declining; customers leave after short tenure",
			"- Referral rate: Low; negative word-of-mouth apparent",
			"- Scaling barriers: Quality inconsistency prevents premium positioning",
		)
	case diagnosis.Capital:
		return joinLines(
			fmt.Sprintf("- LTV:CAC ratio: %.1f:1 (unsustainable; healthy is 3:1+)", safeRatio(in)),
			"- Monthly burn: Negative unit economics",
			"- Cash runway: Decreasing despite revenue growth",
			"- Growth math: Acquisition spending exceeds customer lifetime value",
		)
	case diagnosis.Retention:
		return joinLines(
			"- Monthly churn: Higher than industry average",
			"- Customer lifetime: Shorter than your CAC payback period",
			"- Repeat customer rate: Below 50%",
			"- LTV impact: Low customer lifetime compresses lifetime value",
		)
	case diagnosis.Pricing:
		return joinLines(
			"- Price positioning: Market rate or below",
			"- Pricing power: Limited; unable to increase prices without customer loss",
			"- Customer perception: Price-conscious, not value-conscious",
			"- Revenue opportunity: Significant margin expansion possible",
		)
	}
	return ""
}

func targetState(c diagnosis.ConstraintCategory, in diagnosis.Input) string {
	switch c {
	case diagnosis.Demand:
		return joinLines(
			"- Monthly lead flow: 2-3x current (predictable, repeatable)",
			"- CAC payback: 6-12 months or less",
			"- Sales pipeline: 3-6 months of revenue visibility",
			"- Growth rate: 20-40% monthly from marketing improvements",
		)
	case diagnosis.Delivery:
		return joinLines(
			"- Team capacity: 90%+ utilization without quality degradation",
			"- Fulfillment time: 50% faster than current",
			"- Service quality: Consistent 4.5+/5 across all deliverables",
			"- Scaling ready: Can add 50%+ volume with minimal additional costs",
		)
	case diagnosis.Efficiency:
		return joinLines(
			fmt.Sprintf("- Net margin: %.0f%%+ (20-30%% minimum lift)", targetMarginPct(in.Margin)),
			"- Cost structure: 60-65% of revenue spent on delivery",
			"- Reinvestment capacity: $100K+ annually for growth initiatives",
			"- Profit per customer: Sustainable for scaling",
		)
	case diagnosis.Quality:
		return joinLines(
			"- Customer satisfaction: 4.5-5.0/5 consistently",
			"- Retention rate: 80%+ annual retention",
			"- Referral rate: 30-40% of new customers from word-of-mouth",
			"- Pricing power: Can command 15-30% premium based on reputation",
		)
	case diagnosis.Capital:
		return joinLines(
			"- LTV:CAC ratio: 3:1 or better (unit economics work)",
			"- Monthly profitability: Positive at unit level",
			"- Cash flow: Healthy and improving month-over-month",
			"- Sustainable growth: Growth is profitable, not cash-draining",
		)
	case diagnosis.Retention:
		return joinLines(
			"- Monthly churn: 2-5% (industry healthy range)",
			"- Customer lifetime: 24+ months",
			"- Repeat customer rate: 70%+",
			"- LTV impact: Customer lifetime value increases significantly",
		)
	case diagnosis.Pricing:
		return joinLines(
			"- Price positioning: 15-30% premium vs. market",
			"- Pricing power: Can increase prices with <10% customer loss",
			"- Customer perception: Value-conscious; willing to pay for quality",
			"- Revenue lift: 20-35% margin improvement from pricing optimization",
		)
	}
	return ""
}

// targetMarginPct lifts the current margin by 15 points and caps at 35%.
func targetMarginPct(margin float64) float64 {
	return math.Min(margin*100+15, 35)
}

func safeRatio(in diagnosis.Input) float64 {
	if in.CAC <= 0 {
		return 0
	}
	return in.LTV / in.CAC
}

func joinLines(lines ...string) string {
	return strings.Join(lines, "\n")
}

// fmtUSD formats a dollar amount with comma separators (e.g. 1500 → "$1,500").
func fmtUSD(v float64) string {
	n := int64(math.Round(v))
	if n < 0 {
		return "-" + fmtUSD(float64(-n))
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return "$" + s
	}
	var b strings.Builder
	rem := len(s) % 3
	if rem > 0 {
		b.WriteString(s[:rem])
	}
	for i := rem; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return "$" + b.String()
}
