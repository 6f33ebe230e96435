package diagnosis

import (
	"math"
	"sort"
)

// alternativeReasoning is deliberately fixed per category, independent of
// the score magnitude that surfaced the alternative.
var alternativeReasoning = map[ConstraintCategory]string{
	Demand:     "Lead volume signals suggest demand could also be limiting growth",
	Delivery:   "Capacity signals suggest fulfillment could also be limiting growth",
	Efficiency: "Margin pressure could also be constraining reinvestment",
	Quality:    "Quality consistency could also be suppressing referrals and retention",
	Capital:    "Unit economics could also be constraining sustainable growth",
	Retention:  "Churn could also be compressing customer lifetime value",
	Pricing:    "Pricing power could also be leaving revenue on the table",
}

// buildAlternatives ranks the non-primary categories by score and keeps the
// top two, dropping anything below a 10% normalized probability.
func buildAlternatives(primary ConstraintCategory, scores map[ConstraintCategory]int) []Alternative {
	maxAll := 0
	for _, c := range AllConstraints {
		if scores[c] > maxAll {
			maxAll = scores[c]
		}
	}
	if maxAll <= 0 {
		return nil
	}

	var out []Alternative
	for _, c := range AllConstraints {
		if c == primary {
			continue
		}
		p := int(math.Round(100 * float64(scores[c]) / float64(maxAll)))
		if p < 10 {
			continue
		}
		out = append(out, Alternative{
			Constraint:  c,
			Probability: p,
			Reasoning:   alternativeReasoning[c],
		})
	}

	// Stable so equal probabilities keep AllConstraints order.
	sort.SliceStable(out, func(i, j int) bool { return out[i].Probability > out[j].Probability })
	if len(out) > 2 {
		out = out[:2]
	}
	return out
}
