package diagnosis

import (
	"fmt"

	"github.com/growthphysics/consulting-os/internal/verticals"
)

// metricsResult carries the scorer's pick plus the full score vector so the
// alternatives generator can rank runners-up.
type metricsResult struct {
	constraint ConstraintCategory
	confidence int
	reasoning  []string
	scores     map[ConstraintCategory]int
}

// scoreFromMetrics is the fallback diagnosis when the pain point is absent
// or unmapped. Adjustments are independent and additive; reasoning entries
// are appended in rule-evaluation order, which is observable output.
func scoreFromMetrics(in Input) metricsResult {
	scores := make(map[ConstraintCategory]int, len(AllConstraints))
	for _, c := range AllConstraints {
		scores[c] = 0
	}
	var reasoning []string

	bench, hasBench := verticals.BenchmarkFor(in.Vertical)

	// Margin bands: absolute first, then vertical-relative when a benchmark
	// exists, generic bands otherwise.
	switch {
	case in.Margin < 0.05:
		scores[Efficiency] += 40
		reasoning = append(reasoning, "Negative or near-zero margins indicate efficiency or pricing issues")
	case hasBench && in.Margin < bench.HealthyMarginFloor:
		scores[Efficiency] += 35
		reasoning = append(reasoning, fmt.Sprintf("Margins below the %.0f%% healthy floor for %s suggest efficiency constraints",
			bench.HealthyMarginFloor*100, verticals.DisplayName(in.Vertical)))
	case hasBench && in.Margin >= bench.StrongMarginCeiling:
		scores[Efficiency] -= 25
		reasoning = append(reasoning, fmt.Sprintf("Margins at the strong end for %s suggest efficiency is not the primary constraint",
			verticals.DisplayName(in.Vertical)))
	case !hasBench && in.Margin < 0.15:
		scores[Efficiency] += 30
		reasoning = append(reasoning, "Thin margins (< 15%) suggest efficiency constraints")
	case !hasBench && in.Margin > 0.35:
		scores[Efficiency] -= 20
		reasoning = append(reasoning, "Healthy margins suggest efficiency is not primary constraint")
	}

	// LTV:CAC ratio. Skipped entirely unless both sides are positive.
	if in.CAC > 0 && in.LTV > 0 {
		ratio := in.LTV / in.CAC
		benchRatio := 0.0
		if hasBench && bench.TypicalCAC > 0 && bench.TypicalLTV > 0 {
			benchRatio = bench.TypicalLTV / bench.TypicalCAC
		}
		switch {
		case benchRatio > 0 && ratio < benchRatio*0.5:
			scores[Capital] += 40
			scores[Retention] += 25
			reasoning = append(reasoning, fmt.Sprintf("LTV:CAC of %.1f:1 is well below the %.1f:1 typical for %s",
				ratio, benchRatio, verticals.DisplayName(in.Vertical)))
		case benchRatio > 0 && ratio >= benchRatio:
			scores[Capital] -= 30
			reasoning = append(reasoning, fmt.Sprintf("LTV:CAC of %.1f:1 meets or beats the %.1f:1 typical for %s, so capital is not constraining",
				ratio, benchRatio, verticals.DisplayName(in.Vertical)))
		case benchRatio == 0 && ratio < 1:
			scores[Retention] += 35
			scores[Capital] += 25
			reasoning = append(reasoning, "LTV < CAC indicates retention issues or high churn")
		case benchRatio == 0 && ratio > 5:
			scores[Capital] -= 30
			reasoning = append(reasoning, "Strong LTV:CAC ratio suggests capital is not constraining")
		}
	}

	// Revenue stage, vertical-adjustable floor and ceiling.
	revFloor, revCeiling := 200000.0, 2000000.0
	if hasBench {
		revFloor, revCeiling = bench.RevenueFloor, bench.RevenueCeiling
	}
	if in.Revenue < revFloor {
		scores[Demand] += 25
		reasoning = append(reasoning, "Lower revenue typically indicates demand generation challenges")
	} else if in.Revenue > revCeiling {
		scores[Delivery] += 20
		reasoning = append(reasoning, "Higher revenue often requires delivery/fulfillment scaling")
	}

	// CAC relative to revenue.
	if in.CAC > in.Revenue*0.1 {
		scores[Demand] += 10
		scores[Pricing] += 10
		reasoning = append(reasoning, "Customers are expensive relative to revenue, suggesting limited pricing power or high CAC")
	}

	allZero := true
	for _, c := range AllConstraints {
		if scores[c] != 0 {
			allZero = false
			break
		}
	}
	if allZero {
		scores[Demand] = 50
		reasoning = append(reasoning, "Generic business profile - demand generation is common early constraint")
	}

	// Pick the max positive score; ties and the no-positive-signal case both
	// resolve to the earliest category in AllConstraints (demand).
	best := Demand
	maxScore := 0
	for _, c := range AllConstraints {
		if scores[c] > maxScore {
			maxScore = scores[c]
			best = c
		}
	}

	return metricsResult{
		constraint: best,
		confidence: clampInt(maxScore, 40, 95),
		reasoning:  reasoning,
		scores:     scores,
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
