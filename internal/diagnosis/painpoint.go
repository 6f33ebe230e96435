package diagnosis

import "strings"

type painPointRule struct {
	key        string
	constraint ConstraintCategory
	confidence int
}

// Ordered: first match wins. A pain point that literally contains a category
// name (e.g. "demand") also resolves to that category; the match is broad
// on purpose so free-text entries still land somewhere sensible.
var painPointRules = []painPointRule{
	{key: "cant_get_leads", constraint: Demand, confidence: 95},
	{key: "cant_fulfill", constraint: Delivery, confidence: 95},
	{key: "low_margins", constraint: Efficiency, confidence: 90},
	{key: "customer_churn", constraint: Retention, confidence: 90},
	{key: "cash_flow", constraint: Capital, confidence: 85},
	{key: "pricing_power", constraint: Pricing, confidence: 85},
	{key: "service_quality", constraint: Quality, confidence: 85},
}

func resolveFromPainPoint(painPoint string) (ConstraintCategory, int, bool) {
	p := strings.ToLower(strings.TrimSpace(painPoint))
	if p == "" {
		return "", 0, false
	}
	for _, r := range painPointRules {
		if strings.Contains(p, r.key) || strings.Contains(p, string(r.constraint)) {
			return r.constraint, r.confidence, true
		}
	}
	return "", 0, false
}
