package diagnosis

import (
	"reflect"
	"strings"
	"testing"
)

func baseInput() Input {
	return Input{Revenue: 500000, Margin: 0.2, CAC: 150, LTV: 1500}
}

func TestPainPointTable(t *testing.T) {
	cases := []struct {
		painPoint  string
		constraint ConstraintCategory
		confidence int
	}{
		{"cant_get_leads", Demand, 95},
		{"cant_fulfill", Delivery, 95},
		{"low_margins", Efficiency, 90},
		{"customer_churn", Retention, 90},
		{"cash_flow", Capital, 85},
		{"pricing_power", Pricing, 85},
		{"service_quality", Quality, 85},
	}
	for _, tc := range cases {
		in := baseInput()
		in.PainPoint = tc.painPoint
		d, err := Diagnose(in)
		if err != nil {
			t.Fatalf("%s: %v", tc.painPoint, err)
		}
		if d.PrimaryConstraint != tc.constraint {
			t.Fatalf("%s: got %s, want %s", tc.painPoint, d.PrimaryConstraint, tc.constraint)
		}
		if d.Confidence != tc.confidence {
			t.Fatalf("%s: confidence %d, want %d", tc.painPoint, d.Confidence, tc.confidence)
		}
		if len(d.Reasoning) != 1 || !strings.Contains(d.Reasoning[0], tc.painPoint) {
			t.Fatalf("%s: reasoning should be a single entry quoting the pain point, got %v", tc.painPoint, d.Reasoning)
		}
	}
}

func TestPainPointCategoryNameMatches(t *testing.T) {
	in := baseInput()
	in.PainPoint = "our demand just dried up"
	d, err := Diagnose(in)
	if err != nil {
		t.Fatal(err)
	}
	if d.PrimaryConstraint != Demand || d.Confidence != 95 {
		t.Fatalf("got %s/%d, want demand/95", d.PrimaryConstraint, d.Confidence)
	}
}

func TestPainPointOverridesMetrics(t *testing.T) {
	in := baseInput()
	in.PainPoint = "cant_get_leads"
	d, err := Diagnose(in)
	if err != nil {
		t.Fatal(err)
	}
	if d.PrimaryConstraint != Demand || d.Confidence != 95 {
		t.Fatalf("got %s/%d, want demand/95", d.PrimaryConstraint, d.Confidence)
	}
	if d.Metrics != (Metrics{Revenue: 500000, Margin: 0.2, CAC: 150, LTV: 1500, PainPoint: "cant_get_leads"}) {
		t.Fatalf("metrics snapshot wrong: %+v", d.Metrics)
	}
}

func TestMetricsFallbackNegativeMargin(t *testing.T) {
	d, err := Diagnose(Input{
		Revenue:  642000,
		Margin:   -0.23,
		CAC:      67,
		LTV:      1300,
		Vertical: "waste-management",
	})
	if err != nil {
		t.Fatal(err)
	}
	if d.PrimaryConstraint != Efficiency {
		t.Fatalf("got %s, want efficiency", d.PrimaryConstraint)
	}
	if d.Confidence != 40 {
		t.Fatalf("confidence %d, want 40", d.Confidence)
	}
	if len(d.Reasoning) != 2 {
		t.Fatalf("expected margin and ratio reasoning, got %v", d.Reasoning)
	}
	if !strings.Contains(d.Reasoning[0], "Negative or near-zero margins") {
		t.Fatalf("first reasoning should be the margin rule, got %q", d.Reasoning[0])
	}
	// The 19.4:1 ratio matches the vertical benchmark, so the negative
	// capital adjustment must have fired.
	if !strings.Contains(d.Reasoning[1], "capital is not constraining") {
		t.Fatalf("second reasoning should be the benchmark ratio rule, got %q", d.Reasoning[1])
	}
}

func TestZeroCACSkipsRatioRule(t *testing.T) {
	d, err := Diagnose(Input{Revenue: 500000, Margin: 0.2, CAC: 0, LTV: 500})
	if err != nil {
		t.Fatal(err)
	}
	if d.PrimaryConstraint != Demand || d.Confidence != 50 {
		t.Fatalf("got %s/%d, want demand/50 from the generic-profile default", d.PrimaryConstraint, d.Confidence)
	}
	if len(d.Reasoning) != 1 || !strings.Contains(d.Reasoning[0], "Generic business profile") {
		t.Fatalf("expected only the generic-profile reasoning, got %v", d.Reasoning)
	}
	for _, s := range []string{d.Explanation, d.MetaAnalysis.RootCause} {
		if strings.Contains(s, "Inf") || strings.Contains(s, "NaN") {
			t.Fatalf("zero CAC leaked into a template: %q", s)
		}
	}
}

func TestNoPositiveSignalFallsBackToDemand(t *testing.T) {
	// Strong margins and a strong ratio only produce negative adjustments.
	d, err := Diagnose(Input{Revenue: 500000, Margin: 0.4, CAC: 100, LTV: 1000})
	if err != nil {
		t.Fatal(err)
	}
	if d.PrimaryConstraint != Demand || d.Confidence != 40 {
		t.Fatalf("got %s/%d, want demand/40", d.PrimaryConstraint, d.Confidence)
	}
	if d.AlternativeConstraints != nil {
		t.Fatalf("no alternatives expected without positive scores, got %v", d.AlternativeConstraints)
	}
}

func TestAlternativesRankedAndExcludePrimary(t *testing.T) {
	// Low revenue, thin margin, upside-down unit economics, and expensive
	// customers light up five categories at once.
	d, err := Diagnose(Input{Revenue: 100000, Margin: 0.10, CAC: 20000, LTV: 10000})
	if err != nil {
		t.Fatal(err)
	}
	if d.PrimaryConstraint != Demand {
		t.Fatalf("primary %s, want demand", d.PrimaryConstraint)
	}
	alts := d.AlternativeConstraints
	if len(alts) != 2 {
		t.Fatalf("want 2 alternatives, got %v", alts)
	}
	want := []ConstraintCategory{Retention, Efficiency}
	for i, alt := range alts {
		if alt.Constraint == d.PrimaryConstraint {
			t.Fatal("alternatives must exclude the primary constraint")
		}
		if alt.Constraint != want[i] {
			t.Fatalf("alternative %d: got %s, want %s", i, alt.Constraint, want[i])
		}
		if alt.Reasoning == "" {
			t.Fatalf("alternative %s missing reasoning", alt.Constraint)
		}
	}
	if alts[0].Probability < alts[1].Probability {
		t.Fatal("alternatives must be sorted by descending probability")
	}
}

func TestConfidenceBounds(t *testing.T) {
	inputs := []Input{
		{Revenue: 100000, Margin: 0.10, CAC: 20000, LTV: 10000},
		{Revenue: 642000, Margin: -0.23, CAC: 67, LTV: 1300, Vertical: "waste-management"},
		{Revenue: 5200000, Margin: 0.23, CAC: 700, LTV: 3400, Vertical: "health-fitness"},
		{Revenue: 500000, Margin: 0.2, CAC: 0, LTV: 500},
		{Revenue: 3000000, Margin: 0.02, CAC: 50, LTV: 40},
	}
	for i, in := range inputs {
		d, err := Diagnose(in)
		if err != nil {
			t.Fatalf("input %d: %v", i, err)
		}
		if d.Confidence < 40 || d.Confidence > 95 {
			t.Fatalf("input %d: metrics confidence %d outside [40, 95]", i, d.Confidence)
		}
	}
}

func TestPositioningBonusCapped(t *testing.T) {
	in := baseInput()
	in.PainPoint = "cant_get_leads"
	in.CustomerTrigger = TriggerUrgentProblem
	d, err := Diagnose(in)
	if err != nil {
		t.Fatal(err)
	}
	if d.Confidence != 99 {
		t.Fatalf("confidence %d, want 99 (95 + 5 capped)", d.Confidence)
	}
	if d.PositioningContext == nil || d.PositioningContext.CustomerTrigger != TriggerUrgentProblem {
		t.Fatalf("positioning context missing: %+v", d.PositioningContext)
	}
	// One rule fired: a strength bullet and a followup bullet after the
	// pain-point entry.
	if len(d.Reasoning) != 3 {
		t.Fatalf("expected 3 reasoning entries, got %v", d.Reasoning)
	}
	if !strings.HasPrefix(d.Reasoning[1], "✓ ") || !strings.HasPrefix(d.Reasoning[2], "→ ") {
		t.Fatalf("positioning bullets malformed: %v", d.Reasoning[1:])
	}
}

func TestPositioningContextWithoutMatchingRules(t *testing.T) {
	in := baseInput()
	in.PainPoint = "cant_get_leads"
	in.CustomerType = CustomerB2CNiche
	d, err := Diagnose(in)
	if err != nil {
		t.Fatal(err)
	}
	if d.Confidence != 95 {
		t.Fatalf("no rule fired, confidence should stay 95, got %d", d.Confidence)
	}
	if d.PositioningContext == nil {
		t.Fatal("positioning context should be present whenever any field is supplied")
	}
}

func TestDiagnoseDeterministic(t *testing.T) {
	in := Input{Revenue: 642000, Margin: -0.23, CAC: 67, LTV: 1300, Vertical: "waste-management", CustomerTrigger: TriggerUrgentProblem}
	a, err := Diagnose(in)
	if err != nil {
		t.Fatal(err)
	}
	b, err := Diagnose(in)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatal("identical inputs must produce identical diagnoses")
	}
}

func TestValidateInput(t *testing.T) {
	cases := []struct {
		name  string
		in    Input
		field string
	}{
		{"zero revenue", Input{Margin: 0.2}, "revenue"},
		{"negative revenue", Input{Revenue: -5}, "revenue"},
		{"margin too high", Input{Revenue: 1000, Margin: 1.5}, "margin"},
		{"negative cac", Input{Revenue: 1000, CAC: -1}, "cac"},
		{"negative ltv", Input{Revenue: 1000, LTV: -1}, "ltv"},
		{"bad customer type", Input{Revenue: 1000, CustomerType: "b2b_mega"}, "customerType"},
		{"bad trigger", Input{Revenue: 1000, CustomerTrigger: "boredom"}, "customerTrigger"},
		{"bad channel", Input{Revenue: 1000, AcquisitionChannel: "skywriting"}, "acquisitionChannel"},
	}
	for _, tc := range cases {
		_, err := Diagnose(tc.in)
		ie, ok := err.(*InputError)
		if !ok {
			t.Fatalf("%s: expected *InputError, got %v", tc.name, err)
		}
		if ie.Field != tc.field {
			t.Fatalf("%s: field %s, want %s", tc.name, ie.Field, tc.field)
		}
	}
	if err := ValidateInput(baseInput()); err != nil {
		t.Fatalf("valid input rejected: %v", err)
	}
}

func TestNextStepsFixedLength(t *testing.T) {
	for _, c := range AllConstraints {
		if got := nextSteps(c); len(got) != 5 {
			t.Fatalf("%s: next steps length %d, want 5", c, len(got))
		}
	}
}

func TestMetaAnalysisShape(t *testing.T) {
	for _, c := range AllConstraints {
		m := buildMetaAnalysis(c, baseInput())
		if m.RootCause == "" || m.WhyThisMatters == "" || m.PotentialRevenueLift == "" {
			t.Fatalf("%s: meta-analysis has empty narrative fields", c)
		}
		if len(m.CascadingEffects) != 4 || len(m.WhatItUnlocks) != 4 || len(m.SuccessMetrics) != 4 {
			t.Fatalf("%s: meta-analysis lists must have 4 entries each", c)
		}
		for _, sm := range m.SuccessMetrics {
			if sm.Metric == "" || sm.Current == "" || sm.Target == "" || sm.Timeframe == "" {
				t.Fatalf("%s: incomplete success metric %+v", c, sm)
			}
		}
	}
}
