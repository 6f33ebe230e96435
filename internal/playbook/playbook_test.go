package playbook

import (
	"strings"
	"testing"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/growthphysics/consulting-os/internal/diagnosis"
)

func sampleInput() diagnosis.Input {
	return diagnosis.Input{Revenue: 642000, Margin: 0.18, CAC: 150, LTV: 1500, Vertical: "waste-management"}
}

func TestGenerateAllConstraints(t *testing.T) {
	for _, c := range diagnosis.AllConstraints {
		p, err := Generate(c, sampleInput())
		if err != nil {
			t.Fatalf("%s: %v", c, err)
		}
		if !strings.HasSuffix(p.Title, "Constraint Playbook for Waste Management") {
			t.Fatalf("%s: unexpected title %q", c, p.Title)
		}
		if p.BusinessContext == "" || p.CurrentState == "" || p.TargetState == "" {
			t.Fatalf("%s: narrative sections must not be empty", c)
		}
		if len(p.Roadmap) != 3 {
			t.Fatalf("%s: roadmap has %d phases, want 3", c, len(p.Roadmap))
		}
		for _, phase := range p.Roadmap {
			if len(phase.Objectives) == 0 || len(phase.Actions) == 0 || len(phase.SuccessCriteria) == 0 || len(phase.Risks) == 0 {
				t.Fatalf("%s: phase %q has an empty section", c, phase.Phase)
			}
		}
		if len(p.KeyMetrics) != 3 {
			t.Fatalf("%s: %d key metrics, want 3", c, len(p.KeyMetrics))
		}
		if len(p.CriticalActions) != 4 {
			t.Fatalf("%s: %d critical actions, want 4", c, len(p.CriticalActions))
		}
		if len(p.Resources) != 4 {
			t.Fatalf("%s: %d resources, want 4", c, len(p.Resources))
		}
	}
}

func TestGenerateUnknownConstraint(t *testing.T) {
	if _, err := Generate(diagnosis.ConstraintCategory("growth"), sampleInput()); err == nil {
		t.Fatal("expected error for unknown constraint")
	}
}

func TestGenerateTitleFallsBackWithoutVertical(t *testing.T) {
	in := sampleInput()
	in.Vertical = ""
	p, err := Generate(diagnosis.Demand, in)
	if err != nil {
		t.Fatal(err)
	}
	if p.Title != "Demand Constraint Playbook for Your Business" {
		t.Fatalf("title %q", p.Title)
	}
}

func TestDemandMetricsPersonalized(t *testing.T) {
	p, err := Generate(diagnosis.Demand, sampleInput())
	if err != nil {
		t.Fatal(err)
	}
	cac := p.KeyMetrics[1]
	if cac.Current != "$150" || cac.Target != "$90" {
		t.Fatalf("CAC metric %q -> %q, want $150 -> $90", cac.Current, cac.Target)
	}
	// 642K revenue falls in the mid lead-volume band.
	if p.KeyMetrics[0].Current != "15-25" || p.KeyMetrics[0].Target != "40-60" {
		t.Fatalf("lead volume %q -> %q", p.KeyMetrics[0].Current, p.KeyMetrics[0].Target)
	}
}

func TestEfficiencyMetricsPersonalized(t *testing.T) {
	in := diagnosis.Input{Revenue: 500000, Margin: 0.10, CAC: 100, LTV: 800}
	p, err := Generate(diagnosis.Efficiency, in)
	if err != nil {
		t.Fatal(err)
	}
	margin := p.KeyMetrics[0]
	if margin.Current != "10%" || margin.Target != "25%" {
		t.Fatalf("margin metric %q -> %q, want 10%% -> 25%%", margin.Current, margin.Target)
	}
	// 500K revenue is 10 delivery units; 450K of cost over 10 units.
	if p.KeyMetrics[1].Current != "$45,000" {
		t.Fatalf("cost per unit %q, want $45,000", p.KeyMetrics[1].Current)
	}
	if !strings.Contains(p.TargetState, "25%+") {
		t.Fatalf("target state missing lifted margin: %q", p.TargetState)
	}
}

func TestEfficiencyTargetMarginCapped(t *testing.T) {
	in := diagnosis.Input{Revenue: 500000, Margin: 0.30, CAC: 100, LTV: 800}
	p, err := Generate(diagnosis.Efficiency, in)
	if err != nil {
		t.Fatal(err)
	}
	if p.KeyMetrics[0].Target != "35%" {
		t.Fatalf("target margin %q, want capped 35%%", p.KeyMetrics[0].Target)
	}
}

func TestCapitalMetricsZeroCAC(t *testing.T) {
	in := diagnosis.Input{Revenue: 500000, Margin: 0.2}
	p, err := Generate(diagnosis.Capital, in)
	if err != nil {
		t.Fatal(err)
	}
	if p.KeyMetrics[0].Current != "Unknown" {
		t.Fatalf("ratio metric with zero CAC should be Unknown, got %q", p.KeyMetrics[0].Current)
	}
	if strings.Contains(p.BusinessContext, "Inf") || strings.Contains(p.BusinessContext, "NaN") {
		t.Fatalf("zero CAC leaked into context: %q", p.BusinessContext)
	}
}

func TestFormatMarkdownDeterministic(t *testing.T) {
	p, err := Generate(diagnosis.Retention, sampleInput())
	if err != nil {
		t.Fatal(err)
	}
	if FormatMarkdown(p) != FormatMarkdown(p) {
		t.Fatal("rendering the same playbook twice must be byte-identical")
	}
}

func TestFormatMarkdownTableRoundTrip(t *testing.T) {
	p, err := Generate(diagnosis.Pricing, sampleInput())
	if err != nil {
		t.Fatal(err)
	}
	src := []byte(FormatMarkdown(p))
	md := goldmark.New(goldmark.WithExtensions(extension.GFM))
	doc := md.Parser().Parse(text.NewReader(src))

	rows := 0
	err = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering {
			if _, ok := n.(*east.TableRow); ok {
				rows++
			}
		}
		return ast.WalkContinue, nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if rows != len(p.KeyMetrics) {
		t.Fatalf("parsed %d table rows, want %d", rows, len(p.KeyMetrics))
	}
}

func TestFormatMarkdownSections(t *testing.T) {
	p, err := Generate(diagnosis.Demand, sampleInput())
	if err != nil {
		t.Fatal(err)
	}
	doc := FormatMarkdown(p)
	for _, heading := range []string{
		"# Demand Constraint Playbook for Waste Management",
		"## Business Context",
		"## Where You Are Today",
		"## Where You're Headed",
		"## Key Metrics",
		"## 90-Day Roadmap",
		"### Phase 1: Channel Audit (Days 1-30)",
		"## Do These First",
		"## Resources",
	} {
		if !strings.Contains(doc, heading) {
			t.Fatalf("markdown missing %q", heading)
		}
	}
}

func TestSanitizeCellEscapesPipes(t *testing.T) {
	if got := sanitizeCell("a | b\nc"); got != "a \\| b c" {
		t.Fatalf("got %q", got)
	}
}
