package render

import (
	"strings"
	"testing"

	"github.com/growthphysics/consulting-os/internal/diagnosis"
	"github.com/growthphysics/consulting-os/internal/playbook"
)

func TestBuildHTML(t *testing.T) {
	p, err := playbook.Generate(diagnosis.Demand, diagnosis.Input{
		Revenue: 642000, Margin: 0.18, CAC: 150, LTV: 1500, Vertical: "waste-management",
	})
	if err != nil {
		t.Fatal(err)
	}
	doc, err := BuildHTML(p)
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"<!doctype html>",
		"<title>Demand Constraint Playbook for Waste Management</title>",
		"demand constraint",
		"<h1>Demand Constraint Playbook for Waste Management</h1>",
		"<table>",
		"Phase 1: Channel Audit (Days 1-30)",
	} {
		if !strings.Contains(doc, want) {
			t.Fatalf("html missing %q", want)
		}
	}
}

func TestBuildHTMLEscapesTitle(t *testing.T) {
	p, err := playbook.Generate(diagnosis.Quality, diagnosis.Input{Revenue: 100000, Margin: 0.1})
	if err != nil {
		t.Fatal(err)
	}
	p.Title = `<script>alert("x")</script>`
	doc, err := BuildHTML(p)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(doc, "<script>alert") {
		t.Fatal("title not escaped in html head")
	}
}
