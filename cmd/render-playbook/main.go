package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/growthphysics/consulting-os/internal/diagnosis"
	"github.com/growthphysics/consulting-os/internal/playbook"
	"github.com/growthphysics/consulting-os/internal/render"
)

func main() {
	var (
		constraint = flag.String("constraint", "", "Constraint category (demand, delivery, efficiency, quality, capital, retention, pricing)")
		revenue    = flag.Float64("revenue", 0, "Annual revenue in dollars")
		margin     = flag.Float64("margin", 0, "Net margin as a fraction (e.g. 0.18)")
		cac        = flag.Float64("cac", 0, "Customer acquisition cost in dollars")
		ltv        = flag.Float64("ltv", 0, "Customer lifetime value in dollars")
		vertical   = flag.String("vertical", "", "Business vertical (e.g. waste-management)")
		outputPath = flag.String("output", "", "Path to write markdown (defaults to stdout)")
		htmlPath   = flag.String("html-output", "", "Optional path to write print-ready HTML")
		pdfPath    = flag.String("pdf-output", "", "Optional path to write a PDF (requires Chromium)")
	)
	flag.Parse()

	if *constraint == "" {
		log.Fatal("missing required -constraint")
	}

	in := diagnosis.Input{
		Revenue:  *revenue,
		Margin:   *margin,
		CAC:      *cac,
		LTV:      *ltv,
		Vertical: *vertical,
	}
	p, err := playbook.Generate(diagnosis.ConstraintCategory(*constraint), in)
	if err != nil {
		log.Fatalf("generate playbook: %v", err)
	}

	if err := writeMarkdown(*outputPath, playbook.FormatMarkdown(p)); err != nil {
		log.Fatalf("write markdown: %v", err)
	}

	if *htmlPath != "" {
		doc, err := render.BuildHTML(p)
		if err != nil {
			log.Fatalf("build html: %v", err)
		}
		if err := os.WriteFile(*htmlPath, []byte(doc), 0o644); err != nil {
			log.Fatalf("write html: %v", err)
		}
	}

	if *pdfPath != "" {
		pdf, err := render.NewChromiumPDFRenderer().Render(context.Background(), p)
		if err != nil {
			log.Fatalf("render pdf: %v", err)
		}
		if err := os.WriteFile(*pdfPath, pdf, 0o644); err != nil {
			log.Fatalf("write pdf: %v", err)
		}
	}
}

func writeMarkdown(outputPath, markdown string) error {
	if outputPath == "" {
		_, err := fmt.Print(markdown)
		return err
	}
	return os.WriteFile(outputPath, []byte(markdown), 0o644)
}
