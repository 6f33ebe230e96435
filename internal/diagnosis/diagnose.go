package diagnosis

import "fmt"

// Diagnose runs the full pipeline: pain-point resolution first, metrics
// scoring as fallback, then explanation, meta-analysis, alternatives, and
// the optional positioning refinement. Pure computation; every call with
// the same input produces the same output.
func Diagnose(in Input) (*Diagnosis, error) {
	if err := ValidateInput(in); err != nil {
		return nil, err
	}

	// The score vector is computed in both paths so the alternatives
	// generator always has something to rank.
	scored := scoreFromMetrics(in)

	var d Diagnosis
	if c, conf, ok := resolveFromPainPoint(in.PainPoint); ok && conf > 80 {
		d.PrimaryConstraint = c
		d.Confidence = conf
		d.Reasoning = []string{fmt.Sprintf("Primary pain point: %q", in.PainPoint)}
	} else {
		d.PrimaryConstraint = scored.constraint
		d.Confidence = scored.confidence
		d.Reasoning = scored.reasoning
	}

	d.Explanation = buildExplanation(d.PrimaryConstraint, in)
	d.Metrics = Metrics{
		Revenue:   in.Revenue,
		Margin:    in.Margin,
		CAC:       in.CAC,
		LTV:       in.LTV,
		PainPoint: in.PainPoint,
	}
	d.MetaAnalysis = buildMetaAnalysis(d.PrimaryConstraint, in)
	d.AlternativeConstraints = buildAlternatives(d.PrimaryConstraint, scored.scores)
	d.NextSteps = nextSteps(d.PrimaryConstraint)

	if in.CustomerType != "" || in.CustomerTrigger != "" || in.AcquisitionChannel != "" {
		d.PositioningContext = &PositioningContext{
			CustomerType:       in.CustomerType,
			CustomerTrigger:    in.CustomerTrigger,
			AcquisitionChannel: in.AcquisitionChannel,
		}
		if bullets := positioningInsights(d.PrimaryConstraint, in); len(bullets) > 0 {
			d.Reasoning = append(d.Reasoning, bullets...)
			if d.Confidence += 5; d.Confidence > 99 {
				d.Confidence = 99
			}
		}
	}

	return &d, nil
}
