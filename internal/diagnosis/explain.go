package diagnosis

import (
	"fmt"
	"strings"
)

// buildExplanation renders the headline paragraph for a diagnosis. The
// **bold** markers are load-bearing: the UI splits on them when rendering.
func buildExplanation(c ConstraintCategory, in Input) string {
	title := MetadataFor(c).Title
	switch c {
	case Demand:
		return fmt.Sprintf("You have a **%s constraint**.\n\n"+
			"Your business can deliver well (margins at %.0f%%) and your cost per customer ($%s) is reasonable, "+
			"but you're not getting enough customers through the door. The fix is focused: get more leads. "+
			"This is actually great news—it means growth is about lead generation and marketing, not restructuring your entire operation.",
			title, in.Margin*100, fmtUSD(int64(in.CAC)))
	case Delivery:
		return fmt.Sprintf("You have a **%s constraint**.\n\n"+
			"You're successfully generating demand (margins at %.0f%%, LTV:CAC ratio of %.1fx), "+
			"but you're hitting a ceiling on how many customers you can serve. The bottleneck is fulfillment—delivery, staffing, or systems. "+
			"Fixing this usually means process automation, hiring, or systematizing your delivery.",
			title, in.Margin*100, ratioOrZero(in))
	case Efficiency:
		return fmt.Sprintf("You have an **%s constraint**.\n\n"+
			"Your margins are tight (%.0f%%), which means every operation dollar matters. "+
			"Even with good demand, thin margins prevent investment in growth. The fix is operational excellence: "+
			"eliminate waste, improve unit economics, and create breathing room to invest in scaling.",
			title, in.Margin*100)
	case Capital:
		return fmt.Sprintf("You have a **%s constraint**.\n\n"+
			"The math doesn't work: your customer acquisition cost ($%s) is too high relative to what customers are worth ($%s LTV). "+
			"You're burning cash acquiring customers who don't stay long enough. "+
			"The fix is improving retention, reducing churn, or rethinking your acquisition strategy.",
			title, fmtUSD(int64(in.CAC)), fmtUSD(int64(in.LTV)))
	case Retention:
		return fmt.Sprintf("You have a **%s constraint**.\n\n"+
			"Customers are leaving too quickly. Your LTV ($%s) relative to CAC ($%s) suggests churn is the bottleneck. "+
			"Even with good margins and demand, high churn makes growth impossible. Focus on customer experience and sticky products.",
			title, fmtUSD(int64(in.LTV)), fmtUSD(int64(in.CAC)))
	case Pricing:
		return fmt.Sprintf("You have a **%s constraint**.\n\n"+
			"Your customers may be undervalued. You're operating at %.0f%% margins with good demand and delivery, "+
			"but you're not capturing enough value from each transaction. The fix is testing higher prices, premium tiers, or value-based pricing models.",
			title, in.Margin*100)
	case Quality:
		return fmt.Sprintf("You have a **%s constraint**.\n\n"+
			"Quality issues are limiting growth. Customers aren't returning, referrals aren't happening, or your reputation is preventing expansion. "+
			"Focus on improving your service or product quality first—growth will follow once you nail execution.",
			title)
	}
	panic("unknown constraint category: " + string(c))
}

// ratioOrZero guards the LTV:CAC division so a zero CAC never surfaces as
// Inf in a rendered template.
func ratioOrZero(in Input) float64 {
	if in.CAC <= 0 {
		return 0
	}
	return in.LTV / in.CAC
}

// fmtUSD formats an integer dollar amount with comma separators
// (e.g. 500000 → "500,000").
func fmtUSD(n int64) string {
	if n < 0 {
		return "-" + fmtUSD(-n)
	}
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
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
	return b.String()
}
