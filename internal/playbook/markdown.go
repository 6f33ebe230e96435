package playbook

import (
	"fmt"
	"strings"
)

// FormatMarkdown renders a playbook as a GitHub-flavored markdown document.
// Output depends only on the playbook contents, so rendering the same
// playbook twice yields byte-identical documents.
func FormatMarkdown(p *Playbook) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", sanitize(p.Title))

	fmt.Fprintf(&b, "## Business Context\n\n")
	fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(p.BusinessContext))

	fmt.Fprintf(&b, "## Where You Are Today\n\n")
	fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(p.CurrentState))

	fmt.Fprintf(&b, "## Where You're Headed\n\n")
	fmt.Fprintf(&b, "%s\n\n", strings.TrimSpace(p.TargetState))

	fmt.Fprintf(&b, "## Key Metrics\n\n")
	fmt.Fprintf(&b, "| Metric | Current | Target | How to Measure | Frequency |\n")
	fmt.Fprintf(&b, "|--------|---------|--------|----------------|----------|\n")
	for _, m := range p.KeyMetrics {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %s |\n",
			sanitizeCell(m.Name), sanitizeCell(m.Current), sanitizeCell(m.Target),
			sanitizeCell(m.Measurement), sanitizeCell(m.Frequency))
	}
	fmt.Fprintf(&b, "\n")

	fmt.Fprintf(&b, "## 90-Day Roadmap\n\n")
	for _, phase := range p.Roadmap {
		fmt.Fprintf(&b, "### %s\n\n", sanitize(phase.Phase))
		fmt.Fprintf(&b, "**Objectives**\n\n")
		for _, o := range phase.Objectives {
			fmt.Fprintf(&b, "- %s\n", sanitize(o))
		}
		fmt.Fprintf(&b, "\n**Actions**\n\n")
		for _, a := range phase.Actions {
			fmt.Fprintf(&b, "- %s\n", sanitize(a))
		}
		fmt.Fprintf(&b, "\n**Success Criteria**\n\n")
		for _, s := range phase.SuccessCriteria {
			fmt.Fprintf(&b, "- %s\n", sanitize(s))
		}
		fmt.Fprintf(&b, "\n**Risks**\n\n")
		for _, r := range phase.Risks {
			fmt.Fprintf(&b, "- [!] %s\n", sanitize(r))
		}
		fmt.Fprintf(&b, "\n")
	}

	fmt.Fprintf(&b, "## Do These First\n\n")
	for i, a := range p.CriticalActions {
		fmt.Fprintf(&b, "%d. %s\n", i+1, sanitize(a))
	}
	fmt.Fprintf(&b, "\n")

	fmt.Fprintf(&b, "## Resources\n\n")
	for _, r := range p.Resources {
		fmt.Fprintf(&b, "- **%s** (`%s`): %s\n", sanitize(r.Title), r.Type, sanitize(r.Description))
	}
	fmt.Fprintf(&b, "\n")

	return b.String()
}

// sanitize strips newlines so injected values cannot break block structure.
func sanitize(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "\n", " "))
}

// sanitizeCell prepares text for a markdown table cell: strips newlines and
// escapes pipes that would break the column structure.
func sanitizeCell(s string) string {
	s = sanitize(s)
	return strings.ReplaceAll(s, "|", "\\|")
}
