package audit

import (
	"fmt"
	"io"
	"strings"
)

// RenderMarkdown writes the report as a markdown document. The whole
// document is assembled in memory first and written with a single call,
// so a failing sink never receives a partial report and the in-memory
// Report can be retried against another writer.
func RenderMarkdown(w io.Writer, r *Report) error {
	if _, err := io.WriteString(w, RenderMarkdownString(r)); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}

// RenderMarkdownString renders the report to a markdown string.
func RenderMarkdownString(r *Report) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Color Contrast Audit Report\n\n")
	fmt.Fprintf(&b, "Generated: %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))

	fmt.Fprintf(&b, "## Summary\n\n")
	fmt.Fprintf(&b, "- Pairs audited: %d\n", r.Totals.Count)
	fmt.Fprintf(&b, "- AA (normal text): %d (%.1f%%)\n", r.Totals.PassAA, r.Totals.Percent(r.Totals.PassAA))
	fmt.Fprintf(&b, "- AAA (normal text): %d (%.1f%%)\n", r.Totals.PassAAA, r.Totals.Percent(r.Totals.PassAAA))
	fmt.Fprintf(&b, "- Large text only: %d\n", r.Totals.LargeTextOnly)
	fmt.Fprintf(&b, "- Failing: %d\n\n", r.Totals.Fail)
	fmt.Fprintf(&b, "**Verdict: %s**\n\n", r.Verdict())

	for _, cat := range r.Categories {
		fmt.Fprintf(&b, "## %s\n\n", cat)
		fmt.Fprintf(&b, "| Name | Ratio | Result |\n")
		fmt.Fprintf(&b, "|------|------:|--------|\n")
		for _, res := range r.ByCategory[cat] {
			fmt.Fprintf(&b, "| %s | %.2f | %s %s |\n", res.Case.Name, res.Ratio, statusGlyph(res), res.Level.Label())
		}
		fmt.Fprintf(&b, "\n")
	}

	failing := r.FailingAA()
	if len(failing) > 0 {
		fmt.Fprintf(&b, "## Remediation\n\n")
		for _, res := range failing {
			fmt.Fprintf(&b, "- **%s** (%s): %s on %s, ratio %.2f, needs a %.1f%% contrast increase to reach AA.\n",
				res.Case.Name, res.Case.Category,
				res.Case.Foreground.Hex(), res.Case.Background.Hex(),
				res.Ratio, NeededIncreasePercent(res.Ratio))
		}
		fmt.Fprintf(&b, "\n")
	}

	return b.String()
}

func statusGlyph(res Result) string {
	if res.Level.MeetsAA {
		return "✔"
	}
	return "✘"
}
