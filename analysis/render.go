package analysis

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DefaultWidth is the console report width in columns.
const DefaultWidth = 70

// Render writes the human-readable report. width bounds the subdomain-form
// column; lists longer than that are truncated with an ellipsis.
func (r *Report) Render(w io.Writer, width int) {
	if width <= 0 {
		width = DefaultWidth
	}
	rule := strings.Repeat("=", width)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "LouwNida Code Analysis")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)

	total := r.MaxBase - r.MinBase + 1
	fmt.Fprintf(w, "Total code numbers found: %d out of %d\n\n", len(r.Numbers), total)

	if missing := r.MissingNumbers(); len(missing) > 0 {
		fmt.Fprintf(w, "Missing code numbers (%d):\n", len(missing))
		fmt.Fprintln(w, "  "+joinInts(missing))
	} else {
		fmt.Fprintf(w, "All %d code numbers are present!\n", total)
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Subdomain Counts by Code Number")
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%-6s %-7s %s\n", "Code", "Count", "Subdomains")
	fmt.Fprintln(w, strings.Repeat("-", width))

	formWidth := width - 20
	for _, n := range r.PresentNumbers() {
		stats := r.Numbers[n]
		forms := strings.Join(stats.Forms, ", ")
		if len(forms) > formWidth {
			forms = forms[:formWidth-3] + "..."
		}
		fmt.Fprintf(w, "%-6d %-7d %s\n", n, stats.Rows, forms)
	}
	fmt.Fprintln(w)

	if len(r.Anomalies) > 0 {
		fmt.Fprintln(w, rule)
		fmt.Fprintln(w, "Out-of-Range Codes")
		fmt.Fprintln(w, rule)
		for _, a := range r.Anomalies {
			fmt.Fprintf(w, "  %s (number %d, domain %s)\n", a.Code, a.Base, a.SemDom)
		}
		fmt.Fprintln(w)
	}

	if len(r.Unparsable) > 0 {
		fmt.Fprintln(w, rule)
		fmt.Fprintln(w, "Unparsable Codes")
		fmt.Fprintln(w, rule)
		for _, c := range r.Unparsable {
			fmt.Fprintf(w, "  %q\n", c)
		}
		fmt.Fprintln(w)
	}

	s := r.Summarize()
	fmt.Fprintln(w, rule)
	fmt.Fprintln(w, "Summary Statistics")
	fmt.Fprintln(w, rule)
	fmt.Fprintf(w, "Total LouwNida codes: %d\n", s.TotalRows)
	fmt.Fprintf(w, "Numbers present: %d, missing: %d\n", s.Present, s.Missing)
	if s.Present > 0 {
		fmt.Fprintf(w, "Subdomains per number: min %d, max %d (Code %d), mean %.2f\n",
			s.MinRows, s.MaxRows, s.MaxNumber, s.MeanRows)
	}
	if s.Anomalies > 0 {
		fmt.Fprintf(w, "Out-of-range codes: %d\n", s.Anomalies)
	}
	if s.Unparsable > 0 {
		fmt.Fprintf(w, "Unparsable codes: %d\n", s.Unparsable)
	}
}

func joinInts(nums []int) string {
	parts := make([]string, len(nums))
	for i, n := range nums {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ", ")
}
