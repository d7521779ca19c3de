// Package analysis produces the diagnostic report over a mapping table:
// which LN domain numbers are covered, how many subdomain rows each one
// carries, and which rows fall outside the expected range. The analysis is
// read-only over the table.
package analysis

import (
	"sort"

	"github.com/sillsdev/SemDomCoverageTool/louwnida"
	"github.com/sillsdev/SemDomCoverageTool/mapping"
)

// NumberStats accumulates the rows referencing one LN domain number.
type NumberStats struct {
	// Rows is the number of mapping rows whose code has this base number.
	Rows int

	// Forms are the distinct code forms seen (e.g. "14A", "14B"), sorted.
	Forms []string
}

// Anomaly is a row whose base number falls outside the analyzed range.
// Anomalies are counted alongside in-range numbers but reported separately
// so they are never silently absorbed.
type Anomaly struct {
	Code   string
	Base   int
	SemDom string
}

// Summary holds the roll-up statistics over present numbers.
type Summary struct {
	Present    int
	Missing    int
	TotalRows  int
	MinRows    int
	MaxRows    int
	MeanRows   float64
	MaxNumber  int // the number holding MaxRows
	Anomalies  int
	Unparsable int
}

// Report is the full analysis result.
type Report struct {
	// MinBase and MaxBase bound the analyzed number range, inclusive.
	MinBase int
	MaxBase int

	// Numbers maps each in-range base number with at least one row to its
	// stats.
	Numbers map[int]*NumberStats

	// Anomalies lists out-of-range rows in table order.
	Anomalies []Anomaly

	// Unparsable lists code strings that did not parse, in table order.
	Unparsable []string
}

// Analyze indexes the table by base number over [minBase, maxBase].
func Analyze(t *mapping.Table, minBase, maxBase int) *Report {
	r := &Report{
		MinBase: minBase,
		MaxBase: maxBase,
		Numbers: make(map[int]*NumberStats),
	}

	forms := make(map[int]map[string]struct{})
	for _, row := range t.Rows {
		code, err := louwnida.Parse(row.Code)
		if err != nil {
			r.Unparsable = append(r.Unparsable, row.Code)
			continue
		}
		if code.Base < minBase || code.Base > maxBase {
			r.Anomalies = append(r.Anomalies, Anomaly{
				Code:   row.Code,
				Base:   code.Base,
				SemDom: row.SemDom,
			})
			continue
		}

		stats := r.Numbers[code.Base]
		if stats == nil {
			stats = &NumberStats{}
			r.Numbers[code.Base] = stats
			forms[code.Base] = make(map[string]struct{})
		}
		stats.Rows++
		forms[code.Base][code.Raw] = struct{}{}
	}

	for base, set := range forms {
		stats := r.Numbers[base]
		stats.Forms = make([]string, 0, len(set))
		for form := range set {
			stats.Forms = append(stats.Forms, form)
		}
		sort.Strings(stats.Forms)
	}

	return r
}

// PresentNumbers returns the covered numbers in ascending order.
func (r *Report) PresentNumbers() []int {
	out := make([]int, 0, len(r.Numbers))
	for n := range r.Numbers {
		out = append(out, n)
	}
	sort.Ints(out)
	return out
}

// MissingNumbers returns the in-range numbers with no rows, ascending.
func (r *Report) MissingNumbers() []int {
	var out []int
	for n := r.MinBase; n <= r.MaxBase; n++ {
		if _, ok := r.Numbers[n]; !ok {
			out = append(out, n)
		}
	}
	return out
}

// Summarize computes the roll-up statistics.
func (r *Report) Summarize() Summary {
	s := Summary{
		Present:    len(r.Numbers),
		Missing:    r.MaxBase - r.MinBase + 1 - len(r.Numbers),
		Anomalies:  len(r.Anomalies),
		Unparsable: len(r.Unparsable),
	}

	for _, n := range r.PresentNumbers() {
		rows := r.Numbers[n].Rows
		s.TotalRows += rows
		if s.MinRows == 0 || rows < s.MinRows {
			s.MinRows = rows
		}
		if rows > s.MaxRows {
			s.MaxRows = rows
			s.MaxNumber = n
		}
	}
	if s.Present > 0 {
		s.MeanRows = float64(s.TotalRows) / float64(s.Present)
	}

	return s
}
