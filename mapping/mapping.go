// Package mapping builds and loads the flat LN-code to Semantic Domain
// mapping table. The relation is many-to-many in both directions: one LN
// code can appear under several domains, and one domain can list several
// codes. Rows preserve document order so repeated builds are reproducible.
package mapping

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/sillsdev/SemDomCoverageTool/louwnida"
	"github.com/sillsdev/SemDomCoverageTool/semdom"
)

// Header is the mapping CSV header row.
var Header = []string{"LouwNida_Code", "SemDom", "SemDom_Name"}

// Row is one persisted (LN code, Semantic Domain) pair.
type Row struct {
	// Code is the normalized LN code string, e.g. "14A" or "89".
	Code string

	// SemDom is the domain abbreviation, never empty.
	SemDom string

	// SemDomName is the domain's English display name, possibly empty.
	SemDomName string
}

// Table is an ordered mapping table.
type Table struct {
	Rows []Row

	// SkippedCodes counts LouwNidaCodes entries dropped by Build because
	// they did not parse as LN codes. Recoverable gap, surfaced in
	// summaries only.
	SkippedCodes int

	// SkippedRows counts CSV rows dropped by Read because the code or
	// domain field was empty.
	SkippedRows int

	// SkippedDomains counts domain nodes that listed codes but had no
	// abbreviation in the selected language, so no row could be emitted.
	SkippedDomains int
}

// Build flattens a Semantic Domains forest into a mapping table: one row
// per (LN code, domain) pair, depth-first in document order. Domains with
// no codes contribute nothing but are still traversed. Entries that do not
// parse as LN codes are skipped; a domain whose abbreviation is missing
// cannot be keyed and its codes are skipped as a counted gap.
func Build(domains []semdom.Domain) *Table {
	t := &Table{}

	semdom.WalkAll(domains, func(d *semdom.Domain) {
		if len(d.Codes) == 0 {
			return
		}
		if d.Abbreviation == "" {
			t.SkippedDomains++
			return
		}
		for _, raw := range d.Codes {
			code, err := louwnida.Parse(raw)
			if err != nil {
				t.SkippedCodes++
				continue
			}
			t.Rows = append(t.Rows, Row{
				Code:       code.Raw,
				SemDom:     d.Abbreviation,
				SemDomName: d.Name,
			})
		}
	})

	return t
}

// DistinctCodes returns the number of distinct LN code strings in the table.
func (t *Table) DistinctCodes() int {
	seen := make(map[string]struct{}, len(t.Rows))
	for _, r := range t.Rows {
		seen[r.Code] = struct{}{}
	}
	return len(seen)
}

// ReadFile loads a mapping table from a CSV file produced by Build. The
// file is opened read-only and never modified.
func ReadFile(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open mapping file: %w", err)
	}
	defer f.Close()

	t, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return t, nil
}

// Read loads a mapping table from CSV. The header must match Header. Rows
// with an empty code or domain field are skipped as counted gaps.
func Read(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(Header)

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read mapping header: %w", err)
	}
	for i, want := range Header {
		if header[i] != want {
			return nil, fmt.Errorf("unexpected mapping header %v, want %v", header, Header)
		}
	}

	t := &Table{}
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read mapping row: %w", err)
		}
		if record[0] == "" || record[1] == "" {
			t.SkippedRows++
			continue
		}
		t.Rows = append(t.Rows, Row{
			Code:       record[0],
			SemDom:     record[1],
			SemDomName: record[2],
		})
	}

	return t, nil
}
