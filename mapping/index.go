package mapping

import "github.com/sillsdev/SemDomCoverageTool/louwnida"

// DomainRef identifies one Semantic Domain credited for a base number.
type DomainRef struct {
	Abbrev string
	Name   string
}

// Index is the lookup structure used by coverage computation: LN base
// number to the ordered set of domains listing any code with that number.
// Order follows first appearance in the table so lookups are deterministic.
// The index is built once and read-only afterwards.
type Index struct {
	byBase map[int][]DomainRef
	rows   int
}

// Index builds the base-number lookup from the table. Rows whose code does
// not parse are ignored; duplicate (base, domain) pairs collapse to one
// entry, keeping first-seen order.
func (t *Table) Index() *Index {
	ix := &Index{byBase: make(map[int][]DomainRef)}

	seen := make(map[int]map[DomainRef]struct{})
	for _, r := range t.Rows {
		code, err := louwnida.Parse(r.Code)
		if err != nil {
			continue
		}
		ref := DomainRef{Abbrev: r.SemDom, Name: r.SemDomName}

		if seen[code.Base] == nil {
			seen[code.Base] = make(map[DomainRef]struct{})
		}
		if _, dup := seen[code.Base][ref]; dup {
			continue
		}
		seen[code.Base][ref] = struct{}{}
		ix.byBase[code.Base] = append(ix.byBase[code.Base], ref)
		ix.rows++
	}

	return ix
}

// Lookup returns the domains credited for a base number, or nil when the
// number is unmapped. Callers must not modify the returned slice.
func (ix *Index) Lookup(base int) []DomainRef {
	return ix.byBase[base]
}

// Bases returns the number of distinct base numbers in the index.
func (ix *Index) Bases() int {
	return len(ix.byBase)
}

// Len returns the number of distinct (base, domain) pairs.
func (ix *Index) Len() int {
	return ix.rows
}
