// Package coverage computes per-Semantic-Domain coverage statistics over an
// LN-tagged text. Each decimal code on a token collapses onto its base
// number and credits every domain mapped to that number; a code matching
// two domains counts once toward each. Unmapped codes never abort a run:
// they are collected and reported at the end.
package coverage

import (
	"sort"

	"github.com/sillsdev/SemDomCoverageTool/louwnida"
	"github.com/sillsdev/SemDomCoverageTool/mapping"
	"github.com/sillsdev/SemDomCoverageTool/taggedtext"
)

// aggregate accumulates one domain's statistics during the pass. Created
// lazily on first match, finalized once into a Row.
type aggregate struct {
	ref      mapping.DomainRef
	total    int
	refs     map[string]struct{}
	codes    map[string]struct{}
	wordRefs map[string][]string // per word, refs deduped in first-seen order
	refSeen  map[string]map[string]struct{}
}

// Unmatched is a decimal code whose base number had no mapping entry, or
// which did not parse as an LN code at all (Base 0 in that case).
type Unmatched struct {
	Decimal string
	Base    int
}

// Computer aggregates tokens against a mapping index. Single pass, single
// goroutine: feed every token with AddToken, then call Finalize once.
type Computer struct {
	index *mapping.Index

	aggs      map[string]*aggregate // keyed by domain abbreviation
	tokens    int
	seenCodes map[string]struct{}
	unmatched map[string]Unmatched
}

// NewComputer returns a Computer matching against ix.
func NewComputer(ix *mapping.Index) *Computer {
	return &Computer{
		index:     ix,
		aggs:      make(map[string]*aggregate),
		seenCodes: make(map[string]struct{}),
		unmatched: make(map[string]Unmatched),
	}
}

// AddToken processes one tagged token: each of its decimal codes either
// credits all domains mapped to the code's base number or is recorded as
// unmatched.
func (c *Computer) AddToken(tok taggedtext.Token) {
	c.tokens++

	for _, decimal := range tok.Codes {
		code, err := louwnida.Parse(decimal)
		if err != nil {
			c.unmatched[decimal] = Unmatched{Decimal: decimal}
			continue
		}
		c.seenCodes[code.Raw] = struct{}{}

		refs := c.index.Lookup(code.Base)
		if len(refs) == 0 {
			c.unmatched[code.Raw] = Unmatched{Decimal: code.Raw, Base: code.Base}
			continue
		}

		for _, domain := range refs {
			c.credit(domain, code.Raw, tok)
		}
	}
}

func (c *Computer) credit(domain mapping.DomainRef, decimal string, tok taggedtext.Token) {
	agg := c.aggs[domain.Abbrev]
	if agg == nil {
		agg = &aggregate{
			ref:      domain,
			refs:     make(map[string]struct{}),
			codes:    make(map[string]struct{}),
			wordRefs: make(map[string][]string),
			refSeen:  make(map[string]map[string]struct{}),
		}
		c.aggs[domain.Abbrev] = agg
	}

	agg.total++
	agg.refs[tok.Ref] = struct{}{}
	agg.codes[decimal] = struct{}{}

	if _, known := agg.refSeen[tok.Text]; !known {
		agg.refSeen[tok.Text] = make(map[string]struct{})
	}
	if _, dup := agg.refSeen[tok.Text][tok.Ref]; !dup {
		agg.refSeen[tok.Text][tok.Ref] = struct{}{}
		agg.wordRefs[tok.Text] = append(agg.wordRefs[tok.Text], tok.Ref)
	}
}

// Finalize sorts and freezes the aggregates into a Result. The Computer
// must not be fed further tokens afterwards.
func (c *Computer) Finalize() *Result {
	res := &Result{
		Tokens:        c.tokens,
		DistinctCodes: len(c.seenCodes),
	}

	abbrevs := make([]string, 0, len(c.aggs))
	for a := range c.aggs {
		abbrevs = append(abbrevs, a)
	}
	sort.Strings(abbrevs)

	for _, a := range abbrevs {
		res.Rows = append(res.Rows, c.aggs[a].finalize())
	}

	for _, u := range c.unmatched {
		res.Unmatched = append(res.Unmatched, u)
	}
	sort.Slice(res.Unmatched, func(i, j int) bool {
		return res.Unmatched[i].Decimal < res.Unmatched[j].Decimal
	})

	return res
}

func (a *aggregate) finalize() Row {
	row := Row{
		SemDom:     a.ref.Abbrev,
		SemDomName: a.ref.Name,
		Total:      a.total,
		UniqueRefs: len(a.refs),
	}

	row.Codes = make([]string, 0, len(a.codes))
	for code := range a.codes {
		row.Codes = append(row.Codes, code)
	}
	sort.Strings(row.Codes)

	words := make([]string, 0, len(a.wordRefs))
	for w := range a.wordRefs {
		words = append(words, w)
	}
	sort.Strings(words)

	row.UniqueWords = len(words)
	for _, w := range words {
		row.Words = append(row.Words, WordRefs{Word: w, Refs: a.wordRefs[w]})
	}

	return row
}
