package coverage

import "strings"

// Header is the coverage CSV header row.
var Header = []string{
	"SemDom",
	"SemDom_Name",
	"Total_Ln_Decimal_Codes",
	"Total_Unique_Words",
	"Total_Unique_References",
	"Ln_Decimal_Codes_Mapped",
	"Associated_Words_With_Refs",
}

// WordRefs pairs one unique word with its references, deduplicated and in
// first-seen order.
type WordRefs struct {
	Word string
	Refs []string
}

// Row is one finalized per-domain coverage record. Rows sort by SemDom
// abbreviation, words lexicographically; both orders are fixed so repeated
// runs produce identical output.
type Row struct {
	SemDom      string
	SemDomName  string
	Total       int
	UniqueWords int
	UniqueRefs  int
	Codes       []string
	Words       []WordRefs
}

// CodesField renders the matched decimal codes display string.
func (r Row) CodesField() string {
	return strings.Join(r.Codes, "; ")
}

// WordsField renders the associated-words display string in the
// `word1 (Ref1; Ref2)|word2 (Ref3)` sub-format.
func (r Row) WordsField() string {
	entries := make([]string, len(r.Words))
	for i, wr := range r.Words {
		entries[i] = wr.Word + " (" + strings.Join(wr.Refs, "; ") + ")"
	}
	return strings.Join(entries, "|")
}

// Result is the outcome of one aggregation pass.
type Result struct {
	// Rows holds one record per domain that received at least one match,
	// ordered by abbreviation.
	Rows []Row

	// Tokens is the number of tagged tokens processed.
	Tokens int

	// DistinctCodes is the number of distinct parsable decimal codes seen.
	DistinctCodes int

	// Unmatched lists the distinct codes that credited no domain, sorted.
	Unmatched []Unmatched
}
