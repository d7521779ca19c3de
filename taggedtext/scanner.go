// Package taggedtext extracts LN-tagged tokens from corpus XML. Tokens are
// elements carrying an ln attribute; they may sit at any depth and under any
// surrounding structure, so the scanner streams the document and matches on
// attributes alone.
package taggedtext

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/sillsdev/SemDomCoverageTool/louwnida"
)

// Token is one tagged occurrence in the text.
type Token struct {
	// Text is the surface form, NFC-normalized with collapsed whitespace.
	// Composed and decomposed spellings of the same Greek word must compare
	// equal when words are deduplicated downstream.
	Text string

	// Codes are the LN decimal codes from the ln attribute, in order.
	Codes []string

	// Ref is the location string from the ref attribute, "" when absent.
	Ref string
}

// ScanFile streams the document at path, calling fn for each token in
// document order.
func ScanFile(path string, fn func(Token) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open tagged text: %w", err)
	}
	defer f.Close()

	if err := Scan(f, fn); err != nil {
		return fmt.Errorf("scan %s: %w", path, err)
	}
	return nil
}

// openToken tracks an ln-bearing element whose end tag is still pending.
type openToken struct {
	codes []string
	ref   string
	depth int
	text  strings.Builder
}

// Scan streams the XML document in document order and calls fn for every
// element with an ln attribute. Elements without the attribute are plain
// structure and are descended through. A non-well-formed document is a
// fatal error; a half-scanned document may already have produced tokens,
// so callers should discard results on error.
func Scan(r io.Reader, fn func(Token) error) error {
	dec := xml.NewDecoder(r)

	depth := 0
	var open []*openToken

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("malformed tagged-text XML: %w", err)
		}

		switch el := tok.(type) {
		case xml.StartElement:
			depth++
			if ot := newOpenToken(el, depth); ot != nil {
				open = append(open, ot)
			}

		case xml.CharData:
			// Text contributes to every open token so a token wrapping
			// markup still gets its full surface form.
			for _, ot := range open {
				ot.text.Write(el)
			}

		case xml.EndElement:
			if n := len(open); n > 0 && open[n-1].depth == depth {
				ot := open[n-1]
				open = open[:n-1]
				if err := fn(ot.finish()); err != nil {
					return err
				}
			}
			depth--
		}
	}

	return nil
}

func newOpenToken(el xml.StartElement, depth int) *openToken {
	var ln string
	var hasLN bool
	var ref string
	for _, a := range el.Attr {
		switch a.Name.Local {
		case "ln":
			ln = a.Value
			hasLN = true
		case "ref":
			ref = a.Value
		}
	}
	if !hasLN {
		return nil
	}

	codes := louwnida.SplitList(ln)
	if len(codes) == 0 {
		// An empty ln attribute is treated like a missing one.
		return nil
	}

	return &openToken{codes: codes, ref: ref, depth: depth}
}

func (ot *openToken) finish() Token {
	return Token{
		Text:  normalizeText(ot.text.String()),
		Codes: ot.codes,
		Ref:   ot.ref,
	}
}

func normalizeText(s string) string {
	return norm.NFC.String(strings.Join(strings.Fields(s), " "))
}
