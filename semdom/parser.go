package semdom

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"

	"github.com/sillsdev/SemDomCoverageTool/louwnida"
)

// DefaultLanguage selects which localized field variants are read.
const DefaultLanguage = "en"

// domainClass marks hierarchy nodes in the FLEx list format. Domain nodes
// are recognized by this class attribute rather than by tag name or depth,
// so the parser tolerates structural variation above and between them.
const domainClass = "CmSemanticDomain"

// Parser reads a Semantic Domains XML list into a Domain forest.
type Parser struct {
	// Lang selects the writing system for localized fields (AUni ws="...").
	Lang string
}

// NewParser returns a Parser reading English localized fields.
func NewParser() *Parser {
	return &Parser{Lang: DefaultLanguage}
}

// node is a generic element-tree view of the document. The Semantic Domains
// list nests domains arbitrarily deep under containers that vary between
// exports, so matching works on tag names and attributes, never on paths.
type node struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Text     string     `xml:",chardata"`
	Children []node     `xml:",any"`
}

func (n *node) attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func (n *node) isDomain() bool {
	return n.attr("class") == domainClass
}

// ParseFile parses the Semantic Domains list at path.
func (p *Parser) ParseFile(path string) ([]Domain, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open semantic domains file: %w", err)
	}
	defer f.Close()

	domains, err := p.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return domains, nil
}

// Parse reads the XML document and returns the top-level domains in
// document order. A non-well-formed document is a fatal error.
func (p *Parser) Parse(r io.Reader) ([]Domain, error) {
	var root node
	if err := xml.NewDecoder(r).Decode(&root); err != nil {
		return nil, fmt.Errorf("malformed semantic domains XML: %w", err)
	}
	return p.topDomains(&root), nil
}

// topDomains finds the outermost domain nodes anywhere under n. The scan
// stops at each domain found; its descendants become that domain's subtree.
func (p *Parser) topDomains(n *node) []Domain {
	var out []Domain
	for i := range n.Children {
		child := &n.Children[i]
		if child.isDomain() {
			out = append(out, p.buildDomain(child))
			continue
		}
		out = append(out, p.topDomains(child)...)
	}
	return out
}

// buildDomain extracts one domain's fields and recurses into its subdomains.
// Field lookup never crosses into a nested domain node, so a parent missing
// its own English name does not steal one from a child.
func (p *Parser) buildDomain(n *node) Domain {
	d := Domain{
		Abbreviation: p.localizedField(n, "Abbreviation"),
		Name:         p.localizedField(n, "Name"),
	}

	if raw := fieldText(n, "LouwNidaCodes", "Uni"); raw != "" {
		d.Codes = louwnida.SplitField(raw)
	}

	var children []Domain
	scanScoped(n, func(child *node) {
		children = append(children, p.buildDomain(child))
	})
	d.Children = children

	return d
}

// localizedField returns the text of field/AUni[ws=Lang] under n, scoped to
// this domain. Missing fields yield "".
func (p *Parser) localizedField(n *node, field string) string {
	holder := findScoped(n, field)
	if holder == nil {
		return ""
	}
	for i := range holder.Children {
		alt := &holder.Children[i]
		if alt.XMLName.Local == "AUni" && alt.attr("ws") == p.Lang {
			return alt.Text
		}
	}
	return ""
}

// fieldText returns the text of field/inner under n, scoped to this domain.
func fieldText(n *node, field, inner string) string {
	holder := findScoped(n, field)
	if holder == nil {
		return ""
	}
	if child := findScoped(holder, inner); child != nil {
		return child.Text
	}
	return ""
}

// findScoped returns the first descendant of n named tag, in document order,
// without descending into nested domain nodes.
func findScoped(n *node, tag string) *node {
	for i := range n.Children {
		child := &n.Children[i]
		if child.isDomain() {
			continue
		}
		if child.XMLName.Local == tag {
			return child
		}
		if found := findScoped(child, tag); found != nil {
			return found
		}
	}
	return nil
}

// scanScoped calls visit for each outermost nested domain node under n.
func scanScoped(n *node, visit func(*node)) {
	for i := range n.Children {
		child := &n.Children[i]
		if child.isDomain() {
			visit(child)
			continue
		}
		scanScoped(child, visit)
	}
}
