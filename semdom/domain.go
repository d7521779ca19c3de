// Package semdom models the SIL Semantic Domains hierarchy and parses it
// from its XML list form. Domains form a tree; consumers that only need the
// flat (LN code, domain) relation walk the tree once and discard it.
package semdom

// Domain is one node in the Semantic Domains hierarchy.
type Domain struct {
	// Abbreviation is the short domain identifier, e.g. "A.1". Empty when
	// the node carries no field in the selected language.
	Abbreviation string

	// Name is the display name in the selected language.
	Name string

	// Codes holds the raw LouwNidaCodes entries attached to this node,
	// semicolon-split and trimmed, in document order. May be empty.
	Codes []string

	// Children are the subdomains in document order.
	Children []Domain
}

// Walk visits d and every descendant domain depth-first in document order.
func (d *Domain) Walk(visit func(*Domain)) {
	visit(d)
	for i := range d.Children {
		d.Children[i].Walk(visit)
	}
}

// WalkAll visits every domain in a forest depth-first in document order.
func WalkAll(domains []Domain, visit func(*Domain)) {
	for i := range domains {
		domains[i].Walk(visit)
	}
}
