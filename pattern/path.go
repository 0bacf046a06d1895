package pattern

// Edge connects a trie node to the child reached by matching Token.
type Edge struct {
	Token *Token
	Path  *Path
}

// Path is a node of the per-tag pattern trie.
// Children are kept in insertion order, which fixes the order in which
// candidates are created and results are reported.
type Path struct {
	Children []Edge

	// MatchedPatterns lists the patterns whose token sequence ends here.
	MatchedPatterns []*Pattern
}

// NewPath creates an empty trie root.
func NewPath() *Path {
	return &Path{}
}

// Child returns the child reached through a token structurally equal to t.
func (p *Path) Child(t *Token) *Path {
	for i := range p.Children {
		if p.Children[i].Token.Equal(t) {
			return p.Children[i].Path
		}
	}
	return nil
}

// AddPattern compiles the token sequence of pat into the trie.
// A pattern is recorded at most once at its terminal node.
func (p *Path) AddPattern(pat *Pattern) {
	cur := p
	for _, t := range pat.Tokens {
		next := cur.Child(t)
		if next == nil {
			next = NewPath()
			cur.Children = append(cur.Children, Edge{Token: t, Path: next})
		}
		cur = next
	}

	for _, existing := range cur.MatchedPatterns {
		if existing.Equal(pat) {
			return
		}
	}
	cur.MatchedPatterns = append(cur.MatchedPatterns, pat)
}

// HasChildren reports whether the node has outgoing edges.
func (p *Path) HasChildren() bool {
	return len(p.Children) > 0
}

// Size returns the number of nodes in the trie rooted at p.
func (p *Path) Size() int {
	n := 1
	for i := range p.Children {
		n += p.Children[i].Path.Size()
	}
	return n
}

// Terminals calls fn for every node carrying matched patterns that is
// reachable from p through optional edges only (MinCount == 0), p included.
// depth is the number of optional edges taken. Traversal is depth-first in
// child order; returning false from fn stops it.
func (p *Path) Terminals(fn func(path *Path, depth int) bool) bool {
	return p.terminals(fn, 0)
}

func (p *Path) terminals(fn func(path *Path, depth int) bool, depth int) bool {
	if len(p.MatchedPatterns) > 0 {
		if !fn(p, depth) {
			return false
		}
	}
	for i := range p.Children {
		child := p.Children[i]
		if child.Token.MinCount > 0 {
			continue
		}
		if !child.Path.terminals(fn, depth+1) {
			return false
		}
	}
	return true
}
