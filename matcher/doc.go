// Package matcher implements the incremental pattern matcher.
//
// A Matcher owns a set of pattern tries keyed by tag and a table of
// validators keyed by token tag. Match feeds the input one rune at a time to
// a set of live candidates, each positioned on a trie edge. Candidates fork
// whenever a token could end at the current position, so every way of
// splitting the input over the registered patterns is explored at once.
// Tokens whose value names another pattern tag are matched recursively in a
// nested session.
//
// Basic usage:
//
//	m := matcher.New()
//	if err := m.Register(myModule); err != nil {
//	    return err
//	}
//	res := m.Match(pattern.NewContext(), "1,234.56 kg")
//	for _, v := range res.Values {
//	    fmt.Println(v)
//	}
//
// Values are ordered most specific first. Registration and matching may be
// called concurrently; registration waits for running matches.
package matcher
