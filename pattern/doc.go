// Package pattern implements the pattern mini-language used by the matcher.
//
// A pattern mixes literal text with placeholders of the form {tag:quantifier}:
//
//	{-+:?}{#,:+}.{#:*}{ :*}{unit:*}
//
// Literal runs become exact tokens, placeholders become tag tokens that are
// validated by a registered validator or matched recursively against the
// patterns of another tag. Patterns of one tag are compiled into a Path trie
// so that common prefixes are matched only once.
//
// Quantifiers:
//
//	{x}      1-1
//	{x:+}    1-Max
//	{x:*}    0-Max
//	{x:?}    0-1
//	{x:N}    N-N
//	{x:N-M}  N-M (N-N when M < N)
//	{x:-M}   0-M
//	{x:N-}   N-N
package pattern
