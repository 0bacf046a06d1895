// Package dataparser reads plain-text values such as "true", "1,234.56 kg"
// or "15.01.2024" and returns every typed value they can be interpreted as.
//
// Interpretations come from patterns written in a small template language.
// A pattern is a sequence of literal text and {tag:quantifier} placeholders;
// each tag is checked character by character by a validator, or by the
// patterns registered under that tag. The engine lives in package matcher,
// the template language in package pattern.
//
// # Quick Start
//
//	import "github.com/gofhir/dataparser"
//
//	p, err := dataparser.New(dataparser.WithLanguage("de"))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, v := range p.Parse("1.234,56") {
//	    fmt.Println(v) // 1234.56
//	}
//
// # Functional Options
//
//	p, err := dataparser.New(
//	    dataparser.WithModules(dataparser.ModuleNumber, dataparser.ModuleDate),
//	    dataparser.WithCulture("en-GB"),
//	    dataparser.WithStrictUnits(true),
//	    dataparser.WithMetrics(dataparser.NewMetrics()),
//	)
//
// # Value Modules
//
//   - boolean: truthy and falsy words of the locale
//   - number: integers, decimals, grouping, exponents, hex and units
//   - date: ISO dates and dates in the locale's field order
//
// Locale tables are YAML; WithLocales adds or overrides entries.
//
// # Diagnostics
//
// Explain returns, next to the values, the trace of every decision taken
// for the candidates that survived (or were dropped last, when nothing
// matched).
//
// # Sharing Matchers
//
// Building a matcher compiles all module patterns. A Registry keeps built
// matchers by name so parsers created with WithRegistry(reg, name) share one.
package dataparser
