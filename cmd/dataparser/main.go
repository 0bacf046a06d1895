// Package main implements the dataparser CLI tool.
// It prints every typed value each input can be read as.
package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"github.com/gofhir/dataparser"
	"github.com/gofhir/dataparser/matcher"
	"github.com/gofhir/dataparser/module/locale"
	"github.com/gofhir/dataparser/pkg/logger"
	"github.com/gofhir/dataparser/value"
)

const (
	version = "0.1.0"
	usage   = `dataparser - typed value recognition for plain text

Usage:
  dataparser [options] <value>...
  dataparser [options] -            (one value per line from stdin)
  cat values.txt | dataparser -

Examples:
  dataparser true "1,234.56 kg" 2024-01-15
  dataparser -lang de 1.234,56 15.01.2024
  dataparser -culture en-GB -date 15/01/2024
  dataparser -reasons -output json 0x1F
  dataparser -locales my-locales.yaml -lang nl waar

Options:
`
)

// OutputFormat specifies the output format.
type OutputFormat string

// Output format constants.
const (
	OutputText OutputFormat = "text"
	OutputJSON OutputFormat = "json"
)

// Config holds CLI configuration
type Config struct {
	Language    string
	Culture     string
	Modules     []string
	LocalesFile string
	Output      OutputFormat
	NoTrim      bool
	Reasons     bool
	StrictUnits bool
	DateOnly    bool
	Workers     int
	Stats       bool
	LogLevel    string
	Verbose     bool
	ShowVersion bool
	Help        bool
	Values      []string
}

// ParseOutput represents the JSON output of one input
type ParseOutput struct {
	Input   string          `json:"input"`
	Matched bool            `json:"matched"`
	Values  []ValueOutput   `json:"values"`
	Reasons []matcher.Trace `json:"reasons,omitempty"`
	Error   string          `json:"error,omitempty"`
}

// ValueOutput represents a single parsed value in JSON output
type ValueOutput struct {
	Kind  value.Kind `json:"kind"`
	Text  string     `json:"text"`
	Value any        `json:"value"`
}

func main() {
	config := parseFlags()

	if config.ShowVersion {
		fmt.Printf("dataparser v%s\n", version)
		os.Exit(0)
	}

	if config.Help || len(config.Values) == 0 {
		flag.Usage()
		os.Exit(0)
	}

	exitCode := run(config)
	os.Exit(exitCode)
}

func parseFlags() *Config {
	config := &Config{
		Output: OutputText,
	}

	var modules, output string

	flag.StringVar(&config.Language, "lang", "en", "Language of the locale tables (en, de, fr, ...)")
	flag.StringVar(&config.Culture, "culture", "", "Culture refining the language (e.g. en-GB)")
	flag.StringVar(&modules, "modules", "", "Value modules to load (comma-separated: boolean, number, date)")
	flag.StringVar(&config.LocalesFile, "locales", "", "YAML file with additional locale tables")
	flag.StringVar(&output, "output", "text", "Output format: text, json")
	flag.BoolVar(&config.NoTrim, "no-trim", false, "Keep leading and trailing whitespace significant")
	flag.BoolVar(&config.Reasons, "reasons", false, "Show why candidates were kept or dropped")
	flag.BoolVar(&config.StrictUnits, "strict-units", false, "Accept only known unit symbols")
	flag.BoolVar(&config.DateOnly, "date", false, "Only look for dates")
	flag.IntVar(&config.Workers, "workers", 0, "Parallel workers for many values (0 = number of CPUs)")
	flag.BoolVar(&config.Stats, "stats", false, "Print parse metrics to stderr")
	flag.StringVar(&config.LogLevel, "log-level", "warn", "Log level: debug, info, warn, error, none")
	flag.BoolVar(&config.Verbose, "verbose", false, "Shorthand for -log-level debug")
	flag.BoolVar(&config.ShowVersion, "v", false, "Show version")
	flag.BoolVar(&config.Help, "help", false, "Show help")

	flag.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		flag.PrintDefaults()
	}

	flag.Parse()

	if modules != "" {
		for _, m := range strings.Split(modules, ",") {
			config.Modules = append(config.Modules, strings.TrimSpace(m))
		}
	}

	switch strings.ToLower(output) {
	case "json":
		config.Output = OutputJSON
	default:
		config.Output = OutputText
	}

	if config.Verbose {
		config.LogLevel = "debug"
	}

	// Remaining arguments are values
	config.Values = flag.Args()

	return config
}

func run(config *Config) int {
	level, err := logger.ParseLevel(config.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	logger.SetLevel(level)

	opts, err := buildOptions(config)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}

	p, err := dataparser.New(opts...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: Failed to initialize parser: %v\n", err)
		return 2
	}
	logger.Info("parser ready (locale %s)", p.Locale().Name)

	values, err := readValues(config.Values, os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading stdin: %v\n", err)
		return 2
	}

	outputs := parseAll(p, values, config)

	unmatched := false
	for _, out := range outputs {
		if !out.Matched {
			unmatched = true
		}
	}

	if config.Output == OutputJSON {
		jsonOutput, _ := json.MarshalIndent(outputs, "", "  ")
		fmt.Println(string(jsonOutput))
	} else {
		for _, out := range outputs {
			printTextResult(os.Stdout, out)
		}
	}

	if config.Stats && p.Metrics() != nil {
		printStats(os.Stderr, p.Metrics().Snapshot())
	}

	if unmatched {
		return 1
	}
	return 0
}

func buildOptions(config *Config) ([]dataparser.Option, error) {
	opts := []dataparser.Option{
		dataparser.WithLanguage(config.Language),
		dataparser.WithCulture(config.Culture),
		dataparser.WithTrimWhitespace(!config.NoTrim),
		dataparser.WithReasons(config.Reasons),
		dataparser.WithStrictUnits(config.StrictUnits),
		dataparser.WithWorkerCount(config.Workers),
	}

	if len(config.Modules) > 0 {
		names, err := dataparser.ParseModuleNames(config.Modules)
		if err != nil {
			return nil, err
		}
		opts = append(opts, dataparser.WithModules(names...))
	}

	if config.LocalesFile != "" {
		f, err := os.Open(config.LocalesFile)
		if err != nil {
			return nil, fmt.Errorf("open locales: %w", err)
		}
		defer f.Close()

		cat, err := locale.Load(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", config.LocalesFile, err)
		}
		opts = append(opts, dataparser.WithLocales(cat))
	}

	if config.Stats {
		opts = append(opts, dataparser.WithMetrics(dataparser.NewMetrics()))
	}

	return opts, nil
}

// readValues expands "-" into the lines read from stdin.
func readValues(args []string, stdin io.Reader) ([]string, error) {
	var values []string
	for _, arg := range args {
		if arg != "-" {
			values = append(values, arg)
			continue
		}
		scanner := bufio.NewScanner(stdin)
		for scanner.Scan() {
			if line := scanner.Text(); line != "" {
				values = append(values, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}
	return values, nil
}

func parseAll(p *dataparser.Parser, values []string, config *Config) []ParseOutput {
	outputs := make([]ParseOutput, 0, len(values))

	switch {
	case config.DateOnly:
		for _, v := range values {
			out := ParseOutput{Input: v, Values: []ValueOutput{}}
			if d, ok := p.ParseDate(v); ok {
				out.Matched = true
				out.Values = append(out.Values, toValueOutput(d))
			}
			outputs = append(outputs, out)
		}

	case config.Reasons:
		for _, v := range values {
			res := p.Explain(v)
			out := newParseOutput(v, res.Values)
			out.Reasons = res.Reasons
			outputs = append(outputs, out)
		}

	default:
		for _, r := range p.ParseBatch(context.Background(), values) {
			out := newParseOutput(r.Input, r.Values)
			if r.Error != nil {
				out.Error = r.Error.Error()
			}
			outputs = append(outputs, out)
		}
	}

	return outputs
}

func newParseOutput(input string, values []any) ParseOutput {
	out := ParseOutput{
		Input:   input,
		Matched: len(values) > 0,
		Values:  make([]ValueOutput, 0, len(values)),
	}
	for _, v := range values {
		out.Values = append(out.Values, toValueOutput(v))
	}
	return out
}

func toValueOutput(v any) ValueOutput {
	return ValueOutput{
		Kind:  value.KindOf(v),
		Text:  fmt.Sprint(v),
		Value: v,
	}
}

func printTextResult(w io.Writer, out ParseOutput) {
	fmt.Fprintf(w, "== %s ==\n", out.Input)

	if out.Error != "" {
		fmt.Fprintf(w, "  ERROR %s\n", out.Error)
	} else if !out.Matched {
		fmt.Fprintln(w, "  (no match)")
	}
	for _, v := range out.Values {
		fmt.Fprintf(w, "  %-8s %s\n", v.Kind, v.Text)
	}

	if len(out.Reasons) > 0 {
		fmt.Fprintln(w, "\nReasons:")
		for _, tr := range out.Reasons {
			fmt.Fprintf(w, "  %s\n", tr.Node)
			for _, r := range tr.Reasons {
				fmt.Fprintf(w, "    %s [%s ~ %q] -> %v\n", r.Test, r.Token, r.TextValue, r.Result)
			}
		}
	}

	fmt.Fprintln(w)
}

func printStats(w io.Writer, s dataparser.Snapshot) {
	fmt.Fprintf(w, "Parses: %d (matched %d, %.0f%%)\n", s.ParsesTotal, s.ParsesMatched, s.MatchRate*100)
	fmt.Fprintf(w, "Results: %d\n", s.ResultsTotal)
	for _, k := range s.Kinds {
		fmt.Fprintf(w, "  %-8s %d\n", k.Kind, k.Results)
	}
	fmt.Fprintf(w, "Parse time: avg %s, min %s, max %s\n",
		time.Duration(s.AvgParseTimeNs), //nolint:gosec // Safe: nanoseconds within int64 range
		time.Duration(s.MinParseTimeNs), //nolint:gosec // Safe: nanoseconds within int64 range
		time.Duration(s.MaxParseTimeNs)) //nolint:gosec // Safe: nanoseconds within int64 range
}
