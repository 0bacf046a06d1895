package dataparser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gofhir/dataparser/module/locale"
	"github.com/gofhir/dataparser/pkg/logger"
	"github.com/gofhir/dataparser/value"
)

func newTestParser(t *testing.T, opts ...Option) *Parser {
	t.Helper()
	p, err := New(append([]Option{WithLogger(logger.Discard())}, opts...)...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return p
}

func num(s string, decimals int, unit string) value.Number {
	return value.Number{Value: decimal.RequireFromString(s), Decimals: decimals, Unit: unit}
}

func ymd(y, m, d int) value.Date {
	v, _ := value.NewDate(y, m, d)
	return v
}

func contains(values []any, want any) bool {
	for _, v := range values {
		if value.Equal(v, want) {
			return true
		}
	}
	return false
}

func TestNew_Defaults(t *testing.T) {
	p := newTestParser(t)

	if p.Locale().Name != "en" {
		t.Errorf("Locale().Name = %q; want en", p.Locale().Name)
	}
	if p.Metrics() != nil {
		t.Error("Metrics() should be nil without WithMetrics")
	}
	for _, tag := range []string{"bool", "#", "yyyy"} {
		if !p.Matcher().HasValidator(tag) {
			t.Errorf("HasValidator(%q) = false; want true", tag)
		}
	}
}

func TestNew_UnknownModule(t *testing.T) {
	_, err := New(WithLogger(logger.Discard()), WithModules("xml"))
	if !errors.Is(err, ErrUnknownModule) {
		t.Errorf("New() error = %v; want ErrUnknownModule", err)
	}
}

func TestParser_ParseEnglish(t *testing.T) {
	p := newTestParser(t)

	tests := []struct {
		input string
		want  []any
	}{
		{"true", []any{value.Boolean{Value: true}}},
		{"  No ", []any{value.Boolean{Value: false}}},
		{"1,234.56", []any{num("1234.56", 2, "")}},
		{"12 kg", []any{num("12", 0, "kg")}},
		{"0x1F", []any{num("31", 0, "")}},
		{"2024-01-15", []any{ymd(2024, 1, 15)}},
		{"01/15/2024", []any{ymd(2024, 1, 15)}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := p.Parse(tt.input)
			if len(got) != len(tt.want) {
				t.Fatalf("Parse(%q) = %v; want %v", tt.input, got, tt.want)
			}
			for _, w := range tt.want {
				if !contains(got, w) {
					t.Errorf("Parse(%q) = %v; missing %v", tt.input, got, w)
				}
			}
		})
	}
}

func TestParser_AmbiguousInput(t *testing.T) {
	p := newTestParser(t)

	got := p.Parse("1")
	if !contains(got, num("1", 0, "")) {
		t.Errorf("Parse(1) = %v; missing number 1", got)
	}
	if !contains(got, value.Boolean{Value: true}) {
		t.Errorf("Parse(1) = %v; missing boolean true", got)
	}
}

func TestParser_NoMatch(t *testing.T) {
	p := newTestParser(t)

	for _, input := range []string{"", "   ", "hello world", "1,23", "--1"} {
		if got := p.Parse(input); len(got) != 0 {
			t.Errorf("Parse(%q) = %v; want no values", input, got)
		}
	}
}

func TestParser_German(t *testing.T) {
	p := newTestParser(t, WithLanguage("de"))

	tests := []struct {
		input string
		want  any
	}{
		{"1.234,56", num("1234.56", 2, "")},
		{"15.01.2024", ymd(2024, 1, 15)},
		{"wahr", value.Boolean{Value: true}},
		{"Nein", value.Boolean{Value: false}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := p.Parse(tt.input)
			if len(got) != 1 || !value.Equal(got[0], tt.want) {
				t.Errorf("Parse(%q) = %v; want [%v]", tt.input, got, tt.want)
			}
		})
	}

	if got := p.Parse("true"); len(got) != 0 {
		t.Errorf("Parse(true) = %v; want no values in German", got)
	}
}

func TestParser_Culture(t *testing.T) {
	us := newTestParser(t)
	gb := newTestParser(t, WithCulture("en-GB"))

	if got := us.Parse("15/01/2024"); len(got) != 0 {
		t.Errorf("en Parse(15/01/2024) = %v; want no values", got)
	}
	if got := gb.Parse("15/01/2024"); len(got) != 1 || !value.Equal(got[0], ymd(2024, 1, 15)) {
		t.Errorf("en-GB Parse(15/01/2024) = %v; want [2024-01-15]", got)
	}
}

func TestParser_CustomLocales(t *testing.T) {
	cat, err := locale.Parse([]byte(`
nl:
  decimalSeparator: ","
  groupSeparator: "."
  truthy: ["waar", "ja"]
  falsy: ["onwaar", "nee"]
  dateOrder: "DMY"
  dateSeparators: ["-"]
`))
	if err != nil {
		t.Fatalf("locale.Parse() error = %v", err)
	}

	p := newTestParser(t, WithLocales(cat), WithLanguage("nl"))
	if got := p.Parse("waar"); len(got) != 1 || !value.Equal(got[0], value.Boolean{Value: true}) {
		t.Errorf("Parse(waar) = %v; want [true]", got)
	}
	if got := p.Parse("15-01-2024"); len(got) != 1 || !value.Equal(got[0], ymd(2024, 1, 15)) {
		t.Errorf("Parse(15-01-2024) = %v; want [2024-01-15]", got)
	}
}

func TestParser_Modules(t *testing.T) {
	p := newTestParser(t, WithModules(ModuleBoolean))

	if got := p.Parse("12"); len(got) != 0 {
		t.Errorf("Parse(12) = %v; want no values without the number module", got)
	}
	if got := p.Parse("yes"); len(got) != 1 {
		t.Errorf("Parse(yes) = %v; want one value", got)
	}
}

func TestParser_StrictUnits(t *testing.T) {
	loose := newTestParser(t)
	strict := newTestParser(t, WithStrictUnits(true))

	if got := loose.Parse("5 zzz"); len(got) != 1 {
		t.Errorf("loose Parse(5 zzz) = %v; want one value", got)
	}
	if got := strict.Parse("5 zzz"); len(got) != 0 {
		t.Errorf("strict Parse(5 zzz) = %v; want no values", got)
	}
	if got := strict.Parse("5 kg"); len(got) != 1 {
		t.Errorf("strict Parse(5 kg) = %v; want one value", got)
	}
}

func TestParser_ParseWithContext(t *testing.T) {
	p := newTestParser(t)

	pc := p.Context()
	pc.TrimWhitespace = false
	if got := p.ParseWithContext(pc, " true"); len(got) != 0 {
		t.Errorf("ParseWithContext(no trim) = %v; want no values", got)
	}
	if got := p.ParseWithContext(nil, " true"); len(got) != 1 {
		t.Errorf("ParseWithContext(nil) = %v; want one value", got)
	}
	if !p.Context().TrimWhitespace {
		t.Error("Context() should return a copy")
	}
}

func TestParser_ParseContextCancelled(t *testing.T) {
	p := newTestParser(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.ParseContext(ctx, "1,234.56")
	if !errors.Is(err, ErrCancelled) {
		t.Errorf("ParseContext() error = %v; want ErrCancelled", err)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ParseContext() error = %v; want context.Canceled", err)
	}

	got, err := p.ParseContext(context.Background(), "true")
	if err != nil || len(got) != 1 {
		t.Errorf("ParseContext() = %v, %v; want one value", got, err)
	}
}

func TestParser_Explain(t *testing.T) {
	p := newTestParser(t)

	res := p.Explain("true")
	if len(res.Values) != 1 {
		t.Errorf("Explain(true).Values = %v; want one value", res.Values)
	}
	if len(res.Reasons) == 0 {
		t.Error("Explain(true).Reasons should not be empty")
	}

	res = p.Explain("zz")
	if !res.Empty() {
		t.Errorf("Explain(zz).Values = %v; want none", res.Values)
	}
	if len(res.Reasons) == 0 {
		t.Error("Explain(zz).Reasons should explain the failure")
	}

	if got := p.Parse("true"); len(got) != 1 {
		t.Errorf("Parse(true) after Explain = %v; want one value", got)
	}
}

func TestParser_ParseDate(t *testing.T) {
	p := newTestParser(t, WithModules(ModuleBoolean))

	tests := []struct {
		input string
		want  value.Date
		ok    bool
	}{
		{"2024-01-15", ymd(2024, 1, 15), true},
		{" 01/15/2024 ", ymd(2024, 1, 15), true},
		{"02/30/2024", value.Date{}, false},
		{"true", value.Date{}, false},
		{"12", value.Date{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, ok := p.ParseDate(tt.input)
			if ok != tt.ok || got != tt.want {
				t.Errorf("ParseDate(%q) = %v, %v; want %v, %v", tt.input, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestParser_ParseBatchPreservesOrder(t *testing.T) {
	p := newTestParser(t, WithWorkerCount(4))
	inputs := []string{"true", "12", "2024-01-15", "nothing", "no", "1,234.5"}

	results := p.ParseBatch(context.Background(), inputs)
	if len(results) != len(inputs) {
		t.Fatalf("len(results) = %d; want %d", len(results), len(inputs))
	}
	for i, r := range results {
		if r.Input != inputs[i] {
			t.Errorf("results[%d].Input = %q; want %q", i, r.Input, inputs[i])
		}
		if r.Error != nil {
			t.Errorf("results[%d].Error = %v", i, r.Error)
		}
	}

	if results[3].Matched() {
		t.Errorf("results[3] = %v; want no match", results[3].Values)
	}
	if !value.Equal(results[2].First(), ymd(2024, 1, 15)) {
		t.Errorf("results[2].First() = %v; want 2024-01-15", results[2].First())
	}
	if !value.Equal(results[5].First(), num("1234.5", 1, "")) {
		t.Errorf("results[5].First() = %v; want 1234.5", results[5].First())
	}
}

func TestParser_Metrics(t *testing.T) {
	m := NewMetrics()
	p := newTestParser(t, WithMetrics(m), WithWorkerCount(1))

	p.Parse("true")
	p.Parse("zz")
	p.ParseBatch(context.Background(), []string{"12", "no"})

	if m.ParsesTotal() != 4 {
		t.Errorf("ParsesTotal() = %d; want 4", m.ParsesTotal())
	}
	if m.ParsesMatched() != 3 {
		t.Errorf("ParsesMatched() = %d; want 3", m.ParsesMatched())
	}
	if m.Results(value.KindBoolean) != 2 {
		t.Errorf("Results(boolean) = %d; want 2", m.Results(value.KindBoolean))
	}
	if m.BatchesTotal() != 1 {
		t.Errorf("BatchesTotal() = %d; want 1", m.BatchesTotal())
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _ = p.ParseContext(ctx, "true")
	if m.ParsesCancelled() != 1 {
		t.Errorf("ParsesCancelled() = %d; want 1", m.ParsesCancelled())
	}
}

func TestParser_SharedRegistry(t *testing.T) {
	reg := newTestRegistry(4)
	m := NewMetrics()

	p1 := newTestParser(t, WithRegistry(reg, "default"), WithMetrics(m))
	p2 := newTestParser(t, WithRegistry(reg, "default"), WithMetrics(m))
	p3 := newTestParser(t, WithRegistry(reg, ""), WithMetrics(m))

	if p1.Matcher() != p2.Matcher() {
		t.Error("parsers with the same registry name should share a matcher")
	}
	if p3.Matcher() == p1.Matcher() {
		t.Error("an empty registry name should not share a matcher")
	}
	if m.CacheMisses() != 1 || m.CacheHits() != 1 {
		t.Errorf("CacheMisses, CacheHits = %d, %d; want 1, 1", m.CacheMisses(), m.CacheHits())
	}
	if got := p2.Parse("yes"); len(got) != 1 {
		t.Errorf("Parse(yes) = %v; want one value", got)
	}
}

func TestParser_Concurrent(t *testing.T) {
	p := newTestParser(t)
	done := make(chan bool)

	for i := 0; i < 8; i++ {
		go func() {
			for j := 0; j < 20; j++ {
				if got := p.Parse("1,234.56"); len(got) != 1 {
					t.Errorf("Parse() = %v; want one value", got)
				}
				p.ParseDate("2024-01-15")
			}
			done <- true
		}()
	}

	timeout := time.After(10 * time.Second)
	for i := 0; i < 8; i++ {
		select {
		case <-done:
		case <-timeout:
			t.Fatal("timeout waiting for parsers")
		}
	}
}

func BenchmarkParser_Parse(b *testing.B) {
	p, err := New(WithLogger(logger.Discard()))
	if err != nil {
		b.Fatal(err)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p.Parse("1,234.56 kg")
	}
}
