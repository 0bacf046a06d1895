package dataparser

import (
	"context"
	"errors"
	"testing"

	"github.com/gofhir/dataparser/value"
	"github.com/gofhir/dataparser/worker"
)

func TestParseResult_Matched(t *testing.T) {
	tests := []struct {
		name string
		r    *ParseResult
		want bool
	}{
		{"nil", nil, false},
		{"no values", &ParseResult{Input: "x"}, false},
		{"values", &ParseResult{Values: []any{value.Boolean{Value: true}}}, true},
		{"error", &ParseResult{Values: []any{1}, Error: context.Canceled}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.r.Matched(); got != tt.want {
				t.Errorf("Matched() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestParseResult_Accessors(t *testing.T) {
	d, _ := value.NewDate(2024, 1, 15)
	r := &ParseResult{
		Input:  "x",
		Values: []any{d, value.Boolean{Value: true}, "raw"},
	}

	if r.First() != any(d) {
		t.Errorf("First() = %v; want %v", r.First(), d)
	}

	kinds := r.Kinds()
	want := []value.Kind{value.KindDate, value.KindBoolean, value.KindOther}
	for i := range want {
		if kinds[i] != want[i] {
			t.Errorf("Kinds()[%d] = %s; want %s", i, kinds[i], want[i])
		}
	}

	if got := r.OfKind(value.KindBoolean); len(got) != 1 {
		t.Errorf("OfKind(boolean) = %v; want one value", got)
	}
	if got := r.OfKind(value.KindNumber); len(got) != 0 {
		t.Errorf("OfKind(number) = %v; want none", got)
	}

	strs := r.Strings()
	if strs[0] != "2024-01-15" || strs[1] != "true" || strs[2] != "raw" {
		t.Errorf("Strings() = %v", strs)
	}
}

func TestParseResult_NilSafe(t *testing.T) {
	var r *ParseResult
	if r.First() != nil || r.Kinds() != nil || r.OfKind(value.KindDate) != nil || r.Strings() != nil {
		t.Error("nil ParseResult accessors should return nil")
	}
}

func TestFromJob(t *testing.T) {
	errBad := errors.New("bad")
	r := fromJob(&worker.JobResult{Index: 3, Input: "in", Values: []any{1}, Error: errBad})

	if r.Input != "in" || len(r.Values) != 1 || !errors.Is(r.Error, errBad) {
		t.Errorf("fromJob() = %+v", r)
	}
}
