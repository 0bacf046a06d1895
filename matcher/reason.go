package matcher

// Reason records one decision taken for a candidate.
type Reason struct {
	Test      string         `json:"test"`
	Args      map[string]any `json:"args,omitempty"`
	Token     string         `json:"token"`
	TextValue string         `json:"textValue"`
	Result    any            `json:"result"`
}

// Trace groups the reasons logged for one candidate.
type Trace struct {
	Node    string   `json:"node"`
	Reasons []Reason `json:"reasons"`
}

// Result is the outcome of a match.
type Result struct {
	// Values holds the distinct parsed values, most specific first.
	Values []any `json:"values"`

	// Reasons is filled only when the context enables reasons.
	Reasons []Trace `json:"reasons,omitempty"`
}

// Empty reports whether no value was produced.
func (r Result) Empty() bool {
	return len(r.Values) == 0
}
