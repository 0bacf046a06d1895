package matcher

import (
	"strings"

	"github.com/gofhir/dataparser/pattern"
)

// validate reports whether the text of node id is acceptable for its token.
func (s *session) validate(id nodeID, isFinal bool) bool {
	n := &s.nodes[id]
	if n.finalized {
		return true
	}

	tok, text := n.token, n.text
	args := map[string]any{"isFinal": isFinal}

	if text == "" {
		ok := tok.MinCount == 0
		s.logReason(id, "Exact match", args, ok)
		return ok
	}

	if tok.ExactMatch {
		var ok bool
		if isFinal {
			ok = tok.Value == text
		} else {
			ok = strings.HasPrefix(tok.Value, text)
		}
		s.logReason(id, "Exact match", args, ok)
		return ok
	}

	if tok.IsSubMatch {
		if !isFinal {
			return true
		}
		ok := s.hasResults(n.sub)
		s.logReason(id, "Sub match["+tok.Value+"]", args, ok)
		return ok
	}

	v := s.m.validators[tok.Value]
	if v == nil {
		s.logReason(id, "No validator", args, false)
		return false
	}

	ok := v.ValidateToken(s.pc, tok, text, isFinal)
	s.logReason(id, "Validator["+validatorName(v)+"]", args, ok)
	return ok
}

// hasResults reports whether some candidate of sid sits where a pattern can
// end. Validators are not consulted.
func (s *session) hasResults(sid stateID) bool {
	if sid == noState {
		return false
	}
	st := &s.states[sid]
	if len(s.m.patterns[st.tag]) == 0 {
		return false
	}
	for _, id := range st.candidates {
		found := false
		s.nodes[id].path.Terminals(func(*pattern.Path, int) bool {
			found = true
			return false
		})
		if found {
			return true
		}
	}
	return false
}

// finalize converts the text of node id into its value. It returns false
// when no value can be produced.
func (s *session) finalize(id nodeID) bool {
	n := &s.nodes[id]
	if n.finalized {
		return true
	}

	tok, text := n.token, n.text

	switch {
	case tok.ExactMatch:
		n.value = text
		n.finalized = true
		s.logReason(id, "Finalize exact", nil, true)
		return true

	case text != "" && s.m.compiled[tok.Value] != nil && n.sub != noState:
		results := s.results(n.sub)
		n = &s.nodes[id]
		if len(results) == 0 {
			n.value = nil
			s.logReason(id, "Finalize pattern["+tok.Value+"] failed", nil, false)
			return false
		}
		// TODO: choose among several nested results by context culture
		n.value = results[0]
		n.finalized = true
		s.logReason(id, "Finalize pattern["+tok.Value+"]", nil, n.value)
		return true
	}

	v := s.m.validators[tok.Value]
	if v == nil {
		if text == "" {
			// skipped optional token without a validator
			n.value = ""
			n.finalized = true
			s.logReason(id, "Finalize empty", nil, true)
			return true
		}
		s.logReason(id, "Finalize failed", nil, false)
		return false
	}
	value := v.FinalizeValue(s.pc, tok, text)
	n = &s.nodes[id]
	n.value = value
	n.finalized = true
	s.logReason(id, "Finalize validator["+validatorName(v)+"]", nil, value)
	return true
}
