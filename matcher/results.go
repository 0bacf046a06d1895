package matcher

import (
	"github.com/gofhir/dataparser/pattern"
	"github.com/gofhir/dataparser/value"
)

// results assembles the distinct values produced by the candidates of sid,
// in discovery order.
func (s *session) results(sid stateID) []any {
	var out []any

	candidates := s.states[sid].candidates
	for _, id := range candidates {
		values, ok := s.chainValues(id)
		if !ok {
			continue
		}

		base := len(values)
		s.nodes[id].path.Terminals(func(p *pattern.Path, depth int) bool {
			args := make([]any, base+depth)
			copy(args, values)
			for i := base; i < len(args); i++ {
				args[i] = ""
			}

			for _, pat := range p.MatchedPatterns {
				result, err := pat.Parse(s.pc, args)
				if err != nil {
					s.logReason(id, "Parse \""+pat.Source+"\"", map[string]any{"values": args, "error": err.Error()}, nil)
					continue
				}
				s.logReason(id, "Parse \""+pat.Source+"\"", map[string]any{"values": args}, result)
				if result == nil || containsValue(out, result) {
					continue
				}
				out = append(out, result)
			}
			return true
		})
	}

	s.flushReasons(sid)
	return out
}

// chainValues finalizes the candidate and its ancestors, last token first,
// and returns their values in token order.
func (s *session) chainValues(id nodeID) ([]any, bool) {
	ids := s.chain(id)
	defer chains.Release(ids)

	values := make([]any, len(*ids))
	for i := len(*ids) - 1; i >= 0; i-- {
		nid := (*ids)[i]
		if !s.finalize(nid) {
			return nil, false
		}
		values[i] = s.nodes[nid].value
	}
	return values, true
}

func containsValue(list []any, v any) bool {
	for _, existing := range list {
		if value.Equal(existing, v) {
			return true
		}
	}
	return false
}
