package matcher

import (
	"github.com/gofhir/dataparser/pattern"
	"github.com/gofhir/dataparser/pool"
)

// nodeID and stateID address records in a session arena.
type (
	nodeID  int32
	stateID int32
)

const (
	noNode  nodeID  = -1
	noState stateID = -1
)

// pathNode is a candidate positioned on one trie edge.
// Nodes used as parents are frozen copies; only live candidates grow.
type pathNode struct {
	token  *pattern.Token
	path   *pattern.Path
	parent nodeID

	text      string
	value     any
	finalized bool

	// sub is the nested session of a sub-match token.
	sub stateID

	reasons []Reason
}

// matchState is the candidate set of one (possibly nested) session.
type matchState struct {
	tag        string
	candidates []nodeID

	// dropped holds the candidates removed by the last pass when reasons
	// are enabled.
	dropped []nodeID
	traces  []Trace
}

// session is the arena of a single Match call.
type session struct {
	m      *Matcher
	pc     *pattern.Context
	nodes  []pathNode
	states []matchState
}

const maxPooledNodes = 1 << 14

var sessions = pool.New(func() *session {
	return &session{
		nodes:  make([]pathNode, 0, 64),
		states: make([]matchState, 0, 8),
	}
}, nil)

var chains = pool.NewSlicePool[nodeID](16, 1024)

func acquireSession(m *Matcher, pc *pattern.Context) *session {
	s := sessions.Get()
	s.m = m
	s.pc = pc
	return s
}

func releaseSession(s *session) {
	if cap(s.nodes) > maxPooledNodes {
		return
	}
	clear(s.nodes)
	clear(s.states)
	s.nodes = s.nodes[:0]
	s.states = s.states[:0]
	s.m = nil
	s.pc = nil
	sessions.Put(s)
}

func (s *session) newNode(n pathNode) nodeID {
	id := nodeID(len(s.nodes))
	s.nodes = append(s.nodes, n)
	return id
}

// start opens a session on the trie of tag. It returns noState when the
// tag has no patterns.
func (s *session) start(tag string) stateID {
	root := s.m.compiled[tag]
	if root == nil {
		return noState
	}
	sid := stateID(len(s.states))
	s.states = append(s.states, matchState{tag: tag})
	s.addCandidates(sid, root, noNode)
	return sid
}

// addCandidates appends one empty candidate per child edge of p.
func (s *session) addCandidates(sid stateID, p *pattern.Path, parent nodeID) {
	for i := range p.Children {
		edge := p.Children[i]
		id := s.newNode(pathNode{
			token:  edge.Token,
			path:   edge.Path,
			parent: parent,
			sub:    noState,
		})
		s.states[sid].candidates = append(s.states[sid].candidates, id)
	}
}

// next feeds c to every candidate of sid and keeps the survivors.
// Candidates appended during the pass see the same character.
func (s *session) next(sid stateID, c rune, isFinal bool) bool {
	if s.pc.Reasons {
		s.states[sid].dropped = s.states[sid].dropped[:0]
	}

	kept := 0
	for i := 0; i < len(s.states[sid].candidates); i++ {
		id := s.states[sid].candidates[i]
		tok := s.nodes[id].token

		if tok.IsSubMatch && s.nodes[id].sub == noState {
			sub := s.start(tok.Value)
			s.nodes[id].sub = sub
		}

		// The token may end before c; fork a candidate for each following edge.
		if path := s.nodes[id].path; path.HasChildren() && s.validate(id, true) {
			frozen := s.cloneNode(id)
			s.addCandidates(sid, path, frozen)
		}

		s.nodes[id].finalized = false
		s.nodes[id].text += string(c)

		ok := true
		if tok.IsSubMatch {
			sub := s.nodes[id].sub
			ok = sub != noState && s.next(sub, c, isFinal)
		}
		if ok {
			ok = s.validate(id, isFinal)
		}

		if ok {
			s.states[sid].candidates[kept] = id
			kept++
		} else if s.pc.Reasons {
			s.states[sid].dropped = append(s.states[sid].dropped, id)
		}
	}

	s.states[sid].candidates = s.states[sid].candidates[:kept]
	return kept > 0
}

// cloneNode copies a node and its nested session. The parent is shared.
func (s *session) cloneNode(id nodeID) nodeID {
	n := s.nodes[id]
	c := pathNode{
		token:  n.token,
		path:   n.path,
		parent: n.parent,
		text:   n.text,
		sub:    noState,
	}
	if n.sub != noState {
		c.sub = s.cloneState(n.sub)
	}
	return s.newNode(c)
}

func (s *session) cloneState(sid stateID) stateID {
	src := s.states[sid]
	candidates := make([]nodeID, len(src.candidates))
	for i, id := range src.candidates {
		candidates[i] = s.cloneNode(id)
	}
	clone := stateID(len(s.states))
	s.states = append(s.states, matchState{tag: src.tag, candidates: candidates})
	return clone
}

func (s *session) logReason(id nodeID, test string, args map[string]any, result any) {
	if !s.pc.Reasons {
		return
	}
	n := &s.nodes[id]
	n.reasons = append(n.reasons, Reason{
		Test:      test,
		Args:      args,
		Token:     n.token.String(),
		TextValue: n.text,
		Result:    result,
	})
}

func (s *session) describe(id nodeID) string {
	n := &s.nodes[id]
	return n.token.String() + ` ~ "` + n.text + `"`
}

func (s *session) trace(id nodeID) Trace {
	return Trace{Node: s.describe(id), Reasons: s.nodes[id].reasons}
}

// flushReasons records the traces of the current candidates of sid.
func (s *session) flushReasons(sid stateID) {
	if !s.pc.Reasons {
		return
	}
	for _, id := range s.states[sid].candidates {
		s.states[sid].traces = append(s.states[sid].traces, s.trace(id))
	}
}

// dropTraces returns the traces of the candidates removed by the last pass.
func (s *session) dropTraces(sid stateID) []Trace {
	if !s.pc.Reasons {
		return nil
	}
	traces := s.states[sid].traces
	for _, id := range s.states[sid].dropped {
		traces = append(traces, s.trace(id))
	}
	return traces
}

// chain returns the node ids from the first token to id.
// The slice comes from a pool and must be released by the caller.
func (s *session) chain(id nodeID) *[]nodeID {
	ids := chains.Acquire()
	for cur := id; cur != noNode; cur = s.nodes[cur].parent {
		*ids = append(*ids, cur)
	}
	// collected last to first
	for i, j := 0, len(*ids)-1; i < j; i, j = i+1, j-1 {
		(*ids)[i], (*ids)[j] = (*ids)[j], (*ids)[i]
	}
	return ids
}
