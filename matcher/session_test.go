package matcher

import (
	"testing"

	"github.com/gofhir/dataparser/pattern"
)

func TestSession_CloneIsIndependent(t *testing.T) {
	m := newTestMatcher(t)
	mustAdd(t, m, "num", pattern.New("{d:+}", first(0)))
	mustAdd(t, m, RootTag, pattern.New("{num}", first(0)))

	s := acquireSession(m, pattern.NewContext())
	defer releaseSession(s)

	root := s.start(RootTag)
	if root == noState {
		t.Fatal("start() returned noState")
	}
	if !s.next(root, '1', false) {
		t.Fatal("next('1') rejected all candidates")
	}

	live := s.states[root].candidates[0]
	frozen := s.cloneNode(live)

	if !s.next(root, '2', true) {
		t.Fatal("next('2') rejected all candidates")
	}

	if got := s.nodes[live].text; got != "12" {
		t.Errorf("live text = %q; want %q", got, "12")
	}
	if got := s.nodes[frozen].text; got != "1" {
		t.Errorf("frozen text = %q; want %q", got, "1")
	}

	sub := s.nodes[frozen].sub
	if sub == noState || sub == s.nodes[live].sub {
		t.Fatal("clone should own a separate nested session")
	}
	inner := s.states[sub].candidates[0]
	if got := s.nodes[inner].text; got != "1" {
		t.Errorf("frozen nested text = %q; want %q", got, "1")
	}
}

func TestSession_StartUnknownTag(t *testing.T) {
	m := newTestMatcher(t)
	s := acquireSession(m, pattern.NewContext())
	defer releaseSession(s)

	if got := s.start("missing"); got != noState {
		t.Errorf("start() = %d; want noState", got)
	}
}

func TestSession_ReleaseResetsArena(t *testing.T) {
	m := newTestMatcher(t)
	mustAdd(t, m, RootTag, pattern.New("{d:+}", first(0)))

	s := acquireSession(m, pattern.NewContext())
	s.start(RootTag)
	releaseSession(s)

	if len(s.nodes) != 0 || len(s.states) != 0 {
		t.Errorf("arena not reset: %d nodes, %d states", len(s.nodes), len(s.states))
	}
	if s.m != nil || s.pc != nil {
		t.Error("released session should drop its matcher and context")
	}
}

func TestSession_Chain(t *testing.T) {
	m := newTestMatcher(t)
	mustAdd(t, m, RootTag, pattern.New("{d:+}-{d:+}", first(0)))

	s := acquireSession(m, pattern.NewContext())
	defer releaseSession(s)

	root := s.start(RootTag)
	for i, r := range "1-2" {
		if !s.next(root, r, i == 2) {
			t.Fatalf("next(%q) rejected all candidates", r)
		}
	}

	ids := s.chain(s.states[root].candidates[0])
	defer chains.Release(ids)

	var texts []string
	for _, id := range *ids {
		texts = append(texts, s.nodes[id].text)
	}
	want := []string{"1", "-", "2"}
	if len(texts) != len(want) {
		t.Fatalf("chain texts = %v; want %v", texts, want)
	}
	for i := range want {
		if texts[i] != want[i] {
			t.Errorf("chain[%d] = %q; want %q", i, texts[i], want[i])
		}
	}
}
