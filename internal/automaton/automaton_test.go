package automaton

import (
	"testing"

	"github.com/dekarrin/langgen/internal/regex"
	"github.com/stretchr/testify/assert"
)

func compile(t *testing.T, pattern string) *DFA {
	t.Helper()
	n, err := regex.Parse(pattern)
	if err != nil {
		t.Fatalf("parse %q: %v", pattern, err)
	}
	nfa := Build(n)
	return ToDFA(nfa).Minimize()
}

// Test_ThompsonShape checks the universal "Thompson shape" property every
// construction must hold: exactly one accepting state, reachable from start.
func Test_ThompsonShape(t *testing.T) {
	patterns := []string{"a", "ab", "a|b", "a*", "a+", "a(b|c)*", "[a-z]+", "."}

	for _, p := range patterns {
		t.Run(p, func(t *testing.T) {
			assert := assert.New(t)
			n, err := regex.Parse(p)
			if !assert.NoError(err) {
				return
			}
			nfa := Build(n)

			accepting := 0
			for i := 0; i < nfa.NumStates(); i++ {
				if nfa.Accepting(i) {
					accepting++
				}
			}
			assert.Equal(1, accepting)
			assert.True(nfa.reachesAccept())
		})
	}
}

// reachesAccept is a small test-only helper proving the accept state is
// reachable at all (BFS over every transition, not just ε).
func (n *NFA) reachesAccept() bool {
	seen := map[int]bool{n.Start: true}
	queue := []int{n.Start}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		if id == n.Accept {
			return true
		}
		for _, targets := range n.states[id].transitions {
			for _, to := range targets {
				if !seen[to] {
					seen[to] = true
					queue = append(queue, to)
				}
			}
		}
	}
	return false
}

func Test_aUnionBCStar(t *testing.T) {
	dfa := compile(t, "a(b|c)*")

	assert := assert.New(t)
	assert.True(dfa.Accepts([]byte("a")))
	assert.True(dfa.Accepts([]byte("ab")))
	assert.True(dfa.Accepts([]byte("ac")))
	assert.True(dfa.Accepts([]byte("abcbcbcbcbcbcbcb")))
	assert.False(dfa.Accepts([]byte("b")))
	assert.False(dfa.Accepts([]byte("")))
}

func Test_NFAEquivalentToDFA(t *testing.T) {
	patterns := []string{"a(b|c)*", "[0-9]+", "[a-zA-Z_][a-zA-Z0-9_]*", "ab*c"}
	samples := []string{"", "a", "ab", "abc", "0", "123", "x", "x1", "_foo9"}

	for _, p := range patterns {
		t.Run(p, func(t *testing.T) {
			assert := assert.New(t)
			n, err := regex.Parse(p)
			if !assert.NoError(err) {
				return
			}
			nfa := Build(n)
			dfa := ToDFA(nfa)

			for _, s := range samples {
				assert.Equalf(nfaAccepts(nfa, []byte(s)), dfa.Accepts([]byte(s)), "sample %q", s)
			}
		})
	}
}

func nfaAccepts(n *NFA, s []byte) bool {
	cur := n.epsilonClosure(n.Start)
	for _, b := range s {
		cur = n.epsilonClosureOfSet(n.move(cur, b))
		if cur.Len() == 0 {
			return false
		}
	}
	return n.anyAccepting(cur)
}

func Test_MinimizePreservesLanguage(t *testing.T) {
	patterns := []string{"a(b|c)*", "[0-9]+", "(ab|ac)*"}
	samples := []string{"", "a", "ab", "ac", "abcbc", "123", "0", "acab"}

	for _, p := range patterns {
		t.Run(p, func(t *testing.T) {
			assert := assert.New(t)
			n, err := regex.Parse(p)
			if !assert.NoError(err) {
				return
			}
			dfa := ToDFA(Build(n))
			min := dfa.Minimize()

			for _, s := range samples {
				assert.Equalf(dfa.Accepts([]byte(s)), min.Accepts([]byte(s)), "sample %q", s)
			}
		})
	}
}

func Test_MinimizeIsIdempotent(t *testing.T) {
	dfa := compile(t, "a(b|c)*")
	twice := dfa.Minimize()

	assert.Equal(t, dfa.NumStates(), twice.NumStates())
}

func Test_LongestMatch(t *testing.T) {
	assert := assert.New(t)

	idDFA := compile(t, "[A-Za-z_][A-Za-z0-9_]*")
	assert.Equal(3, idDFA.LongestMatch([]byte("iff")))
	assert.Equal(0, idDFA.LongestMatch([]byte("9abc")))

	ifDFA := compile(t, "if")
	assert.Equal(2, ifDFA.LongestMatch([]byte("if then")))
}
