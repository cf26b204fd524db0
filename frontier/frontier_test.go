package frontier_test

import (
	"math/rand"
	"testing"

	"github.com/katalvlaran/lvlath-bbmdd/ddcore"
	"github.com/katalvlaran/lvlath-bbmdd/frontier"
	"github.com/stretchr/testify/require"
)

// intRanking ranks plain ints by natural order: a larger int is "preferred".
type intRanking struct{}

func (intRanking) Compare(a, b int) int { return a - b }

func TestSimpleFrontier_PopsInNonIncreasingUBOrder(t *testing.T) {
	f := frontier.NewSimpleFrontier[int](intRanking{})
	ubs := []int{5, 1, 9, 3, 9, 0, 7}
	for i, ub := range ubs {
		f.Push(ddcore.SubProblem[int]{State: i, UB: ub})
	}
	require.Equal(t, len(ubs), f.Size())

	prev := ddcore.MaxInt
	count := 0
	for {
		sp, ok := f.Pop()
		if !ok {
			break
		}
		require.LessOrEqual(t, sp.UB, prev)
		prev = sp.UB
		count++
	}
	require.Equal(t, len(ubs), count)
}

func TestSimpleFrontier_TiesBrokenByRanking(t *testing.T) {
	f := frontier.NewSimpleFrontier[int](intRanking{})
	// Equal UB; ranking prefers the larger state value first.
	f.Push(ddcore.SubProblem[int]{State: 1, UB: 10})
	f.Push(ddcore.SubProblem[int]{State: 5, UB: 10})
	f.Push(ddcore.SubProblem[int]{State: 3, UB: 10})

	first, ok := f.Pop()
	require.True(t, ok)
	require.Equal(t, 5, first.State)
}

func TestSimpleFrontier_SizeTracksPushesPopsClears(t *testing.T) {
	f := frontier.NewSimpleFrontier[int](intRanking{})
	require.Equal(t, 0, f.Size())
	f.Push(ddcore.SubProblem[int]{State: 1, UB: 1})
	f.Push(ddcore.SubProblem[int]{State: 2, UB: 2})
	require.Equal(t, 2, f.Size())
	_, _ = f.Pop()
	require.Equal(t, 1, f.Size())
	f.Clear()
	require.Equal(t, 0, f.Size())
}

func TestSimpleFrontier_PopEmpty(t *testing.T) {
	f := frontier.NewSimpleFrontier[int](intRanking{})
	_, ok := f.Pop()
	require.False(t, ok)
}

func TestNoDuplicateFrontier_CoalescesByState(t *testing.T) {
	f := frontier.NewNoDuplicateFrontier[int](intRanking{})
	f.Push(ddcore.SubProblem[int]{State: 1, UB: 5})
	f.Push(ddcore.SubProblem[int]{State: 1, UB: 9}) // same state, better UB
	require.Equal(t, 1, f.Size())

	sp, ok := f.Pop()
	require.True(t, ok)
	require.Equal(t, 9, sp.UB, "the more promising duplicate must win")
}

func TestNoDuplicateFrontier_KeepsMorePromisingOnCollision(t *testing.T) {
	f := frontier.NewNoDuplicateFrontier[int](intRanking{})
	f.Push(ddcore.SubProblem[int]{State: 1, UB: 9})
	f.Push(ddcore.SubProblem[int]{State: 1, UB: 3}) // worse UB, must be dropped
	require.Equal(t, 1, f.Size())

	sp, _ := f.Pop()
	require.Equal(t, 9, sp.UB)
}

func TestNoDuplicateFrontier_SizeEqualsDistinctStates(t *testing.T) {
	f := frontier.NewNoDuplicateFrontier[int](intRanking{})
	rng := rand.New(rand.NewSource(7))
	seen := make(map[int]bool)
	for i := 0; i < 200; i++ {
		s := rng.Intn(20)
		f.Push(ddcore.SubProblem[int]{State: s, UB: rng.Intn(100)})
		seen[s] = true
	}
	require.Equal(t, len(seen), f.Size())

	popped := make(map[int]bool)
	for f.Size() > 0 {
		sp, ok := f.Pop()
		require.True(t, ok)
		require.False(t, popped[sp.State], "state must not be popped twice")
		popped[sp.State] = true
	}
	require.Equal(t, len(seen), len(popped))
}

// TestNoDuplicateFrontier_SingleElementPop exercises the degenerate heap
// path noted in the design notes: when the heap has exactly one element,
// container/heap's sift-down is a no-op, but Pop must still behave.
func TestNoDuplicateFrontier_SingleElementPop(t *testing.T) {
	f := frontier.NewNoDuplicateFrontier[int](intRanking{})
	f.Push(ddcore.SubProblem[int]{State: 1, UB: 42})
	require.Equal(t, 1, f.Size())

	sp, ok := f.Pop()
	require.True(t, ok)
	require.Equal(t, 42, sp.UB)
	require.Equal(t, 0, f.Size())

	_, ok = f.Pop()
	require.False(t, ok)
}
