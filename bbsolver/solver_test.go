package bbsolver_test

import (
	"context"
	"testing"

	"github.com/katalvlaran/lvlath-bbmdd/bbsolver"
	"github.com/katalvlaran/lvlath-bbmdd/ddcore"
	"github.com/katalvlaran/lvlath-bbmdd/examples/knapsack"
	"github.com/katalvlaran/lvlath-bbmdd/frontier"
	"github.com/stretchr/testify/require"
)

func tenItems() []knapsack.Item {
	return []knapsack.Item{
		{Weight: 95, Value: 55},
		{Weight: 4, Value: 10},
		{Weight: 60, Value: 47},
		{Weight: 32, Value: 5},
		{Weight: 23, Value: 4},
		{Weight: 72, Value: 50},
		{Weight: 80, Value: 8},
		{Weight: 62, Value: 61},
		{Weight: 65, Value: 85},
		{Weight: 46, Value: 87},
	}
}

func newTenItemSolver(t *testing.T, nbThreads, width int) *bbsolver.Solver[int] {
	t.Helper()
	items := tenItems()
	p := knapsack.Problem{Items: items, Capacity: 269}
	r := knapsack.CapacityBoundedRelaxation{Items: items}
	rk := knapsack.CapacityRanking{}
	vh := knapsack.IndexOrderHeuristic{}
	wh := knapsack.FixedWidth(width)
	fr := frontier.NewSimpleFrontier[int](rk)

	s, err := bbsolver.New[int](nbThreads, p, r, vh, rk, wh, fr)
	require.NoError(t, err)
	return s
}

func assertFeasible(t *testing.T, items []knapsack.Item, capacity int, sol []ddcore.Decision, wantValue int) {
	t.Helper()
	require.Len(t, sol, len(items), "solution must assign every variable exactly once")

	seen := make(map[int]bool, len(sol))
	weight, value := 0, 0
	for _, d := range sol {
		require.False(t, seen[d.Var], "variable %d assigned twice", d.Var)
		seen[d.Var] = true
		if d.Val == 1 {
			weight += items[d.Var].Weight
			value += items[d.Var].Value
		}
	}
	require.LessOrEqual(t, weight, capacity)
	require.Equal(t, wantValue, value)
}

func TestMaximize_TenItemScenario_Width2(t *testing.T) {
	items := tenItems()
	s := newTenItemSolver(t, 1, 2)
	require.NoError(t, s.Maximize(context.Background()))

	value, ok := s.BestValue()
	require.True(t, ok)
	require.Equal(t, 295, value)

	sol, ok := s.BestSolution()
	require.True(t, ok)
	assertFeasible(t, items, 269, sol, 295)
}

func TestMaximize_TenItemScenario_Width1(t *testing.T) {
	items := tenItems()
	s := newTenItemSolver(t, 1, 1)
	require.NoError(t, s.Maximize(context.Background()))

	value, ok := s.BestValue()
	require.True(t, ok)
	require.Equal(t, 295, value)

	sol, ok := s.BestSolution()
	require.True(t, ok)
	assertFeasible(t, items, 269, sol, 295)
}

func TestMaximize_ParallelDeterminism(t *testing.T) {
	for _, nbThreads := range []int{1, 2, 4} {
		s := newTenItemSolver(t, nbThreads, 2)
		require.NoError(t, s.Maximize(context.Background()))
		value, ok := s.BestValue()
		require.True(t, ok)
		require.Equal(t, 295, value, "nbThreads=%d must reach the same optimum", nbThreads)
	}
}

func TestMaximize_CapacityZero(t *testing.T) {
	items := []knapsack.Item{{Weight: 10, Value: 5}, {Weight: 20, Value: 9}}
	p := knapsack.Problem{Items: items, Capacity: 0}
	r := knapsack.CapacityBoundedRelaxation{Items: items}
	rk := knapsack.CapacityRanking{}
	vh := knapsack.IndexOrderHeuristic{}
	wh := knapsack.FixedWidth(2)

	s, err := bbsolver.New[int](1, p, r, vh, rk, wh, nil)
	require.NoError(t, err)
	require.NoError(t, s.Maximize(context.Background()))

	value, ok := s.BestValue()
	require.True(t, ok)
	require.Equal(t, 0, value)

	sol, ok := s.BestSolution()
	require.True(t, ok)
	for _, d := range sol {
		require.Equal(t, 0, d.Val)
	}
}

func TestMaximize_SingleItemTooHeavy(t *testing.T) {
	items := []knapsack.Item{{Weight: 5, Value: 7}}
	p := knapsack.Problem{Items: items, Capacity: 4}
	r := knapsack.CapacityBoundedRelaxation{Items: items}
	rk := knapsack.CapacityRanking{}
	vh := knapsack.IndexOrderHeuristic{}
	wh := knapsack.FixedWidth(2)

	s, err := bbsolver.New[int](1, p, r, vh, rk, wh, nil)
	require.NoError(t, err)
	require.NoError(t, s.Maximize(context.Background()))

	value, ok := s.BestValue()
	require.True(t, ok)
	require.Equal(t, 0, value)

	sol, ok := s.BestSolution()
	require.True(t, ok)
	require.Equal(t, []ddcore.Decision{{Var: 0, Val: 0}}, sol)
}

func TestMaximize_TwoItemsBothFit(t *testing.T) {
	items := []knapsack.Item{{Weight: 1, Value: 1}, {Weight: 1, Value: 1}}
	p := knapsack.Problem{Items: items, Capacity: 2}
	r := knapsack.CapacityBoundedRelaxation{Items: items}
	rk := knapsack.CapacityRanking{}
	vh := knapsack.IndexOrderHeuristic{}
	wh := knapsack.FixedWidth(2)

	s, err := bbsolver.New[int](1, p, r, vh, rk, wh, nil)
	require.NoError(t, err)
	require.NoError(t, s.Maximize(context.Background()))

	value, ok := s.BestValue()
	require.True(t, ok)
	require.Equal(t, 2, value)

	sol, ok := s.BestSolution()
	require.True(t, ok)
	for _, d := range sol {
		require.Equal(t, 1, d.Val)
	}
}

func TestMaximize_NaiveSumRelaxationStillFindsOptimum(t *testing.T) {
	items := tenItems()
	p := knapsack.Problem{Items: items, Capacity: 269}
	r := knapsack.NaiveSumRelaxation{Items: items}
	rk := knapsack.CapacityRanking{}
	vh := knapsack.IndexOrderHeuristic{}
	wh := knapsack.FixedWidth(2)

	s, err := bbsolver.New[int](2, p, r, vh, rk, wh, nil)
	require.NoError(t, err)
	require.NoError(t, s.Maximize(context.Background()))

	value, ok := s.BestValue()
	require.True(t, ok)
	require.Equal(t, 295, value, "an over-approximating relaxation must never lose the true optimum")
}

func TestMaximize_ExploredAndBoundsAreConsistentAtTermination(t *testing.T) {
	s := newTenItemSolver(t, 2, 2)
	require.NoError(t, s.Maximize(context.Background()))

	require.Positive(t, s.Explored())
	require.Equal(t, s.LowerBound(), s.UpperBound(), "bestUB is set to bestLB on completion")
	require.Equal(t, 295, s.LowerBound())
}

func TestMaximize_CalledTwice_ReturnsErrAlreadyRun(t *testing.T) {
	s := newTenItemSolver(t, 1, 2)
	require.NoError(t, s.Maximize(context.Background()))
	require.ErrorIs(t, s.Maximize(context.Background()), bbsolver.ErrAlreadyRun)
}

func TestNew_RejectsInvalidConfiguration(t *testing.T) {
	items := tenItems()
	p := knapsack.Problem{Items: items, Capacity: 269}
	r := knapsack.CapacityBoundedRelaxation{Items: items}
	rk := knapsack.CapacityRanking{}
	vh := knapsack.IndexOrderHeuristic{}
	wh := knapsack.FixedWidth(2)

	_, err := bbsolver.New[int](0, p, r, vh, rk, wh, nil)
	require.ErrorIs(t, err, bbsolver.ErrInvalidWorkerCount)

	_, err = bbsolver.New[int](1, nil, r, vh, rk, wh, nil)
	require.ErrorIs(t, err, bbsolver.ErrNilProblem)

	_, err = bbsolver.New[int](1, p, nil, vh, rk, wh, nil)
	require.ErrorIs(t, err, bbsolver.ErrNilRelaxation)

	_, err = bbsolver.New[int](1, p, r, nil, rk, wh, nil)
	require.ErrorIs(t, err, bbsolver.ErrNilVarHeuristic)

	_, err = bbsolver.New[int](1, p, r, vh, nil, wh, nil)
	require.ErrorIs(t, err, bbsolver.ErrNilRanking)

	_, err = bbsolver.New[int](1, p, r, vh, rk, nil, nil)
	require.ErrorIs(t, err, bbsolver.ErrNilWidthHeuristic)
}
