package bbsolver

import (
	"context"
	"fmt"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lvlath-bbmdd/ddcore"
	"github.com/katalvlaran/lvlath-bbmdd/frontier"
	"github.com/katalvlaran/lvlath-bbmdd/mdd"
	"github.com/katalvlaran/lvlath-bbmdd/metrics"
)

// workStatus is the outcome of one workload-acquisition attempt.
type workStatus int

const (
	// statusComplete means the frontier is empty and no worker is still
	// compiling: the search is over.
	statusComplete workStatus = iota
	// statusStarvation means the worker found nothing worth doing right now
	// (empty frontier with others still ongoing, or the best open
	// subproblem cannot beat the current bound) and should reloop.
	statusStarvation
	// statusWorkItem means a subproblem was acquired and ongoing/explored
	// were already incremented under the lock.
	statusWorkItem
)

// Solver owns the shared frontier and global bounds for a parallel
// branch-and-bound search, and drives nbThreads workers — each with its own
// reusable mdd.Compiler — to an exact optimum. The configuration fields
// below are immutable after New and read without locking; the fields under
// mu form the single critical region every worker synchronizes through,
// grounded on lvlath/core.Graph's split-mutex discipline.
type Solver[S comparable] struct {
	nbThreads      int
	problem        ddcore.Problem[S]
	relaxation     ddcore.Relaxation[S]
	varHeuristic   ddcore.VariableHeuristic[S]
	ranking        ddcore.StateRanking[S]
	widthHeuristic ddcore.WidthHeuristic[S]

	logger  *log.Logger
	metrics *metrics.Recorder

	mu          sync.Mutex
	cond        *sync.Cond
	fr          frontier.Frontier[S]
	ongoing     int
	explored    int
	bestLB      int
	bestUB      int
	bestSol     []ddcore.Decision
	found       bool
	upperBounds []int
	ran         bool
}

// New constructs a Solver. fr may be nil, in which case a SimpleFrontier
// ordered by ranking is used.
func New[S comparable](
	nbThreads int,
	problem ddcore.Problem[S],
	relaxation ddcore.Relaxation[S],
	varHeuristic ddcore.VariableHeuristic[S],
	ranking ddcore.StateRanking[S],
	widthHeuristic ddcore.WidthHeuristic[S],
	fr frontier.Frontier[S],
	opts ...Option[S],
) (*Solver[S], error) {
	if nbThreads < 1 {
		return nil, ErrInvalidWorkerCount
	}
	if problem == nil {
		return nil, ErrNilProblem
	}
	if relaxation == nil {
		return nil, ErrNilRelaxation
	}
	if ranking == nil {
		return nil, ErrNilRanking
	}
	if varHeuristic == nil {
		return nil, ErrNilVarHeuristic
	}
	if widthHeuristic == nil {
		return nil, ErrNilWidthHeuristic
	}
	if fr == nil {
		fr = frontier.NewSimpleFrontier[S](ranking)
	}

	upperBounds := make([]int, nbThreads)
	for i := range upperBounds {
		upperBounds[i] = ddcore.MaxInt
	}

	s := &Solver[S]{
		nbThreads:      nbThreads,
		problem:        problem,
		relaxation:     relaxation,
		varHeuristic:   varHeuristic,
		ranking:        ranking,
		widthHeuristic: widthHeuristic,
		logger:         defaultLogger(),
		fr:             fr,
		bestLB:         ddcore.MinInt,
		bestUB:         ddcore.MinInt,
		upperBounds:    upperBounds,
	}
	s.cond = sync.NewCond(&s.mu)

	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

// Maximize seeds the root subproblem and blocks until every worker agrees
// the search is complete, or ctx is canceled, or a worker panics. It may
// only be called once per Solver.
func (s *Solver[S]) Maximize(ctx context.Context) error {
	s.mu.Lock()
	if s.ran {
		s.mu.Unlock()
		return ErrAlreadyRun
	}
	s.ran = true
	s.fr.Push(ddcore.SubProblem[S]{
		State: s.problem.InitialState(),
		Value: s.problem.InitialValue(),
		UB:    ddcore.MaxInt,
	})
	s.mu.Unlock()

	g, gctx := errgroup.WithContext(ctx)
	for i := 0; i < s.nbThreads; i++ {
		workerID := i
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("bbsolver: worker %d panicked: %v", workerID, r)
				}
			}()
			return s.workerLoop(gctx, workerID)
		})
	}

	return g.Wait()
}

// workerLoop runs one worker: acquire work under the monitor, process it
// lock-free, repeat until Complete.
func (s *Solver[S]) workerLoop(ctx context.Context, workerID int) error {
	compiler := mdd.NewCompiler[S]()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		status, sp := s.acquireWork(workerID)
		switch status {
		case statusComplete:
			return nil
		case statusStarvation:
			continue
		case statusWorkItem:
			s.processWork(workerID, compiler, sp)
		}
	}
}

// acquireWork implements the workload-acquisition protocol atomically under
// the monitor lock: distinguish true completion (ongoing==0, frontier
// empty) from transient starvation, and otherwise pop and claim the most
// promising subproblem.
func (s *Solver[S]) acquireWork(workerID int) (workStatus, ddcore.SubProblem[S]) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.ongoing == 0 && s.fr.Size() == 0 {
		s.bestUB = s.bestLB
		s.metrics.SetBestUpperBound(s.bestUB)
		s.cond.Broadcast()
		return statusComplete, ddcore.SubProblem[S]{}
	}

	if s.fr.Size() == 0 {
		s.cond.Wait()
		return statusStarvation, ddcore.SubProblem[S]{}
	}

	sp, _ := s.fr.Pop()
	if sp.UB <= s.bestLB {
		s.fr.Clear()
		s.metrics.SetFrontierSize(0)
		// Only wait if some other worker is still ongoing and might later
		// broadcast (pushing a cutset subproblem, or decrementing ongoing to
		// 0). With ongoing == 0 nothing will ever wake this worker, so
		// reloop immediately: the next acquisition sees the now-empty
		// frontier and returns Complete.
		if s.ongoing > 0 {
			s.cond.Wait()
		}
		return statusStarvation, ddcore.SubProblem[S]{}
	}

	s.ongoing++
	s.explored++
	s.upperBounds[workerID] = sp.UB
	s.metrics.IncExplored()
	s.metrics.SetOngoingWorkers(s.ongoing)
	s.metrics.SetFrontierSize(s.fr.Size())

	return statusWorkItem, sp
}

// processWork builds a restricted MDD, then (unless it was exact or
// already dominated) a relaxed one, updating the global bound and frontier
// exactly as §4.4's work-processing steps describe.
func (s *Solver[S]) processWork(workerID int, compiler *mdd.Compiler[S], sp ddcore.SubProblem[S]) {
	defer s.releaseWork(workerID)

	bestLB := s.snapshotBestLB()
	if sp.UB <= bestLB {
		return
	}

	width := s.widthHeuristic.MaximumWidth(sp.State)
	input := mdd.CompilationInput[S]{
		Mode:         mdd.Restricted,
		Problem:      s.problem,
		Relaxation:   s.relaxation,
		VarHeuristic: s.varHeuristic,
		Ranking:      s.ranking,
		Residual:     sp,
		MaxWidth:     width,
		BestLB:       bestLB,
	}
	if err := compiler.Compile(input); err != nil {
		s.logger.Printf("bbsolver: restricted compile rejected: %v", err)
		return
	}
	if value, ok := compiler.BestValue(); ok {
		s.tryUpdateBest(value, compiler)
	}
	if compiler.IsExact() {
		return
	}

	input.Mode = mdd.Relaxed
	input.BestLB = s.snapshotBestLB()
	if err := compiler.Compile(input); err != nil {
		s.logger.Printf("bbsolver: relaxed compile rejected: %v", err)
		return
	}
	if compiler.IsExact() {
		if value, ok := compiler.BestValue(); ok {
			s.tryUpdateBest(value, compiler)
		}
		return
	}

	cutset := compiler.ExactCutset()
	s.mu.Lock()
	pushed := 0
	for _, csp := range cutset {
		if csp.UB > s.bestLB {
			s.fr.Push(csp)
			pushed++
		}
	}
	if pushed > 0 {
		s.metrics.SetFrontierSize(s.fr.Size())
		s.cond.Broadcast()
	}
	s.mu.Unlock()
}

// snapshotBestLB reads the current lower bound under the lock.
func (s *Solver[S]) snapshotBestLB() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bestLB
}

// tryUpdateBest installs value/its solution as the new incumbent if it
// improves on the current bestLB.
func (s *Solver[S]) tryUpdateBest(value int, compiler *mdd.Compiler[S]) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if value <= s.bestLB {
		return
	}
	sol, ok := compiler.BestSolution()
	if !ok {
		return
	}
	s.bestLB = value
	s.bestSol = append([]ddcore.Decision{}, sol...)
	s.found = true
	s.metrics.SetBestLowerBound(value)
	s.cond.Broadcast()
}

// releaseWork decrements ongoing and resets this worker's published upper
// bound, then wakes every waiter: a decrement may be exactly what turns a
// starved check into Complete.
func (s *Solver[S]) releaseWork(workerID int) {
	s.mu.Lock()
	s.ongoing--
	s.upperBounds[workerID] = ddcore.MaxInt
	s.metrics.SetOngoingWorkers(s.ongoing)
	s.cond.Broadcast()
	s.mu.Unlock()
}

// BestValue returns the best known objective value, present iff a feasible
// solution was found.
func (s *Solver[S]) BestValue() (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.found {
		return 0, false
	}
	return s.bestLB, true
}

// BestSolution returns a copy of the complete decision assignment achieving
// BestValue, present under the same condition.
func (s *Solver[S]) BestSolution() ([]ddcore.Decision, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.found {
		return nil, false
	}
	out := make([]ddcore.Decision, len(s.bestSol))
	copy(out, s.bestSol)
	return out, true
}

// Explored returns the total number of subproblems popped and compiled.
func (s *Solver[S]) Explored() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.explored
}

// LowerBound returns the current (monotonically non-decreasing) global
// lower bound.
func (s *Solver[S]) LowerBound() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bestLB
}

// UpperBound returns the terminal upper bound, only meaningful once
// Maximize has returned (it equals MinInt beforehand).
func (s *Solver[S]) UpperBound() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.bestUB
}
