// Package dp turns a naturally recursive function into a memoized,
// cycle-detecting evaluator.
//
// You write the recurrence once, as a SolveFunc, and recurse through the
// Recurser it is handed instead of calling yourself by name:
//
//	fib := dp.New(func(self dp.Recurser[int, int], _ struct{}, n int) int {
//	    if n < 2 {
//	        return n
//	    }
//	    return self.Eval(n-1) + self.Eval(n-2)
//	})
//	v, err := fib.Run(struct{}{}, 40)
//
// Every Run owns a fresh memo table bound to exactly one auxiliary context.
// A key moves absent → pending → resolved and never backwards. Re-entering a
// key while it is still pending means the recurrence is not well-founded: the
// run is abandoned with a *CycleError naming the key and the call chain.
//
// Features:
//   - Auxiliary context (C): read-only data shared by every sub-problem of a run.
//   - Default arguments: Config.Defaults fill elided key fields from the context,
//     once, in declaration order, before the first evaluation.
//   - Parallel engine: WithParallelism shards the table and lets EvalAll fan out
//     sub-problems across goroutines, with cross-goroutine cycle detection.
//   - Observability: zap logging, per-run Stats and an optional event Observer.
//
// WARNING: the solve step must be pure with respect to (aux, key). The table
// trusts that equal keys always produce equal values.
package dp
