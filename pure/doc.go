// Package pure turns naturally recursive pure functions into memoized,
// cycle-detecting ones.
//
// Tableize is not just a utility to add memoization.
// It forces the developer to ask:
//
//	→ "Is this recurrence really pure?"
//	→ "Does every call reach a smaller sub-problem?"
//
// Write the function once, recursing through self instead of its own name:
//
//	fib := pure.TableizeI1O1(func(self func(int) int, n int) int {
//	    if n < 2 {
//	        return n
//	    }
//	    return self(n-1) + self(n-2)
//	})
//	fib(90) // linear, not exponential
//
// Features:
//   - TableizeI1O1 to TableizeI3O1, TableizeI1O2, TableizeI2O2: typed memoizers for common arities.
//   - TableizeWithI1O1, TableizeWithI2O1: thread a read-only auxiliary value through every call.
//   - One memo table per top-level call; nothing is retained between calls.
//   - Non-well-founded recursion panics with *dp.CycleError instead of looping.
//
// Arguments must be comparable. Every option of package dp (logging,
// observers, parallelism) can be passed through.
//
// WARNING: Do not use Tableize on impure functions (e.g., those depending on time, I/O, etc).
package pure
