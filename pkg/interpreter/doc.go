// Package interpreter reduces Arith terms with the small-step semantics of the
// calculus and exposes Evaluate, the single entry point the REPL and the CLI
// call for one line (or one file) of source. Terms that no rule applies to are
// returned as their own normal form rather than reported as errors.
package interpreter
