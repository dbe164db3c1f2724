// Package errors defines the error taxonomy shared by the seqkit packages.
//
// Three kinds of failure are distinguished:
//
//   - exhaustion ([ErrExhausted]): Next was called on a cursor with no
//     remaining element. This is a boundary condition, not a data failure.
//   - iteration errors ([CodeIteration]): a user supplied transform,
//     predicate or combine function failed, or a producer failed to advance
//     or to read its current value.
//   - configuration errors ([CodeConfiguration]): invalid construction
//     parameters, reported when the value is built rather than when it is
//     iterated.
//
// All of them are represented by [*Error], which carries a machine-readable
// code and unwraps to its cause.
package errors
