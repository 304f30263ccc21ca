// Package dag provides a directed graph of string-identified nodes with a
// deterministic topological sort.
//
// Determinism matters here more than in a general-purpose graph library:
// the compiler's execution order decides generated program text byte for
// byte, and cached/golden programs depend on the same graph always sorting
// the same way. The sort is Kahn's algorithm with an explicit tie-break:
// the ready queue is seeded with zero in-degree nodes in insertion order
// and drained FIFO thereafter.
package dag
