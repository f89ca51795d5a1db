// Package trilateration computes a position from three beacon distances.
//
// The two base circles around Kenobi and Sato are intersected, which yields
// up to two candidates. The candidate whose distance to Skywalker matches
// the reported distance within Epsilon is the answer. Every failure is an
// apperrors.UnsolvableError.
package trilateration
