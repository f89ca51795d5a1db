// Package apperrors defines structured application error types,
// allowing for a clear distinction between error classes (configuration,
// validation, capacity, geometry, message recovery) and for carrying the
// underlying cause.
//
// Error Wrapping Guidelines:
// This package follows Go's error wrapping conventions using fmt.Errorf with %w.
// Callers match error kinds with errors.As() and sentinels with errors.Is().
package apperrors
