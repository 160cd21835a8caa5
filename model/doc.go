// Package model holds the explicit mathematical-program form of a generated
// instance: typed decision variables (continuous, integer, binary with
// bounds), a directed linear objective, and named constraint rows that may
// carry one quadratic block each.
//
// A Model is mutable while a generator assembles it; the instance layer
// publishes only validated deep copies. Export is textual CPLEX-style LP via
// WriteLP, and ParseLP reads the same dialect back: the round trip preserves
// variable count, constraint count, objective coefficients, senses,
// right-hand sides, variable types and bounds.
//
// Determinism: WriteLP orders variables by declaration and constraints by
// insertion, so equal models yield byte-identical text.
package model
