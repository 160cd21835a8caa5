// Package gen is the assembly layer of the generators: functional options
// (seed, explicit stream, strictness), the mutable Draft that problem
// packages fill while sampling, and the immutable Instance that Assemble
// builds from it.
//
// An Instance bundles entity sets, attribute tables, the resolved parameter
// record and the mathematical-program formulation. It owns deep copies of
// everything and hands out defensive copies, so instances are safe to share
// across goroutines and can never drift from the seed that produced them.
// Export goes two ways: WriteLP (textual LP with a comment header) and
// Snapshot/MarshalJSON (the structured data form without the formulation).
package gen
