// Package driven defines the interfaces the core requires from
// infrastructure (secondary/driven ports in hexagonal terms).
//
// The calculator itself owns no I/O: input tables, result emission and
// run persistence are all collaborators behind these interfaces, so the
// core can be exercised entirely against the in-memory adapters.
//
// # Import Rules
//
//   - Can Import: domain, standard library
//   - Cannot Import: adapters, services
package driven
