// Package driving defines the interfaces the core offers to external
// actors (primary/driving ports in hexagonal terms). The CLI is the
// only driving adapter today.
//
// # Import Rules
//
//   - Can Import: domain, standard library
//   - Cannot Import: adapters, services
package driving
