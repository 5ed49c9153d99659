// Package services implements the core application logic for soilbio:
// the biomass/abundance calculator, the table pipeline that drives it,
// and the constants resolution service.
//
// Services depend only on domain types and ports; all I/O is reached
// through driven port interfaces.
package services
