// Package compartment defines the data shapes shared by the macro and micro
// engines: compartment snapshots, time series, and the SIR roles that tie
// free-form compartment keys to the transition logic.
//
// What is a snapshot?
//
//	A Snapshot maps a compartment key ("S", "I", "R", ...) to a non-negative
//	count. The macro engine stores continuous reals; the micro engine stores
//	whole agent counts in the same shape.
//
// Key features:
//   - Series: ordered snapshots, index 0 is the initial condition.
//   - Roles: Susceptible/Infected/Recovered bound to display keys, so engines
//     operate on roles rather than string literals.
//   - TotalPopulation: the N used to normalize the force of infection.
//
// Usage:
//
//	s := compartment.Snapshot{"S": 900, "I": 100, "R": 0}
//	n := compartment.TotalPopulation(s)          // 1000
//	i, err := s.Get("I")                          // 100, nil
//	_, err = s.Get("E")                           // ErrMissingCompartment
//
// Snapshots are never updated in place by the engines: every step derives a
// complete new snapshot from the previous one.
package compartment
