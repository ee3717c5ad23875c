// Package macro runs the deterministic, discrete-time SIR compartmental model.
//
// The engine reads R0, D and iterations from a params.Set, derives
// beta = R0/(N*D) and r = 1/D once from the initial snapshot, and applies a
// forward-Euler update with step size 1 for every step. Identical inputs give
// bit-for-bit identical series.
//
// Options:
//   - WithRoles: bind Susceptible/Infected/Recovered to custom keys.
//   - WithMethod(RK4): integrate the SIR ODE with Runge–Kutta sub-steps instead.
//   - WithClamp: cap flows so no compartment goes negative.
//   - WithLogger: structured debug output via log/slog.
//
// Usage:
//
//	series, err := macro.Run(
//		compartment.Snapshot{"S": 900, "I": 100, "R": 0},
//		params.Set{"R0": 2, "D": 5, "iterations": 100},
//	)
package macro
