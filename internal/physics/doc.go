// Package physics provides the derived quantities computed from strain:
// energy dissipation, Hawking temperature, entropy flux, and the
// information force, plus the summary quantities built from them.
//
// All functions are closed-form and pure; the pipeline applies them per
// sliding window and once over the whole analysis segment:
//
//	T := physics.HawkingTemperature(physics.DefaultMass)
//	dE := physics.EnergyDissipation(window, dt)
//	phi := physics.EntropyFlux(dE, T)
//	F := physics.InformationForce(physics.DefaultMass, physics.DefaultCarrierVelocity, phi)
package physics
