package physics

import "math"

// Fundamental constants, SI units.
const (
	Planck        = 6.62607015e-34 // J·s
	LightSpeed    = 3e8            // m/s
	Gravitational = 6.67430e-11    // m³·kg⁻¹·s⁻²
	Boltzmann     = 1.380649e-23   // J/K
)

// Model defaults.
const (
	DefaultMass            = 1e30 // black hole mass, kg
	DefaultCarrierVelocity = 1e8  // entropy carrier velocity, m/s
)

// HawkingTemperature returns the Hawking temperature of a black hole of
// the given mass: T = ħ-scale h·c³ / (8π G M k_B).
func HawkingTemperature(mass float64) float64 {
	return (Planck * math.Pow(LightSpeed, 3)) / (8 * math.Pi * Gravitational * mass * Boltzmann)
}

// EnergyDissipation returns the strain energy dissipated over a window:
// ΔE = Σ s²·dt.
func EnergyDissipation(samples []float64, dt float64) float64 {
	sum := 0.0
	for _, s := range samples {
		sum += s * s
	}
	return sum * dt
}

// EntropyFlux returns the entropy flux φ_s = ΔE / T.
func EntropyFlux(energyDissipation, temperature float64) float64 {
	return energyDissipation / temperature
}

// InformationForce returns F_info = h·c·v·φ_s / (8π G M k_B).
func InformationForce(mass, carrierVelocity, entropyFlux float64) float64 {
	numerator := Planck * LightSpeed * carrierVelocity * entropyFlux
	denominator := 8 * math.Pi * Gravitational * mass * Boltzmann
	return numerator / denominator
}

// InfoPressure returns the pressure exerted by the information force on
// carriers moving at velocity v: P = F / v.
func InfoPressure(force, carrierVelocity float64) float64 {
	return force / carrierVelocity
}

// EnergyFlowRate returns the rate of energy flow T·φ_s.
func EnergyFlowRate(temperature, entropyFlux float64) float64 {
	return temperature * entropyFlux
}
