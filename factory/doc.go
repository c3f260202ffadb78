// Package factory locates effect factory services and enumerates the effect
// implementations the conformance suite runs against.
//
// The helper abstracts where factories come from, allowing the same suite to
// run against the in-memory simulation or a real service registered by the
// embedding program, without changing test code.
//
// # Configuration
//
// The helper supports configuration via environment variables:
//   - EFFECT_VTS_USE_SIMULATION: "true" or "false" to enumerate simulated factories
//   - EFFECT_VTS_SERVICE_NAME: instance name of the real factory service
//   - EFFECT_VTS_PROBE_MAX_PLUS_ONE: "true" or "false" to probe Max+1 in the sweep
//   - EFFECT_VTS_PARALLEL: number of cases run at once (1-64)
//
// # Usage
//
//	helper := factory.NewEffectFactoryHelper()
//
//	// Register a real service client
//	if err := helper.RegisterFactory("default", client); err != nil {
//	    log.Fatal(err)
//	}
//
//	// Or a simulation for testing
//	sim, err := helper.CreateSimulationForTesting()
//
//	pairs, err := helper.GetAllEffectDescriptors(effect.BassBoostTypeUUID)
//
// # Manifests
//
// Simulated factories can be described in YAML and loaded with LoadManifest
// and ApplyManifest, which is how the effectvts command builds non-default
// simulations (including deliberately faulty ones).
//
// # Mode Switching
//
//	helper.SwitchToSimulation()  // enumerate simulated factories
//	helper.SwitchToReal()        // enumerate the configured service only
package factory
