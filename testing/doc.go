// Package testing provides an in-memory simulated effect service for
// exercising the conformance suite without a real effect HAL.
//
// # Overview
//
// This package implements a simulated effect factory and effect instances that
// follow the same lifecycle and parameter validation rules a compliant bass
// boost implementation must follow. The simulation stores parameters and
// tracks lifecycle state; it does not process audio.
//
// # Simulation vs Real Implementation
//
// The suite supports two service modes:
//
//   - Simulation (this package): every call is served in-memory and recorded
//     in a call log for verification. Used for unit tests and demos.
//
//   - Real: a factory registered with the factory package by the embedding
//     program, typically a client of the device's effect service.
//
// Both conform to interfaces.IFactory and interfaces.IEffect.
//
// # Usage
//
//	sim := testing.NewSimulatedFactory("default")
//	sim.AddImplementation(desc, testing.FaultNone)
//
//	instance, err := sim.CreateEffect(desc.Common.ID.UUID)
//	_, err = instance.Open(common, nil)
//	err = instance.SetParameter(effect.NewBassBoostParameter(effect.NewStrength(500)))
//
// # Fault Injection
//
// An implementation can be registered with a [Fault] that makes it
// non-compliant on purpose, which lets tests prove that the validator detects
// broken services:
//
//   - FaultAcceptAll: accepts every strength, including out-of-range values
//   - FaultRejectAll: fails every set with an unsupported operation error
//   - FaultCorruptGet: returns a different strength than the one set
//
// # Call Logs
//
// Every SimulatedEffect keeps a log of CallRecord entries holding the
// operation, the strength involved, the resulting exception and a timestamp.
// Use GetCallLog to inspect it and ClearCallLog to reset it.
//
// # Thread Safety
//
// All methods on SimulatedFactory and SimulatedEffect are safe for concurrent
// use. Internal synchronization uses sync.RWMutex and sync.Mutex.
package testing
