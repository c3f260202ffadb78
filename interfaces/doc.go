// Package interfaces defines the effect service abstractions consumed by the
// conformance suite.
//
// This package provides the interfaces that let the suite run against either
// a real effect service or the in-memory simulation, without changing any
// test code.
//
// # Core Interfaces
//
// [IFactory] enumerates and creates effect implementations:
//
//	descs, err := factory.QueryEffects(&effect.BassBoostTypeUUID, nil)
//	if err != nil {
//	    return err
//	}
//	instance, err := factory.CreateEffect(descs[0].Common.ID.UUID)
//
// [IEffect] exposes exactly the lifecycle and parameter operations the suite
// needs: Open, Close, GetDescriptor, SetParameter and GetParameter.
//
//	ret, err := instance.Open(common, &effect.ParameterSpecific{BassBoost: &bb})
//	err = instance.SetParameter(effect.NewBassBoostParameter(effect.NewStrength(500)))
//	got, err := instance.GetParameter(effect.ParameterID{BassBoostTag: effect.BassBoostTagStrengthPm})
//
// # Configuration
//
// [EffectServiceConfig] holds settings for locating services and running the sweep:
//
//	config := &interfaces.EffectServiceConfig{
//	    UseSimulation:   true,
//	    ProbeMaxPlusOne: true,
//	    Parallel:        4,
//	}
//	if err := config.Validate(); err != nil {
//	    log.Fatalf("invalid config: %v", err)
//	}
//
// # Error Handling
//
// Implementations report failures with the sentinel errors of the effect
// package so callers can classify them with effect.ExceptionOf.
//
// # Thread Safety
//
// Factories must be safe for concurrent use. A single IEffect instance is only
// ever driven by one goroutine at a time.
package interfaces
