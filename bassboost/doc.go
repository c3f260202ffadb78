// Package bassboost checks the strength parameter of bass boost effects.
//
// For every (factory, descriptor) pair and every value of the strength sweep
// the suite opens a fresh effect, sets the strength and checks the status
// against the implementation's own capability: values in [0, 1000] must be
// accepted and read back unchanged when strength is supported, every other
// value must be rejected with an illegal argument error.
//
// Inside go test:
//
//	helper := factory.NewEffectFactoryHelper()
//	helper.CreateSimulationForTesting()
//	pairs, _ := helper.GetAllEffectDescriptors(effect.BassBoostTypeUUID)
//	bassboost.RunSuite(t, pairs, bassboost.StrengthValues(true))
//
// Outside go test, Run drives the same cases with a bounded worker pool and
// returns a Report.
package bassboost
