// Package effect defines the data model shared by effect services and the
// conformance suite.
//
// # Descriptors
//
// A [Descriptor] is the static metadata of one effect implementation. Its
// common part identifies the effect type (for bass boost, [BassBoostTypeUUID])
// and the implementation UUID, and its [Capability] reports optional features:
//
//	desc := effect.Descriptor{
//	    Common: effect.DescriptorCommon{
//	        ID:          effect.ID{Type: effect.BassBoostTypeUUID, UUID: implUUID},
//	        Name:        "BassBoostSw",
//	        Implementor: "The Android Open Source Project",
//	    },
//	    Capability: effect.Capability{
//	        BassBoost: effect.BassBoostCapability{StrengthSupported: true},
//	    },
//	}
//
// # Parameters
//
// [Parameter] is the envelope exchanged with an effect. Bass boost values live
// in the specific part and are selected by a [BassBoostTag]:
//
//	param := effect.NewBassBoostParameter(effect.NewStrength(500))
//
// Valid strengths lie in [MinPerMilleStrength, MaxPerMilleStrength].
//
// # Errors
//
// Services report failures with the sentinel errors of this package, wrapped
// with context via fmt.Errorf("%w"). [ExceptionOf] maps any error to an
// [Exception] code so callers can compare outcomes without string matching:
//
//	if effect.ExceptionOf(err) == effect.ExIllegalArgument {
//	    // rejected value
//	}
package effect
