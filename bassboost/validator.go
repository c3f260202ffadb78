package bassboost

import (
	"math"

	"github.com/opd-ai/effectvts/effect"
	"github.com/opd-ai/effectvts/effecthelper"
	"github.com/opd-ai/effectvts/interfaces"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

// Outcome is the predicted result of setting a parameter.
type Outcome int

const (
	// Reject means the set must fail with an illegal argument error.
	Reject Outcome = iota
	// Accept means the set must succeed and the value must read back unchanged.
	Accept
)

// String returns the outcome name.
func (o Outcome) String() string {
	if o == Accept {
		return "accept"
	}
	return "reject"
}

// Exception returns the status class a compliant effect reports for the outcome.
func (o Outcome) Exception() effect.Exception {
	if o == Accept {
		return effect.ExNone
	}
	return effect.ExIllegalArgument
}

// IsStrengthInRange reports whether strength is settable on an effect with capability c.
func IsStrengthInRange(c effect.BassBoostCapability, strength int32) bool {
	return c.StrengthSupported &&
		strength >= effect.MinPerMilleStrength &&
		strength <= effect.MaxPerMilleStrength
}

// IsTagInRange reports whether the field of bb selected by tag is settable on
// the implementation described by desc. Tags without a documented range are
// never in range.
func IsTagInRange(tag effect.BassBoostTag, bb effect.BassBoost, desc effect.Descriptor) bool {
	switch tag {
	case effect.BassBoostTagStrengthPm:
		return IsStrengthInRange(desc.Capability.BassBoost, bb.StrengthPm)
	default:
		return false
	}
}

// Classify predicts the outcome of setting strength v on an effect with capability c.
func Classify(c effect.BassBoostCapability, v int32) Outcome {
	if IsStrengthInRange(c, v) {
		return Accept
	}
	return Reject
}

// StrengthValues returns the strength sweep: the int32 extremes, one below the
// minimum, the minimum, the midpoint, the maximum and two values above it.
// probeMaxPlusOne adds Max+1 between Max and Max+2.
func StrengthValues(probeMaxPlusOne bool) []int32 {
	values := []int32{
		math.MinInt32,
		effect.MinPerMilleStrength - 1,
		effect.MinPerMilleStrength,
		(effect.MinPerMilleStrength + effect.MaxPerMilleStrength) >> 1,
		effect.MaxPerMilleStrength,
	}
	if probeMaxPlusOne {
		values = append(values, effect.MaxPerMilleStrength+1)
	}
	return append(values, effect.MaxPerMilleStrength+2, math.MaxInt32)
}

// ExerciseRoundTrip sets strength value on instance and checks the result
// against expected. When the set was expected to succeed and did, the value is
// read back and the whole parameter envelope must match. Mismatches are
// reported to t as non-fatal failures; the return value reports overall success.
func ExerciseRoundTrip(t effecthelper.TestingT, instance interfaces.IEffect, value int32, expected Outcome) bool {
	return exerciseTag(t, instance, effect.BassBoostTagStrengthPm, effect.NewStrength(value), expected)
}

func exerciseTag(t effecthelper.TestingT, instance interfaces.IEffect, tag effect.BassBoostTag,
	bb effect.BassBoost, expected Outcome) bool {
	expectParam := effect.NewBassBoostParameter(bb)

	err := instance.SetParameter(expectParam)
	ok := effecthelper.ExpectStatus(t, expected.Exception(), err, expectParam.String())

	logrus.WithFields(logrus.Fields{
		"function": "ExerciseRoundTrip",
		"tag":      tag.String(),
		"param":    expectParam.String(),
		"expected": expected.String(),
		"status":   effect.ExceptionOf(err).String(),
	}).Debug("Set parameter returned")

	// only get if parameter in range and set success
	if expected != Accept || err != nil {
		return ok
	}

	getParam, err := instance.GetParameter(effect.ParameterID{BassBoostTag: tag})
	if !effecthelper.ExpectStatus(t, effect.ExNone, err, "get %s", tag) {
		return false
	}
	return assert.Equal(t, expectParam, getParam, "round trip of %s", expectParam) && ok
}
