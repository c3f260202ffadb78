package effecthelper

import (
	"fmt"

	"github.com/opd-ai/effectvts/effect"
	"github.com/opd-ai/effectvts/interfaces"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestingT is the assertion sink used by the helpers. *testing.T and
// *Recorder both satisfy it.
type TestingT = require.TestingT

// Frame counts used when opening effects under test.
const (
	InputFrameCount  int64 = 0x100
	OutputFrameCount int64 = 0x100
)

type tHelper interface {
	Helper()
}

func markHelper(t TestingT) {
	if h, ok := t.(tHelper); ok {
		h.Helper()
	}
}

// CreateParamCommon builds the common parameter block passed to Open.
func CreateParamCommon(session, ioHandle, iSampleRate, oSampleRate int32, iFrameCount, oFrameCount int64) effect.ParameterCommon {
	return effect.ParameterCommon{
		Session:  session,
		IOHandle: ioHandle,
		Input:    effect.AudioConfig{SampleRate: iSampleRate, FrameCount: iFrameCount},
		Output:   effect.AudioConfig{SampleRate: oSampleRate, FrameCount: oFrameCount},
	}
}

// ExpectStatus records a non-fatal failure when err does not classify as expected.
func ExpectStatus(t TestingT, expected effect.Exception, err error, msgAndArgs ...interface{}) bool {
	markHelper(t)
	actual := effect.ExceptionOf(err)
	if actual == expected {
		return true
	}
	detail := "<nil>"
	if err != nil {
		detail = err.Error()
	}
	return assert.Fail(t, fmt.Sprintf("expected status %s, got %s (%s)", expected, actual, detail), msgAndArgs...)
}

// AssertStatus is ExpectStatus that ends the case on mismatch.
func AssertStatus(t TestingT, expected effect.Exception, err error, msgAndArgs ...interface{}) {
	markHelper(t)
	if !ExpectStatus(t, expected, err, msgAndArgs...) {
		t.FailNow()
	}
}

// Create instantiates the implementation described by desc. Failure ends the case.
func Create(t TestingT, f interfaces.IFactory, desc effect.Descriptor) interfaces.IEffect {
	markHelper(t)
	require.NotNil(t, f, "factory is nil")

	instance, err := f.CreateEffect(desc.Common.ID.UUID)
	AssertStatus(t, effect.ExNone, err, "create %s", desc.Common.Name)
	require.NotNil(t, instance, "create %s returned nil effect", desc.Common.Name)

	logrus.WithFields(logrus.Fields{
		"function": "Create",
		"name":     desc.Common.Name,
		"uuid":     desc.Common.ID.UUID.String(),
	}).Debug("Effect created")

	return instance
}

// Open opens the effect and checks the status against expected. A mismatch ends the case.
func Open(t TestingT, instance interfaces.IEffect, common effect.ParameterCommon,
	specific *effect.ParameterSpecific, expected effect.Exception) effect.OpenReturn {
	markHelper(t)
	require.NotNil(t, instance, "effect is nil")

	ret, err := instance.Open(common, specific)
	AssertStatus(t, expected, err, "open")

	logrus.WithFields(logrus.Fields{
		"function":   "Open",
		"expected":   expected.String(),
		"in_frames":  len(ret.InputBuffer),
		"out_frames": len(ret.OutputBuffer),
	}).Debug("Effect open returned")

	return ret
}

// Close closes the effect. Failure ends the case.
func Close(t TestingT, instance interfaces.IEffect) {
	markHelper(t)
	if instance == nil {
		return
	}
	AssertStatus(t, effect.ExNone, instance.Close(), "close")
}

// Destroy releases the effect through the factory that created it. Failure ends the case.
func Destroy(t TestingT, f interfaces.IFactory, instance interfaces.IEffect) {
	markHelper(t)
	if f == nil || instance == nil {
		return
	}
	AssertStatus(t, effect.ExNone, f.DestroyEffect(instance), "destroy")
}
