package bassboost

import (
	"math"
	"testing"

	"github.com/google/uuid"
	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/opd-ai/effectvts/effect"
	"github.com/opd-ai/effectvts/effecthelper"
	"github.com/opd-ai/effectvts/factory"
	"github.com/opd-ai/effectvts/interfaces"
	simtesting "github.com/opd-ai/effectvts/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	supported   = effect.BassBoostCapability{StrengthSupported: true}
	unsupported = effect.BassBoostCapability{StrengthSupported: false}
)

// openEffect creates and opens one simulated effect with the given capability and fault.
func openEffect(t *testing.T, strengthSupported bool, fault simtesting.Fault) (*simtesting.SimulatedFactory, interfaces.IEffect) {
	t.Helper()

	desc := factory.NewBassBoostDescriptor("BassBoostSw", "Test", uuid.New(), strengthSupported)
	sim := simtesting.NewSimulatedFactory("test")
	sim.AddImplementation(desc, fault)

	instance, err := sim.CreateEffect(desc.Common.ID.UUID)
	require.NoError(t, err)
	common := effecthelper.CreateParamCommon(0, 1, 44100, 44100,
		effecthelper.InputFrameCount, effecthelper.OutputFrameCount)
	_, err = instance.Open(common, DefaultParamSpecific())
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = instance.Close()
		_ = sim.DestroyEffect(instance)
	})
	return sim, instance
}

func TestClassifyBoundaries(t *testing.T) {
	tests := []struct {
		name     string
		cap      effect.BassBoostCapability
		value    int32
		expected Outcome
	}{
		{"below min", supported, -1, Reject},
		{"min", supported, 0, Accept},
		{"mid", supported, 500, Accept},
		{"max", supported, 1000, Accept},
		{"max plus one", supported, 1001, Reject},
		{"max plus two", supported, 1002, Reject},
		{"int32 min", supported, math.MinInt32, Reject},
		{"int32 max", supported, math.MaxInt32, Reject},
		{"unsupported min", unsupported, 0, Reject},
		{"unsupported mid", unsupported, 500, Reject},
		{"unsupported max", unsupported, 1000, Reject},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.cap, tt.value))
			assert.Equal(t, tt.expected == Accept, IsStrengthInRange(tt.cap, tt.value))
		})
	}
}

func TestClassifyProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500
	properties := gopter.NewProperties(parameters)

	properties.Property("accept iff supported and within range", prop.ForAll(
		func(v int32, strengthSupported bool) bool {
			c := effect.BassBoostCapability{StrengthSupported: strengthSupported}
			want := strengthSupported && v >= effect.MinPerMilleStrength && v <= effect.MaxPerMilleStrength
			return (Classify(c, v) == Accept) == want
		},
		gen.Int32(),
		gen.Bool(),
	))

	properties.Property("every in-range value is accepted", prop.ForAll(
		func(v int32) bool {
			return Classify(supported, v) == Accept
		},
		gen.Int32Range(effect.MinPerMilleStrength, effect.MaxPerMilleStrength),
	))

	properties.Property("unsupported rejects everything", prop.ForAll(
		func(v int32) bool {
			return Classify(unsupported, v) == Reject
		},
		gen.Int32(),
	))

	properties.TestingRun(t)
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, "accept", Accept.String())
	assert.Equal(t, "reject", Reject.String())
	assert.Equal(t, effect.ExNone, Accept.Exception())
	assert.Equal(t, effect.ExIllegalArgument, Reject.Exception())
}

func TestIsTagInRange(t *testing.T) {
	desc := factory.NewBassBoostDescriptor("BassBoostSw", "Test", uuid.New(), true)

	assert.True(t, IsTagInRange(effect.BassBoostTagStrengthPm, effect.NewStrength(500), desc))
	assert.False(t, IsTagInRange(effect.BassBoostTagStrengthPm, effect.NewStrength(1001), desc))
	assert.False(t, IsTagInRange(effect.BassBoostTagVendor, effect.BassBoost{Tag: effect.BassBoostTagVendor}, desc))
}

func TestStrengthValues(t *testing.T) {
	tests := []struct {
		name  string
		probe bool
		want  []int32
	}{
		{
			name:  "with max plus one",
			probe: true,
			want:  []int32{math.MinInt32, -1, 0, 500, 1000, 1001, 1002, math.MaxInt32},
		},
		{
			name:  "legacy sweep",
			probe: false,
			want:  []int32{math.MinInt32, -1, 0, 500, 1000, 1002, math.MaxInt32},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StrengthValues(tt.probe))
		})
	}
}

func TestExerciseRoundTripCompliant(t *testing.T) {
	for _, v := range StrengthValues(true) {
		_, instance := openEffect(t, true, simtesting.FaultNone)

		rec := effecthelper.NewRecorder("compliant")
		ok := ExerciseRoundTrip(rec, instance, v, Classify(supported, v))

		assert.True(t, ok, "strength %d", v)
		assert.False(t, rec.Failed(), "strength %d: %v", v, rec.Failures())
	}
}

func TestExerciseRoundTripWrongExpectation(t *testing.T) {
	_, instance := openEffect(t, true, simtesting.FaultNone)

	rec := effecthelper.NewRecorder("wrong")
	ok := ExerciseRoundTrip(rec, instance, 500, Reject)

	assert.False(t, ok)
	require.True(t, rec.Failed())
	assert.False(t, rec.Failures()[0].Fatal, "status mismatches are non-fatal")
}

func TestExerciseRoundTripSkipsGetOnReject(t *testing.T) {
	_, instance := openEffect(t, true, simtesting.FaultNone)

	se := instance.(*simtesting.SimulatedEffect)
	se.ClearCallLog()

	rec := effecthelper.NewRecorder("reject")
	assert.True(t, ExerciseRoundTrip(rec, instance, 1001, Reject))

	for _, call := range se.GetCallLog() {
		assert.NotEqual(t, simtesting.OpGetParameter, call.Operation)
	}
}

func TestRejectedSetLeavesValueUnchanged(t *testing.T) {
	_, instance := openEffect(t, true, simtesting.FaultNone)

	rec := effecthelper.NewRecorder("unchanged")
	require.True(t, ExerciseRoundTrip(rec, instance, 700, Accept))
	require.True(t, ExerciseRoundTrip(rec, instance, 1001, Reject))
	require.True(t, ExerciseRoundTrip(rec, instance, -1, Reject))

	got, err := instance.GetParameter(effect.ParameterID{BassBoostTag: effect.BassBoostTagStrengthPm})
	require.NoError(t, err)
	assert.Equal(t, int32(700), got.Specific.BassBoost.StrengthPm)
}

func TestExerciseRoundTripDetectsFaults(t *testing.T) {
	tests := []struct {
		name  string
		fault simtesting.Fault
		value int32
	}{
		{"accept all takes out of range", simtesting.FaultAcceptAll, 1001},
		{"reject all refuses in range", simtesting.FaultRejectAll, 500},
		{"reject all uses wrong status", simtesting.FaultRejectAll, -1},
		{"corrupt get", simtesting.FaultCorruptGet, 500},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, instance := openEffect(t, true, tt.fault)

			rec := effecthelper.NewRecorder(tt.name)
			ok := ExerciseRoundTrip(rec, instance, tt.value, Classify(supported, tt.value))

			assert.False(t, ok)
			assert.True(t, rec.Failed())
		})
	}
}
