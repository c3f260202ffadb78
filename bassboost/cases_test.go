package bassboost

import (
	"regexp"
	"testing"

	"github.com/google/uuid"
	"github.com/opd-ai/effectvts/factory"
	simtesting "github.com/opd-ai/effectvts/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaseName(t *testing.T) {
	implUUID := uuid.MustParse("fa8181f2-588b-11ed-9b6a-0242ac120002")

	tests := []struct {
		name        string
		implementor string
		effectName  string
		strength    int32
		want        string
	}{
		{
			name:        "plain",
			implementor: "AOSP",
			effectName:  "BassBoostSw",
			strength:    500,
			want:        "Implementor_AOSP_name_BassBoostSw_UUID_fa8181f2_588b_11ed_9b6a_0242ac120002_strength_500",
		},
		{
			name:        "spaces and negative",
			implementor: "The Android Open Source Project",
			effectName:  "Bass Boost",
			strength:    -1,
			want: "Implementor_The_Android_Open_Source_Project_name_Bass_Boost" +
				"_UUID_fa8181f2_588b_11ed_9b6a_0242ac120002_strength__1",
		},
		{
			name:        "non ascii bytes",
			implementor: "Ünï",
			effectName:  "x.y",
			strength:    0,
			want:        "Implementor___n___name_x_y_UUID_fa8181f2_588b_11ed_9b6a_0242ac120002_strength_0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			desc := factory.NewBassBoostDescriptor(tt.effectName, tt.implementor, implUUID, true)
			assert.Equal(t, tt.want, CaseName(desc, tt.strength))
		})
	}
}

func TestCaseNameIsAlphanumeric(t *testing.T) {
	valid := regexp.MustCompile(`^[A-Za-z0-9_]+$`)
	desc := factory.NewBassBoostDescriptor("name/with:odd\tchars", "vendor-é", uuid.New(), true)

	for _, v := range StrengthValues(true) {
		assert.Regexp(t, valid, CaseName(desc, v))
	}
}

func TestCasesOrder(t *testing.T) {
	sim := simtesting.NewSimulatedFactory("sim")
	first := factory.NewBassBoostDescriptor("First", "Test", uuid.New(), true)
	second := factory.NewBassBoostDescriptor("Second", "Test", uuid.New(), false)
	pairs := []factory.FactoryDescriptor{
		{Name: "sim", Factory: sim, Descriptor: first},
		{Name: "sim", Factory: sim, Descriptor: second},
	}
	values := []int32{0, 1000, 1001}

	cases := Cases(pairs, values)
	require.Len(t, cases, 6)

	for i, c := range cases {
		wantDesc := pairs[i/len(values)].Descriptor
		assert.Equal(t, wantDesc, c.Descriptor)
		assert.Equal(t, values[i%len(values)], c.Strength)
		assert.Equal(t, "sim", c.FactoryName)
		assert.Equal(t, CaseName(wantDesc, c.Strength), c.Name)
	}
}

func TestCasesEmpty(t *testing.T) {
	assert.Empty(t, Cases(nil, StrengthValues(true)))
	assert.Empty(t, Cases([]factory.FactoryDescriptor{{Name: "sim"}}, nil))
}
