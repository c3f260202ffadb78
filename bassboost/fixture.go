package bassboost

import (
	"github.com/opd-ai/effectvts/effect"
	"github.com/opd-ai/effectvts/effecthelper"
	"github.com/opd-ai/effectvts/interfaces"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

// Open parameters used for every case.
const (
	session     int32 = 0
	ioHandle    int32 = 1
	iSampleRate int32 = 44100
	oSampleRate int32 = 44100
)

// TaggedBassBoost is a pending parameter: the tag to exercise and the value carrying it.
type TaggedBassBoost struct {
	Tag       effect.BassBoostTag
	BassBoost effect.BassBoost
}

// ParamTest is the fixture of one case. It owns one effect instance from
// SetUp to TearDown.
type ParamTest struct {
	Factory    interfaces.IFactory
	Descriptor effect.Descriptor
	Strength   int32

	effect interfaces.IEffect
	tags   []TaggedBassBoost
}

// NewParamTest creates the fixture for c.
func NewParamTest(c Case) *ParamTest {
	return &ParamTest{
		Factory:    c.Factory,
		Descriptor: c.Descriptor,
		Strength:   c.Strength,
	}
}

// DefaultParamSpecific is the specific parameter passed to Open.
func DefaultParamSpecific() *effect.ParameterSpecific {
	bb := effect.NewStrength(effect.MinPerMilleStrength)
	return &effect.ParameterSpecific{BassBoost: &bb}
}

// SetUp creates and opens the effect. Any failure ends the case.
func (p *ParamTest) SetUp(t effecthelper.TestingT) {
	require.NotNil(t, p.Factory, "factory is nil")

	p.effect = effecthelper.Create(t, p.Factory, p.Descriptor)

	common := effecthelper.CreateParamCommon(session, ioHandle, iSampleRate, oSampleRate,
		effecthelper.InputFrameCount, effecthelper.OutputFrameCount)
	effecthelper.Open(t, p.effect, common, DefaultParamSpecific(), effect.ExNone)
}

// TearDown closes and destroys the effect if SetUp created one.
func (p *ParamTest) TearDown(t effecthelper.TestingT) {
	if p.effect == nil {
		return
	}
	instance := p.effect
	p.effect = nil

	effecthelper.Close(t, instance)
	effecthelper.Destroy(t, p.Factory, instance)
}

// AddStrengthParam queues a strength value for SetAndGetParameters.
func (p *ParamTest) AddStrengthParam(strength int32) {
	p.tags = append(p.tags, TaggedBassBoost{
		Tag:       effect.BassBoostTagStrengthPm,
		BassBoost: effect.NewStrength(strength),
	})
}

// SetAndGetParameters validates every queued parameter against the effect's
// own descriptor and exercises the set/get round trip.
func (p *ParamTest) SetAndGetParameters(t effecthelper.TestingT) {
	for _, it := range p.tags {
		// validate parameter
		desc, err := p.effect.GetDescriptor()
		effecthelper.AssertStatus(t, effect.ExNone, err, "getDescriptor")

		expected := Reject
		if IsTagInRange(it.Tag, it.BassBoost, desc) {
			expected = Accept
		}

		logrus.WithFields(logrus.Fields{
			"function": "ParamTest.SetAndGetParameters",
			"name":     desc.Common.Name,
			"tag":      it.Tag.String(),
			"strength": it.BassBoost.StrengthPm,
			"expected": expected.String(),
		}).Debug("Exercising parameter")

		exerciseTag(t, p.effect, it.Tag, it.BassBoost, expected)
	}
}

// CleanUp drops the queued parameters.
func (p *ParamTest) CleanUp() {
	p.tags = nil
}

// SetAndGetStrength is the body of one case: set up, exercise the case's
// strength, tear down. Teardown runs even when an assertion ends the case.
func (p *ParamTest) SetAndGetStrength(t effecthelper.TestingT) {
	defer p.CleanUp()
	defer p.TearDown(t)

	p.SetUp(t)
	p.AddStrengthParam(p.Strength)
	p.SetAndGetParameters(t)
}
