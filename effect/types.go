package effect

import (
	"fmt"

	"github.com/google/uuid"
)

// Bass boost strength bounds in per-mille.
const (
	// MinPerMilleStrength is the lowest strength an implementation must accept.
	MinPerMilleStrength int32 = 0
	// MaxPerMilleStrength is the highest strength an implementation must accept.
	MaxPerMilleStrength int32 = 1000
)

// BassBoostTypeUUID identifies the bass boost effect type. Implementations of
// the type carry their own implementation UUID in Descriptor.Common.ID.UUID.
var BassBoostTypeUUID = uuid.MustParse("0634f220-ddd4-11db-a0fc-0002a5d5c51b")

// State is the lifecycle state of an effect instance.
type State int

const (
	// StateInit is the state after creation and after close.
	StateInit State = iota
	// StateIdle is the state of an opened effect that is not processing.
	StateIdle
	// StateProcessing is the state of an opened effect that is processing.
	StateProcessing
)

// String returns a human-readable representation of the state.
func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateIdle:
		return "IDLE"
	case StateProcessing:
		return "PROCESSING"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// ID identifies an effect type and one implementation of it.
type ID struct {
	Type uuid.UUID
	UUID uuid.UUID
}

// DescriptorCommon holds the implementation-independent descriptor fields.
type DescriptorCommon struct {
	ID          ID
	Name        string
	Implementor string
}

// BassBoostCapability reports what a bass boost implementation supports.
type BassBoostCapability struct {
	StrengthSupported bool
}

// Capability holds the per-type capability records of a descriptor.
type Capability struct {
	BassBoost BassBoostCapability
}

// Descriptor is the static metadata of an effect implementation.
type Descriptor struct {
	Common     DescriptorCommon
	Capability Capability
}

// String returns a compact representation used in logs and failure messages.
func (d Descriptor) String() string {
	return fmt.Sprintf("Descriptor{implementor: %s, name: %s, type: %s, uuid: %s, strengthSupported: %t}",
		d.Common.Implementor, d.Common.Name, d.Common.ID.Type, d.Common.ID.UUID,
		d.Capability.BassBoost.StrengthSupported)
}

// BassBoostTag selects the active field of a BassBoost parameter.
type BassBoostTag int

const (
	// BassBoostTagVendor selects vendor extension data.
	BassBoostTagVendor BassBoostTag = iota
	// BassBoostTagStrengthPm selects the per-mille strength.
	BassBoostTagStrengthPm
)

// String returns the tag name.
func (t BassBoostTag) String() string {
	switch t {
	case BassBoostTagVendor:
		return "vendor"
	case BassBoostTagStrengthPm:
		return "strengthPm"
	default:
		return fmt.Sprintf("BassBoostTag(%d)", int(t))
	}
}

// BassBoost is the bass boost specific parameter. Only the field selected by
// Tag is meaningful.
type BassBoost struct {
	Tag        BassBoostTag
	StrengthPm int32
	Vendor     []byte
}

// NewStrength returns a BassBoost parameter holding the given strength.
func NewStrength(strength int32) BassBoost {
	return BassBoost{Tag: BassBoostTagStrengthPm, StrengthPm: strength}
}

// ParameterSpecific holds the effect-type specific part of a parameter.
type ParameterSpecific struct {
	BassBoost *BassBoost
}

// AudioConfig describes one direction of an effect's audio stream.
type AudioConfig struct {
	SampleRate int32
	FrameCount int64
}

// ParameterCommon holds the parameters shared by every effect type.
type ParameterCommon struct {
	Session  int32
	IOHandle int32
	Input    AudioConfig
	Output   AudioConfig
}

// Parameter is the envelope exchanged by SetParameter and GetParameter.
// Round-trip checks compare whole envelopes.
type Parameter struct {
	Common   *ParameterCommon
	Specific *ParameterSpecific
}

// NewBassBoostParameter wraps a bass boost value in a parameter envelope.
func NewBassBoostParameter(bb BassBoost) Parameter {
	return Parameter{Specific: &ParameterSpecific{BassBoost: &bb}}
}

// String returns a compact representation used in failure messages.
func (p Parameter) String() string {
	if p.Specific == nil || p.Specific.BassBoost == nil {
		return "Parameter{}"
	}
	bb := p.Specific.BassBoost
	if bb.Tag == BassBoostTagStrengthPm {
		return fmt.Sprintf("Parameter{specific: BassBoost{strengthPm: %d}}", bb.StrengthPm)
	}
	return fmt.Sprintf("Parameter{specific: BassBoost{%s}}", bb.Tag)
}

// ParameterID identifies the parameter requested by GetParameter.
type ParameterID struct {
	BassBoostTag BassBoostTag
}

// OpenReturn carries the buffers handed out by Open.
type OpenReturn struct {
	InputBuffer  []float32
	OutputBuffer []float32
}
