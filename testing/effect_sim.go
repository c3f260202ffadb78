package testing

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/opd-ai/effectvts/effect"
	"github.com/sirupsen/logrus"
)

// Fault selects a deliberate non-compliance of a simulated implementation.
type Fault int

const (
	// FaultNone is a compliant implementation.
	FaultNone Fault = iota
	// FaultAcceptAll stores every strength without a range check.
	FaultAcceptAll
	// FaultRejectAll fails every strength set with ErrUnsupportedOperation.
	FaultRejectAll
	// FaultCorruptGet returns the stored strength plus one.
	FaultCorruptGet
)

var faultNames = map[Fault]string{
	FaultNone:       "none",
	FaultAcceptAll:  "accept_all",
	FaultRejectAll:  "reject_all",
	FaultCorruptGet: "corrupt_get",
}

// String returns the manifest name of the fault.
func (f Fault) String() string {
	if name, ok := faultNames[f]; ok {
		return name
	}
	return fmt.Sprintf("Fault(%d)", int(f))
}

// ParseFault converts a manifest name into a Fault. The empty string is FaultNone.
func ParseFault(name string) (Fault, error) {
	if name == "" {
		return FaultNone, nil
	}
	for fault, n := range faultNames {
		if strings.EqualFold(n, name) {
			return fault, nil
		}
	}
	return FaultNone, fmt.Errorf("unknown fault %q", name)
}

// Operation names recorded in the call log.
const (
	OpOpen          = "open"
	OpClose         = "close"
	OpGetDescriptor = "getDescriptor"
	OpSetParameter  = "setParameter"
	OpGetParameter  = "getParameter"
)

// CallRecord represents one call made on a simulated effect.
type CallRecord struct {
	Operation string
	Strength  int32
	Exception effect.Exception
	Timestamp int64
}

// SimulatedEffect implements interfaces.IEffect in memory.
type SimulatedEffect struct {
	mu         sync.Mutex
	descriptor effect.Descriptor
	fault      Fault
	state      effect.State
	common     effect.ParameterCommon
	bassBoost  effect.BassBoost
	callLog    []CallRecord
}

func newSimulatedEffect(desc effect.Descriptor, fault Fault) *SimulatedEffect {
	return &SimulatedEffect{
		descriptor: desc,
		fault:      fault,
		state:      effect.StateInit,
		bassBoost:  effect.NewStrength(effect.MinPerMilleStrength),
		callLog:    make([]CallRecord, 0),
	}
}

// Open implements IEffect.Open. The effect must be in the INIT state.
func (e *SimulatedEffect) Open(common effect.ParameterCommon, specific *effect.ParameterSpecific) (effect.OpenReturn, error) {
	logrus.WithFields(logrus.Fields{
		"function":    "SimulatedEffect.Open",
		"name":        e.descriptor.Common.Name,
		"session":     common.Session,
		"io_handle":   common.IOHandle,
		"in_frames":   common.Input.FrameCount,
		"out_frames":  common.Output.FrameCount,
		"sample_rate": common.Input.SampleRate,
	}).Debug("Simulating effect open")

	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != effect.StateInit {
		err := fmt.Errorf("%w: open called in state %s", effect.ErrIllegalState, e.state)
		e.record(OpOpen, 0, err)
		return effect.OpenReturn{}, err
	}
	if common.Input.FrameCount < 0 || common.Output.FrameCount < 0 {
		err := fmt.Errorf("%w: negative frame count", effect.ErrIllegalArgument)
		e.record(OpOpen, 0, err)
		return effect.OpenReturn{}, err
	}

	if specific != nil && specific.BassBoost != nil {
		// The initial value configures the effect; the capability only gates later changes.
		if err := e.applyBassBoost(*specific.BassBoost, false); err != nil {
			e.record(OpOpen, specific.BassBoost.StrengthPm, err)
			return effect.OpenReturn{}, err
		}
	}

	e.common = common
	e.state = effect.StateIdle
	e.record(OpOpen, e.bassBoost.StrengthPm, nil)

	logrus.WithFields(logrus.Fields{
		"function": "SimulatedEffect.Open",
		"name":     e.descriptor.Common.Name,
		"state":    e.state.String(),
	}).Debug("Effect opened in simulation")

	return effect.OpenReturn{
		InputBuffer:  make([]float32, common.Input.FrameCount),
		OutputBuffer: make([]float32, common.Output.FrameCount),
	}, nil
}

// Close implements IEffect.Close. Closing an effect that is not open is a no-op.
func (e *SimulatedEffect) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function": "SimulatedEffect.Close",
		"name":     e.descriptor.Common.Name,
		"state":    e.state.String(),
	}).Debug("Simulating effect close")

	e.state = effect.StateInit
	e.record(OpClose, 0, nil)
	return nil
}

// GetDescriptor implements IEffect.GetDescriptor.
func (e *SimulatedEffect) GetDescriptor() (effect.Descriptor, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.record(OpGetDescriptor, 0, nil)
	return e.descriptor, nil
}

// SetParameter implements IEffect.SetParameter.
func (e *SimulatedEffect) SetParameter(param effect.Parameter) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	var strength int32
	if param.Specific != nil && param.Specific.BassBoost != nil {
		strength = param.Specific.BassBoost.StrengthPm
	}

	logrus.WithFields(logrus.Fields{
		"function": "SimulatedEffect.SetParameter",
		"name":     e.descriptor.Common.Name,
		"param":    param.String(),
	}).Debug("Simulating set parameter")

	if e.state == effect.StateInit {
		err := fmt.Errorf("%w: effect is not open", effect.ErrIllegalState)
		e.record(OpSetParameter, strength, err)
		return err
	}
	if param.Specific == nil || param.Specific.BassBoost == nil {
		err := fmt.Errorf("%w: parameter is not a bass boost parameter", effect.ErrIllegalArgument)
		e.record(OpSetParameter, strength, err)
		return err
	}

	var err error
	if e.fault == FaultRejectAll {
		err = fmt.Errorf("%w: strength cannot be changed", effect.ErrUnsupportedOperation)
	} else {
		err = e.applyBassBoost(*param.Specific.BassBoost, true)
	}
	if err == nil && param.Common != nil {
		e.common = *param.Common
	}
	e.record(OpSetParameter, strength, err)

	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function": "SimulatedEffect.SetParameter",
			"name":     e.descriptor.Common.Name,
			"strength": strength,
			"error":    err.Error(),
		}).Debug("Simulated set parameter rejected")
	}
	return err
}

// applyBassBoost validates and stores a bass boost value. Callers hold e.mu.
func (e *SimulatedEffect) applyBassBoost(bb effect.BassBoost, checkCapability bool) error {
	if bb.Tag != effect.BassBoostTagStrengthPm {
		return fmt.Errorf("%w: unsupported bass boost tag %s", effect.ErrIllegalArgument, bb.Tag)
	}

	if e.fault == FaultAcceptAll {
		e.bassBoost = effect.NewStrength(bb.StrengthPm)
		return nil
	}

	if checkCapability && !e.descriptor.Capability.BassBoost.StrengthSupported {
		return fmt.Errorf("%w: strength not supported", effect.ErrIllegalArgument)
	}
	if bb.StrengthPm < effect.MinPerMilleStrength || bb.StrengthPm > effect.MaxPerMilleStrength {
		return fmt.Errorf("%w: strength %d outside [%d, %d]", effect.ErrIllegalArgument,
			bb.StrengthPm, effect.MinPerMilleStrength, effect.MaxPerMilleStrength)
	}

	e.bassBoost = effect.NewStrength(bb.StrengthPm)
	return nil
}

// GetParameter implements IEffect.GetParameter.
func (e *SimulatedEffect) GetParameter(id effect.ParameterID) (effect.Parameter, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state == effect.StateInit {
		err := fmt.Errorf("%w: effect is not open", effect.ErrIllegalState)
		e.record(OpGetParameter, 0, err)
		return effect.Parameter{}, err
	}
	if id.BassBoostTag != effect.BassBoostTagStrengthPm {
		err := fmt.Errorf("%w: unsupported bass boost tag %s", effect.ErrIllegalArgument, id.BassBoostTag)
		e.record(OpGetParameter, 0, err)
		return effect.Parameter{}, err
	}

	bb := e.bassBoost
	if e.fault == FaultCorruptGet {
		bb.StrengthPm++
	}
	e.record(OpGetParameter, bb.StrengthPm, nil)

	logrus.WithFields(logrus.Fields{
		"function": "SimulatedEffect.GetParameter",
		"name":     e.descriptor.Common.Name,
		"strength": bb.StrengthPm,
	}).Debug("Simulated get parameter")

	return effect.NewBassBoostParameter(bb), nil
}

// GetState returns the current lifecycle state.
func (e *SimulatedEffect) GetState() effect.State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// record appends a call log entry. Callers hold e.mu.
func (e *SimulatedEffect) record(op string, strength int32, err error) {
	e.callLog = append(e.callLog, CallRecord{
		Operation: op,
		Strength:  strength,
		Exception: effect.ExceptionOf(err),
		Timestamp: time.Now().UnixNano(),
	})
}

// GetCallLog returns the complete call log for test verification
func (e *SimulatedEffect) GetCallLog() []CallRecord {
	e.mu.Lock()
	defer e.mu.Unlock()

	// Return a copy to prevent external modifications
	log := make([]CallRecord, len(e.callLog))
	copy(log, e.callLog)
	return log
}

// ClearCallLog clears the call log for test cleanup
func (e *SimulatedEffect) ClearCallLog() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.callLog = make([]CallRecord, 0)
}
