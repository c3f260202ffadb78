package interfaces

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/opd-ai/effectvts/effect"
)

// IEffect defines the operations the conformance suite performs on one effect
// instance. Calls on a single instance are made sequentially.
type IEffect interface {
	// Open configures the effect and hands out its processing buffers
	Open(common effect.ParameterCommon, specific *effect.ParameterSpecific) (effect.OpenReturn, error)

	// Close releases the buffers and returns the effect to the INIT state
	Close() error

	// GetDescriptor returns the descriptor of the implementation behind this instance
	GetDescriptor() (effect.Descriptor, error)

	// SetParameter applies a parameter envelope
	SetParameter(param effect.Parameter) error

	// GetParameter reads back the parameter selected by id
	GetParameter(id effect.ParameterID) (effect.Parameter, error)
}

// IFactory defines the effect factory service used to discover and create effects.
type IFactory interface {
	// QueryEffects returns descriptors matching the optional type and implementation UUIDs.
	// A nil filter matches every descriptor.
	QueryEffects(typeUUID, implUUID *uuid.UUID) ([]effect.Descriptor, error)

	// CreateEffect instantiates the implementation identified by implUUID
	CreateEffect(implUUID uuid.UUID) (IEffect, error)

	// DestroyEffect releases an instance created by this factory
	DestroyEffect(instance IEffect) error
}

// Configuration bounds.
const (
	// MinParallel is the smallest number of cases run at once.
	MinParallel = 1
	// MaxParallel is the largest number of cases run at once.
	MaxParallel = 64
)

// Configuration validation errors.
var (
	// ErrInvalidParallel indicates Parallel is outside [MinParallel, MaxParallel].
	ErrInvalidParallel = errors.New("parallel must be between 1 and 64")

	// ErrEmptyServiceName indicates a real service was requested without a name.
	ErrEmptyServiceName = errors.New("service name is required when simulation is disabled")
)

// EffectServiceConfig holds configuration for locating effect services and
// running the conformance sweep.
type EffectServiceConfig struct {
	// UseSimulation selects the in-memory simulated effect service
	UseSimulation bool

	// ServiceName is the factory instance name to enumerate when not simulating.
	// An empty name with UseSimulation enumerates every registered factory.
	ServiceName string

	// ProbeMaxPlusOne adds MaxPerMilleStrength+1 to the strength sweep
	ProbeMaxPlusOne bool

	// Parallel is the number of cases the runner executes at once
	Parallel int
}

// Validate checks the configuration for values the runner cannot use.
func (c *EffectServiceConfig) Validate() error {
	if c.Parallel < MinParallel || c.Parallel > MaxParallel {
		return fmt.Errorf("%w: got %d", ErrInvalidParallel, c.Parallel)
	}
	if !c.UseSimulation && c.ServiceName == "" {
		return ErrEmptyServiceName
	}
	return nil
}
