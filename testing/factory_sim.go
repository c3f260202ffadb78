package testing

import (
	"fmt"
	"sync"

	"github.com/google/uuid"
	"github.com/opd-ai/effectvts/effect"
	"github.com/opd-ai/effectvts/interfaces"
	"github.com/sirupsen/logrus"
)

type simulatedImplementation struct {
	descriptor effect.Descriptor
	fault      Fault
}

// SimulatedFactory implements interfaces.IFactory with in-memory effects.
type SimulatedFactory struct {
	name  string
	impls map[uuid.UUID]simulatedImplementation
	order []uuid.UUID
	live  map[*SimulatedEffect]bool
	mu    sync.RWMutex
}

// FactoryStats is a snapshot of a simulated factory.
type FactoryStats struct {
	Implementations int
	LiveEffects     int
}

// NewSimulatedFactory creates an empty simulated factory with the given instance name.
func NewSimulatedFactory(name string) *SimulatedFactory {
	logrus.Warn("SIMULATION FUNCTION - NOT A REAL OPERATION")
	logrus.WithFields(logrus.Fields{
		"function": "NewSimulatedFactory",
		"name":     name,
	}).Info("Creating simulated effect factory")

	return &SimulatedFactory{
		name:  name,
		impls: make(map[uuid.UUID]simulatedImplementation),
		order: make([]uuid.UUID, 0),
		live:  make(map[*SimulatedEffect]bool),
	}
}

// Name returns the factory instance name.
func (f *SimulatedFactory) Name() string {
	return f.name
}

// AddImplementation registers an implementation. Registering the same
// implementation UUID again replaces the earlier registration.
func (f *SimulatedFactory) AddImplementation(desc effect.Descriptor, fault Fault) {
	f.mu.Lock()
	defer f.mu.Unlock()

	id := desc.Common.ID.UUID
	if _, exists := f.impls[id]; !exists {
		f.order = append(f.order, id)
	}
	f.impls[id] = simulatedImplementation{descriptor: desc, fault: fault}

	logrus.WithFields(logrus.Fields{
		"function":        "SimulatedFactory.AddImplementation",
		"factory":         f.name,
		"name":            desc.Common.Name,
		"uuid":            id.String(),
		"fault":           fault.String(),
		"implementations": len(f.impls),
	}).Info("Implementation added to simulation")
}

// QueryEffects implements IFactory.QueryEffects.
func (f *SimulatedFactory) QueryEffects(typeUUID, implUUID *uuid.UUID) ([]effect.Descriptor, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()

	descs := make([]effect.Descriptor, 0, len(f.order))
	for _, id := range f.order {
		desc := f.impls[id].descriptor
		if typeUUID != nil && desc.Common.ID.Type != *typeUUID {
			continue
		}
		if implUUID != nil && desc.Common.ID.UUID != *implUUID {
			continue
		}
		descs = append(descs, desc)
	}

	logrus.WithFields(logrus.Fields{
		"function": "SimulatedFactory.QueryEffects",
		"factory":  f.name,
		"matches":  len(descs),
	}).Debug("Queried simulated effects")

	return descs, nil
}

// CreateEffect implements IFactory.CreateEffect.
func (f *SimulatedFactory) CreateEffect(implUUID uuid.UUID) (interfaces.IEffect, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	impl, ok := f.impls[implUUID]
	if !ok {
		logrus.WithFields(logrus.Fields{
			"function": "SimulatedFactory.CreateEffect",
			"factory":  f.name,
			"uuid":     implUUID.String(),
		}).Error("Implementation not found in simulation")
		return nil, fmt.Errorf("%w: no implementation %s", effect.ErrIllegalArgument, implUUID)
	}

	instance := newSimulatedEffect(impl.descriptor, impl.fault)
	f.live[instance] = true

	logrus.WithFields(logrus.Fields{
		"function":     "SimulatedFactory.CreateEffect",
		"factory":      f.name,
		"name":         impl.descriptor.Common.Name,
		"live_effects": len(f.live),
	}).Debug("Simulated effect created")

	return instance, nil
}

// DestroyEffect implements IFactory.DestroyEffect. The effect must be closed.
func (f *SimulatedFactory) DestroyEffect(instance interfaces.IEffect) error {
	if instance == nil {
		return fmt.Errorf("%w: effect is nil", effect.ErrNullPointer)
	}
	sim, ok := instance.(*SimulatedEffect)
	if !ok {
		return fmt.Errorf("%w: effect %T was not created by this factory", effect.ErrIllegalArgument, instance)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if !f.live[sim] {
		return fmt.Errorf("%w: effect was not created by this factory or already destroyed", effect.ErrIllegalArgument)
	}
	if state := sim.GetState(); state != effect.StateInit {
		return fmt.Errorf("%w: destroy called in state %s", effect.ErrIllegalState, state)
	}
	delete(f.live, sim)

	logrus.WithFields(logrus.Fields{
		"function":     "SimulatedFactory.DestroyEffect",
		"factory":      f.name,
		"live_effects": len(f.live),
	}).Debug("Simulated effect destroyed")

	return nil
}

// GetTypedStats returns a snapshot of the factory for test verification.
func (f *SimulatedFactory) GetTypedStats() FactoryStats {
	f.mu.RLock()
	defer f.mu.RUnlock()

	return FactoryStats{
		Implementations: len(f.impls),
		LiveEffects:     len(f.live),
	}
}
