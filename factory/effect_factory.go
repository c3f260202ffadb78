package factory

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"sync"

	"github.com/google/uuid"
	"github.com/opd-ai/effectvts/effect"
	"github.com/opd-ai/effectvts/interfaces"
	"github.com/opd-ai/effectvts/testing"
	"github.com/sirupsen/logrus"
)

// DefaultSimulationName is the instance name of the factory registered by
// CreateSimulationForTesting.
const DefaultSimulationName = "simulation"

// Implementation UUIDs of the default simulated implementations.
var (
	BassBoostSwUUID         = uuid.MustParse("fa8181f2-588b-11ed-9b6a-0242ac120002")
	BassBoostNoStrengthUUID = uuid.MustParse("fa8182a6-588b-11ed-9b6a-0242ac120002")
)

// Registry errors.
var (
	// ErrServiceNotFound indicates no factory is registered under the requested name.
	ErrServiceNotFound = errors.New("effect factory service not found")

	// ErrDuplicateService indicates a factory name is already registered.
	ErrDuplicateService = errors.New("effect factory service already registered")
)

// FactoryDescriptor pairs a descriptor with the factory that serves it.
type FactoryDescriptor struct {
	Name       string
	Factory    interfaces.IFactory
	Descriptor effect.Descriptor
}

type registeredFactory struct {
	factory   interfaces.IFactory
	simulated bool
}

// EffectFactoryHelper locates effect factory services and enumerates their
// implementations. It is safe for concurrent use.
type EffectFactoryHelper struct {
	mu            sync.RWMutex
	defaultConfig *interfaces.EffectServiceConfig
	factories     map[string]registeredFactory
}

// SimulationOption customizes the factory created by CreateSimulationForTesting.
type SimulationOption func(*simulationSetup)

type simulationSetup struct {
	name            string
	implementations []simulatedImplementation
}

type simulatedImplementation struct {
	descriptor effect.Descriptor
	fault      testing.Fault
}

// NewEffectFactoryHelper creates a helper with default configuration and
// environment overrides applied.
func NewEffectFactoryHelper() *EffectFactoryHelper {
	defaultConfig := createDefaultConfig()
	applyEnvironmentOverrides(defaultConfig)
	logConfigurationInfo(defaultConfig)

	return &EffectFactoryHelper{
		defaultConfig: defaultConfig,
		factories:     make(map[string]registeredFactory),
	}
}

// createDefaultConfig initializes the default effect service configuration.
//
// Default Value Rationale:
//   - UseSimulation: true - no device service exists unless the embedding program registers one
//   - ServiceName: "default" - the conventional instance name of an effect factory service
//   - ProbeMaxPlusOne: true - the sweep probes both Max+1 and Max+2 above the range
//   - Parallel: 1 - strictly sequential, matching a device with a single binder thread
func createDefaultConfig() *interfaces.EffectServiceConfig {
	return &interfaces.EffectServiceConfig{
		UseSimulation:   true,
		ServiceName:     "default",
		ProbeMaxPlusOne: true,
		Parallel:        1,
	}
}

// applyEnvironmentOverrides updates configuration based on EFFECT_VTS_* environment variables.
func applyEnvironmentOverrides(config *interfaces.EffectServiceConfig) {
	parseBoolSetting("EFFECT_VTS_USE_SIMULATION", &config.UseSimulation)
	parseServiceNameSetting(config)
	parseBoolSetting("EFFECT_VTS_PROBE_MAX_PLUS_ONE", &config.ProbeMaxPlusOne)
	parseParallelSetting(config)
}

// parseBoolSetting updates target from a boolean environment variable.
// It logs a warning and keeps the current value if parsing fails.
func parseBoolSetting(envVar string, target *bool) {
	valueStr := os.Getenv(envVar)
	if valueStr == "" {
		return
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function":    "parseBoolSetting",
			"env_var":     envVar,
			"value":       valueStr,
			"error":       err.Error(),
			"using_value": *target,
		}).Warn("Failed to parse boolean environment variable, using default")
		return
	}
	*target = value
}

// parseServiceNameSetting updates ServiceName from EFFECT_VTS_SERVICE_NAME.
func parseServiceNameSetting(config *interfaces.EffectServiceConfig) {
	if name := os.Getenv("EFFECT_VTS_SERVICE_NAME"); name != "" {
		config.ServiceName = name
	}
}

// parseParallelSetting updates Parallel from EFFECT_VTS_PARALLEL. Values outside
// [MinParallel, MaxParallel] are logged and ignored.
func parseParallelSetting(config *interfaces.EffectServiceConfig) {
	parallelStr := os.Getenv("EFFECT_VTS_PARALLEL")
	if parallelStr == "" {
		return
	}
	parallel, err := strconv.Atoi(parallelStr)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"function":    "parseParallelSetting",
			"env_var":     "EFFECT_VTS_PARALLEL",
			"value":       parallelStr,
			"error":       err.Error(),
			"using_value": config.Parallel,
		}).Warn("Failed to parse EFFECT_VTS_PARALLEL environment variable, using default")
		return
	}
	if parallel < interfaces.MinParallel || parallel > interfaces.MaxParallel {
		logrus.WithFields(logrus.Fields{
			"function":    "parseParallelSetting",
			"env_var":     "EFFECT_VTS_PARALLEL",
			"value":       parallel,
			"min":         interfaces.MinParallel,
			"max":         interfaces.MaxParallel,
			"using_value": config.Parallel,
		}).Warn("EFFECT_VTS_PARALLEL value out of bounds, using default")
		return
	}
	config.Parallel = parallel
}

// logConfigurationInfo logs the final configuration settings for debugging purposes.
func logConfigurationInfo(config *interfaces.EffectServiceConfig) {
	logrus.WithFields(logrus.Fields{
		"function":           "NewEffectFactoryHelper",
		"use_simulation":     config.UseSimulation,
		"service_name":       config.ServiceName,
		"probe_max_plus_one": config.ProbeMaxPlusOne,
		"parallel":           config.Parallel,
	}).Info("Created effect factory helper with configuration")
}

// RegisterFactory registers a real effect factory service under name.
func (h *EffectFactoryHelper) RegisterFactory(name string, f interfaces.IFactory) error {
	return h.register(name, f, false)
}

func (h *EffectFactoryHelper) register(name string, f interfaces.IFactory, simulated bool) error {
	if f == nil {
		return fmt.Errorf("%w: factory %q is nil", effect.ErrNullPointer, name)
	}
	if name == "" {
		return fmt.Errorf("%w: factory name cannot be empty", effect.ErrIllegalArgument)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if _, exists := h.factories[name]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateService, name)
	}
	h.factories[name] = registeredFactory{factory: f, simulated: simulated}

	logrus.WithFields(logrus.Fields{
		"function":  "EffectFactoryHelper.register",
		"name":      name,
		"simulated": simulated,
		"total":     len(h.factories),
	}).Info("Registered effect factory")

	return nil
}

// WithSimulationName sets the instance name of the simulated factory.
func WithSimulationName(name string) SimulationOption {
	return func(s *simulationSetup) {
		s.name = name
	}
}

// WithImplementation adds an implementation to the simulated factory. The first
// use replaces the default implementations.
func WithImplementation(desc effect.Descriptor, fault testing.Fault) SimulationOption {
	return func(s *simulationSetup) {
		s.implementations = append(s.implementations, simulatedImplementation{descriptor: desc, fault: fault})
	}
}

// DefaultDescriptors returns the descriptors of the default simulated
// implementations: one supporting strength and one that does not.
func DefaultDescriptors() []effect.Descriptor {
	return []effect.Descriptor{
		NewBassBoostDescriptor("BassBoostSw", "The Android Open Source Project", BassBoostSwUUID, true),
		NewBassBoostDescriptor("BassBoostNoStrength", "The Android Open Source Project", BassBoostNoStrengthUUID, false),
	}
}

// NewBassBoostDescriptor builds a bass boost descriptor.
func NewBassBoostDescriptor(name, implementor string, implUUID uuid.UUID, strengthSupported bool) effect.Descriptor {
	return effect.Descriptor{
		Common: effect.DescriptorCommon{
			ID:          effect.ID{Type: effect.BassBoostTypeUUID, UUID: implUUID},
			Name:        name,
			Implementor: implementor,
		},
		Capability: effect.Capability{
			BassBoost: effect.BassBoostCapability{StrengthSupported: strengthSupported},
		},
	}
}

// CreateSimulationForTesting creates a simulated factory, registers it and
// returns it. Without options it is named DefaultSimulationName and serves
// DefaultDescriptors.
func (h *EffectFactoryHelper) CreateSimulationForTesting(opts ...SimulationOption) (*testing.SimulatedFactory, error) {
	setup := &simulationSetup{name: DefaultSimulationName}
	for _, opt := range opts {
		opt(setup)
	}
	if len(setup.implementations) == 0 {
		for _, desc := range DefaultDescriptors() {
			setup.implementations = append(setup.implementations, simulatedImplementation{descriptor: desc})
		}
	}

	logrus.WithFields(logrus.Fields{
		"function":        "CreateSimulationForTesting",
		"name":            setup.name,
		"implementations": len(setup.implementations),
	}).Info("Creating simulation implementation for testing")

	sim := testing.NewSimulatedFactory(setup.name)
	for _, impl := range setup.implementations {
		sim.AddImplementation(impl.descriptor, impl.fault)
	}
	if err := h.register(setup.name, sim, true); err != nil {
		return nil, err
	}
	return sim, nil
}

// GetAllEffectDescriptors returns every (factory, descriptor) pair whose
// descriptor has the given effect type. In simulation mode all simulated
// factories are enumerated; otherwise only the configured service name.
// Pairs are ordered by factory name, then by the factory's own order.
func (h *EffectFactoryHelper) GetAllEffectDescriptors(typeUUID uuid.UUID) ([]FactoryDescriptor, error) {
	h.mu.RLock()
	config := *h.defaultConfig
	selected := make(map[string]interfaces.IFactory)
	for name, entry := range h.factories {
		if config.UseSimulation && entry.simulated {
			selected[name] = entry.factory
		}
		if !config.UseSimulation && !entry.simulated && name == config.ServiceName {
			selected[name] = entry.factory
		}
	}
	h.mu.RUnlock()

	if !config.UseSimulation && len(selected) == 0 {
		logrus.WithFields(logrus.Fields{
			"function":     "GetAllEffectDescriptors",
			"service_name": config.ServiceName,
		}).Error("Effect factory service not registered")
		return nil, fmt.Errorf("%w: %s", ErrServiceNotFound, config.ServiceName)
	}

	names := make([]string, 0, len(selected))
	for name := range selected {
		names = append(names, name)
	}
	sort.Strings(names)

	pairs := make([]FactoryDescriptor, 0)
	for _, name := range names {
		f := selected[name]
		descs, err := f.QueryEffects(&typeUUID, nil)
		if err != nil {
			return nil, fmt.Errorf("query effects on %s: %w", name, err)
		}
		for _, desc := range descs {
			pairs = append(pairs, FactoryDescriptor{Name: name, Factory: f, Descriptor: desc})
		}
	}

	logrus.WithFields(logrus.Fields{
		"function":       "GetAllEffectDescriptors",
		"type_uuid":      typeUUID.String(),
		"use_simulation": config.UseSimulation,
		"factories":      len(names),
		"descriptors":    len(pairs),
	}).Info("Enumerated effect descriptors")

	return pairs, nil
}

// SwitchToSimulation switches the configuration to use simulated factories
func (h *EffectFactoryHelper) SwitchToSimulation() {
	h.mu.Lock()
	defer h.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function": "SwitchToSimulation",
		"previous": h.defaultConfig.UseSimulation,
	}).Info("Switching factory helper to simulation mode")

	h.defaultConfig.UseSimulation = true
}

// SwitchToReal switches the configuration to use the registered real service
func (h *EffectFactoryHelper) SwitchToReal() {
	h.mu.Lock()
	defer h.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function": "SwitchToReal",
		"previous": h.defaultConfig.UseSimulation,
	}).Info("Switching factory helper to real mode")

	h.defaultConfig.UseSimulation = false
}

// GetCurrentConfig returns a copy of the current default configuration
func (h *EffectFactoryHelper) GetCurrentConfig() *interfaces.EffectServiceConfig {
	h.mu.RLock()
	defer h.mu.RUnlock()

	config := *h.defaultConfig
	return &config
}

// IsUsingSimulation returns true if the helper is configured for simulation
func (h *EffectFactoryHelper) IsUsingSimulation() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return h.defaultConfig.UseSimulation
}

// UpdateConfig validates and replaces the helper's default configuration
func (h *EffectFactoryHelper) UpdateConfig(config *interfaces.EffectServiceConfig) error {
	if config == nil {
		return fmt.Errorf("config cannot be nil")
	}
	if err := config.Validate(); err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	logrus.WithFields(logrus.Fields{
		"function":       "UpdateConfig",
		"old_simulation": h.defaultConfig.UseSimulation,
		"new_simulation": config.UseSimulation,
		"old_parallel":   h.defaultConfig.Parallel,
		"new_parallel":   config.Parallel,
	}).Info("Updating factory helper configuration")

	updated := *config
	h.defaultConfig = &updated
	return nil
}
