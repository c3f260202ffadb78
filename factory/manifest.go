package factory

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/opd-ai/effectvts/effect"
	"github.com/opd-ai/effectvts/testing"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Manifest describes simulated effect factories and their implementations.
//
//	factories:
//	  - name: default
//	    implementations:
//	      - name: BassBoostSw
//	        implementor: The Android Open Source Project
//	        uuid: fa8181f2-588b-11ed-9b6a-0242ac120002
//	        strength_supported: true
//	        fault: none
type Manifest struct {
	Factories []ManifestFactory `yaml:"factories"`
}

// ManifestFactory is one simulated factory instance.
type ManifestFactory struct {
	Name            string                   `yaml:"name"`
	Implementations []ManifestImplementation `yaml:"implementations"`
}

// ManifestImplementation is one simulated implementation. An empty UUID is
// derived from the implementor and name.
type ManifestImplementation struct {
	Name              string `yaml:"name"`
	Implementor       string `yaml:"implementor"`
	UUID              string `yaml:"uuid"`
	StrengthSupported bool   `yaml:"strength_supported"`
	Fault             string `yaml:"fault"`
}

// LoadManifest reads and parses a manifest file.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	return ParseManifest(data)
}

// ParseManifest parses and validates manifest YAML.
func ParseManifest(data []byte) (*Manifest, error) {
	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// Validate checks names, UUIDs and fault names.
func (m *Manifest) Validate() error {
	if len(m.Factories) == 0 {
		return fmt.Errorf("%w: manifest declares no factories", effect.ErrIllegalArgument)
	}

	seen := make(map[string]bool)
	for i, f := range m.Factories {
		if f.Name == "" {
			return fmt.Errorf("%w: factory %d has no name", effect.ErrIllegalArgument, i)
		}
		if seen[f.Name] {
			return fmt.Errorf("%w: %s", ErrDuplicateService, f.Name)
		}
		seen[f.Name] = true

		for j, impl := range f.Implementations {
			if impl.Name == "" {
				return fmt.Errorf("%w: factory %s implementation %d has no name", effect.ErrIllegalArgument, f.Name, j)
			}
			if impl.UUID != "" {
				if _, err := uuid.Parse(impl.UUID); err != nil {
					return fmt.Errorf("%w: implementation %s: %v", effect.ErrIllegalArgument, impl.Name, err)
				}
			}
			if _, err := testing.ParseFault(impl.Fault); err != nil {
				return fmt.Errorf("%w: implementation %s: %v", effect.ErrIllegalArgument, impl.Name, err)
			}
		}
	}
	return nil
}

// descriptor converts a manifest entry. The manifest must have been validated.
func (impl ManifestImplementation) descriptor() effect.Descriptor {
	id := uuid.NewSHA1(effect.BassBoostTypeUUID, []byte(impl.Implementor+"/"+impl.Name))
	if impl.UUID != "" {
		id = uuid.MustParse(impl.UUID)
	}
	return NewBassBoostDescriptor(impl.Name, impl.Implementor, id, impl.StrengthSupported)
}

// ApplyManifest creates and registers one simulated factory per manifest entry.
func (h *EffectFactoryHelper) ApplyManifest(m *Manifest) ([]*testing.SimulatedFactory, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	sims := make([]*testing.SimulatedFactory, 0, len(m.Factories))
	for _, f := range m.Factories {
		opts := []SimulationOption{WithSimulationName(f.Name)}
		for _, impl := range f.Implementations {
			fault, _ := testing.ParseFault(impl.Fault)
			opts = append(opts, WithImplementation(impl.descriptor(), fault))
		}
		if len(f.Implementations) == 0 {
			logrus.WithFields(logrus.Fields{
				"function": "ApplyManifest",
				"factory":  f.Name,
			}).Warn("Manifest factory has no implementations, using defaults")
		}

		sim, err := h.CreateSimulationForTesting(opts...)
		if err != nil {
			return nil, err
		}
		sims = append(sims, sim)
	}
	return sims, nil
}
