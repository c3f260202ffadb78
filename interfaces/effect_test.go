package interfaces

import (
	"errors"
	"testing"
)

// TestEffectServiceConfigValidate tests the Validate method of EffectServiceConfig.
func TestEffectServiceConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  EffectServiceConfig
		wantErr error
	}{
		{
			name: "valid simulation config",
			config: EffectServiceConfig{
				UseSimulation: true,
				Parallel:      1,
			},
			wantErr: nil,
		},
		{
			name: "valid real config",
			config: EffectServiceConfig{
				UseSimulation: false,
				ServiceName:   "default",
				Parallel:      MaxParallel,
			},
			wantErr: nil,
		},
		{
			name: "zero parallel",
			config: EffectServiceConfig{
				UseSimulation: true,
				Parallel:      0,
			},
			wantErr: ErrInvalidParallel,
		},
		{
			name: "parallel above maximum",
			config: EffectServiceConfig{
				UseSimulation: true,
				Parallel:      MaxParallel + 1,
			},
			wantErr: ErrInvalidParallel,
		},
		{
			name: "real service without name",
			config: EffectServiceConfig{
				UseSimulation: false,
				Parallel:      2,
			},
			wantErr: ErrEmptyServiceName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
