package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty backend returns ErrBackendEmpty",
			config:  Config{Backend: "", DataDir: "/tmp/daybook"},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend returns ErrBackendUnknown",
			config:  Config{Backend: "postgres", DataDir: "/tmp/daybook"},
			wantErr: ErrBackendUnknown,
		},
		{
			name:   "valid sqlite config",
			config: Config{Backend: BackendSQLite, DataDir: "/tmp/daybook"},
		},
		{
			name:   "empty DataDir is valid at config level",
			config: Config{Backend: BackendSQLite},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestConfigUnknownBackendNamesIt(t *testing.T) {
	err := Config{Backend: "postgres"}.Validate()
	assert.ErrorIs(t, err, ErrBackendUnknown)
	assert.Contains(t, err.Error(), `"postgres"`)
	assert.Contains(t, err.Error(), BackendSQLite)
}

func TestConfigWithDefaults(t *testing.T) {
	assert.Equal(t, DefaultDataDir, Config{Backend: BackendSQLite}.WithDefaults().DataDir)
	assert.Equal(t, "/data", Config{DataDir: "/data"}.WithDefaults().DataDir)
	assert.Equal(t, []string{BackendSQLite}, Backends())
}
