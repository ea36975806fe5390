package cli

import (
	"testing"

	"github.com/policywise/policywise/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyPortFlag(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		envPort  string
		expected string
	}{
		{"no flag keeps env port", []string{}, "9090", "9090"},
		{"explicit flag overrides env", []string{"--port", "3000"}, "9090", "3000"},
		{"explicit default value overrides env", []string{"--port", "8080"}, "9090", "8080"},
		{"shorthand overrides env", []string{"-p", "4000"}, "9090", "4000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := ServeCmd()
			require.NoError(t, cmd.Flags().Parse(tt.args))

			cfg := &config.Config{Port: tt.envPort}
			applyPortFlag(cmd, cfg)

			assert.Equal(t, tt.expected, cfg.Port)
		})
	}
}
