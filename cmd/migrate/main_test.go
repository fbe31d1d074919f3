package main

import (
	"testing"

	"wp-lite/pkg/config"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	postgres := &config.Config{DBDriver: "postgres"}

	tests := []struct {
		name    string
		cfg     *config.Config
		command string
		newName string
		wantErr string
	}{
		{"up", postgres, "up", "", ""},
		{"version", postgres, "version", "", ""},
		{"create with name", postgres, "create", "add_tags", ""},
		{"create without name", postgres, "create", "", "name is required for create command"},
		{"unknown command", postgres, "reset", "", "unknown command: reset"},
		{"sqlite driver", &config.Config{DBDriver: "sqlite"}, "up", "", errSQLiteDriver.Error()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate(tt.cfg, tt.command, tt.newName)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.EqualError(t, err, tt.wantErr)
		})
	}
}
