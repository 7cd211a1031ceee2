package worker

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	valid := DefaultConfig()

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid default config", func(c *Config) {}, false},
		{"concurrency too low", func(c *Config) { c.Concurrency = 0 }, true},
		{"concurrency too high", func(c *Config) { c.Concurrency = 101 }, true},
		{"poll interval too short", func(c *Config) { c.PollInterval = 500 * time.Millisecond }, true},
		{"job timeout too short", func(c *Config) { c.JobTimeout = 100 * time.Millisecond }, true},
		{"stale threshold too short", func(c *Config) { c.StaleJobThreshold = 10 * time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestIsPermanent(t *testing.T) {
	assert.True(t, IsPermanent(NewPermanentError(context.Canceled)))
	assert.True(t, IsPermanent(errors.Join(errors.New("outer"), NewPermanentError(errors.New("inner")))))
	assert.False(t, IsPermanent(context.Canceled))
	assert.False(t, IsPermanent(nil))
}

func TestPermanentErrorUnwraps(t *testing.T) {
	inner := errors.New("boom")
	err := NewPermanentError(inner)
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "boom", err.Error())
}
