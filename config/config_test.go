package config

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"simonwaldherr.de/go/themedemo/worker"
)

func TestSettingsLookup(t *testing.T) {
	s := Defaults()

	v, ok := s.Lookup("timeout")
	assert.True(t, ok)
	assert.Equal(t, 30, v)

	v, ok = s.Lookup("missing")
	assert.False(t, ok)
	assert.Zero(t, v)

	_, err := s.Require("missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), `"missing"`)

	assert.Equal(t, []string{"debug", "retries", "timeout"}, s.Keys())
	assert.Equal(t, 3, s.Len())
}

func TestSettingsZeroValueIsPresent(t *testing.T) {
	s := NewSettings()
	s.Set("debug", 0)
	v, ok := s.Lookup("debug")
	assert.True(t, ok, "explicit zero must be distinguishable from absent")
	assert.Zero(t, v)
}

func TestLoadEmptyPath(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, worker.DefaultSchedule(), cfg.Schedule)
	assert.Equal(t, 3, cfg.Settings.Len())
}

func TestLoadFile(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "demo.yaml"))
	require.NoError(t, err)

	timeout, _ := cfg.Settings.Lookup("timeout")
	assert.Equal(t, 45, timeout)
	port, ok := cfg.Settings.Lookup("port")
	assert.True(t, ok)
	assert.Equal(t, 8080, port)
	retries, _ := cfg.Settings.Lookup("retries")
	assert.Equal(t, 3, retries, "defaults survive the merge")

	assert.Equal(t, 3, cfg.Schedule.WorkerSteps)
	assert.Equal(t, 5*time.Millisecond, cfg.Schedule.WorkerInterval)
	assert.Equal(t, worker.DefaultSchedule().MainSteps, cfg.Schedule.MainSteps)
	assert.Equal(t, time.Millisecond, cfg.Schedule.MainInterval)
}

func TestLoadErrors(t *testing.T) {
	cases := []struct {
		file string
		kind ErrorKind
	}{
		{"does-not-exist.yaml", KindNotFound},
		{"invalid.yaml", KindInvalid},
		{"negative.yaml", KindInvalid},
	}
	for _, c := range cases {
		t.Run(c.file, func(t *testing.T) {
			path := filepath.Join("testdata", c.file)
			_, err := Load(path)
			require.Error(t, err)
			assert.True(t, IsKind(err, c.kind), "got %v", err)
			assert.Contains(t, err.Error(), path)
		})
	}
}

func TestErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	err := &Error{Op: "config.load", Kind: KindInvalid, Err: inner}
	assert.ErrorIs(t, err, inner)
	assert.Equal(t, "config.load: invalid_config: inner", err.Error())
	assert.False(t, IsKind(inner, KindInvalid))

	var nilErr *Error
	assert.Equal(t, "<nil>", nilErr.Error())
}
