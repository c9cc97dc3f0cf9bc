package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoalesce(t *testing.T) {
	assert.Equal(t, 3, Coalesce(0, 0, 3, 4))
	assert.Equal(t, "a", Coalesce("", "a"))
	assert.Equal(t, float32(0), Coalesce[float32]())
}

func TestNopLogger_Silent(t *testing.T) {
	l := NewNopLogger()
	l.SetDebug(true)
	assert.False(t, l.DebugEnabled())
	l.Infof("ignored %d", 1)
}

func TestDefaultLogger_Prefix(t *testing.T) {
	l := NewDefaultLogger("flycam", false)
	assert.Equal(t, "[flycam] WARN: surface lost", l.prefixf("WARN", "surface %s", "lost"))

	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())

	bare := NewDefaultLogger("", false)
	assert.Equal(t, "INFO: ok", bare.prefixf("INFO", "ok"))
}
