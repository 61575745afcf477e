package cloudview

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger_LevelsGoToTheirStreams(t *testing.T) {
	var stdout, stderr bytes.Buffer
	l := newLogger("pointcloud", false, &stdout, &stderr)

	l.Infof("ring ready: %d slots", 64)
	l.Warnf("hud disabled")
	l.Errorf("device lost")

	assert.Contains(t, stdout.String(), "[pointcloud "+l.Session()+"] INFO: ring ready: 64 slots")
	assert.NotContains(t, stdout.String(), "WARN")
	assert.Contains(t, stderr.String(), "WARN: hud disabled")
	assert.Contains(t, stderr.String(), "ERROR: device lost")
}

func TestLogger_DebugGated(t *testing.T) {
	var stdout, stderr bytes.Buffer
	l := newLogger("", false, &stdout, &stderr)

	l.Debugf("hidden")
	assert.Empty(t, stdout.String())

	l.SetDebug(true)
	assert.True(t, l.DebugEnabled())
	l.Debugf("shown")
	assert.Contains(t, stdout.String(), "["+l.Session()+"] DEBUG: shown")
}

func TestLogger_SessionPerInstance(t *testing.T) {
	a := NewDefaultLogger("a", false)
	b := NewDefaultLogger("b", false)
	assert.Len(t, a.Session(), 8)
	assert.NotEqual(t, a.Session(), b.Session())
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	l.SetDebug(true)
	assert.False(t, l.DebugEnabled())
	l.Errorf("dropped")
}
