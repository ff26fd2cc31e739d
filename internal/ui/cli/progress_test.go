package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressReporter_Quiet(t *testing.T) {
	var out bytes.Buffer
	p := newProgressReporter(&out, true)
	p.OnStart(3)
	p.OnFileChecked("a.py")
	p.OnComplete()
	assert.Empty(t, out.String())
}

func TestProgressReporter_DrawsBar(t *testing.T) {
	var out bytes.Buffer
	p := newProgressReporter(&out, false)
	p.OnStart(2)
	p.OnFileChecked("a.py")
	p.OnFileChecked("b.py")
	p.OnComplete()

	assert.Contains(t, out.String(), "Checking files")
	assert.Nil(t, p.bar)
}

func TestProgressReporter_NoFiles(t *testing.T) {
	var out bytes.Buffer
	p := newProgressReporter(&out, false)
	p.OnStart(0)
	p.OnComplete()
	assert.Empty(t, out.String())
}
