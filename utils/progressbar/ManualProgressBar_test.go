package progressbar

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewManualProgressBar(&buf, "policy", 10, 4)

	assert.Equal(t, 0.0, p.Progress())
	p.Increment()
	p.Increment()
	assert.Equal(t, 0.5, p.Progress())
	assert.Contains(t, p.String(), "policy |█████     |")
	assert.Contains(t, p.String(), "50.00%")

	// Progress saturates at the maximum
	for i := 0; i < 10; i++ {
		p.Increment()
	}
	assert.Equal(t, 1.0, p.Progress())

	p.Finish()
	assert.True(t, strings.HasSuffix(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "100.00%")
}
