package main

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressDisplayClearsSpinnerBeforeOutput(t *testing.T) {
	var out bytes.Buffer
	p := newProgressDisplay(&out, true, time.Now(), 0)
	p.update(4, 2, 0)

	p.spin(0)
	spinLine := out.String()
	assert.Contains(t, spinLine, "discovered=4 extracted=2")

	p.Write([]byte("Error accessing file attributes: /r/x - no such file or directory\n"))
	assert.Equal(t,
		spinLine+"\r\033[KError accessing file attributes: /r/x - no such file or directory\n",
		out.String())

	// Nothing to clear until the spinner draws again.
	out.Reset()
	p.Write([]byte("next\n"))
	assert.Equal(t, "next\n", out.String())
}

func TestProgressDisplayNonTTYWritesPlainLines(t *testing.T) {
	var out bytes.Buffer
	p := newProgressDisplay(&out, false, time.Now(), 0)

	p.Write([]byte("Skipping unreadable directory: /r/locked\n"))
	p.stop()
	assert.Equal(t, "Skipping unreadable directory: /r/locked\n", out.String())
}
