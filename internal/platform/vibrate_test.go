package platform

import (
	"bytes"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (buffer *lockedBuffer) Write(p []byte) (int, error) {
	buffer.mu.Lock()
	defer buffer.mu.Unlock()
	return buffer.buf.Write(p)
}

func (buffer *lockedBuffer) String() string {
	buffer.mu.Lock()
	defer buffer.mu.Unlock()
	return buffer.buf.String()
}

func TestBellVibratorPulsesOnEvenSteps(t *testing.T) {
	out := &lockedBuffer{}
	var mu sync.Mutex
	attention := 0
	vibrator := NewBellVibrator(out, func() {
		mu.Lock()
		attention++
		mu.Unlock()
	})
	vibrator.sleep = func(time.Duration) {}

	vibrator.play([]time.Duration{500 * time.Millisecond, 500 * time.Millisecond, 500 * time.Millisecond})

	assert.Equal(t, "\a\a", out.String())
	assert.Equal(t, 2, attention)
}

func TestBellVibratorRunsInBackground(t *testing.T) {
	out := &lockedBuffer{}
	vibrator := NewBellVibrator(out, nil)

	vibrator.Vibrate([]time.Duration{40 * time.Millisecond})

	assert.Eventually(t, func() bool { return out.String() == "\a" }, time.Second, 5*time.Millisecond)
}
