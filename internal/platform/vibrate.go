package platform

import (
	"io"
	"sync"
	"time"
)

// BellVibrator stands in for haptics on desktops: every pulse of the
// pattern rings the terminal bell and asks for the user's attention.
type BellVibrator struct {
	mu        sync.Mutex
	out       io.Writer
	attention func()
	sleep     func(time.Duration)
}

// NewBellVibrator creates a vibrator writing to out. Either argument may be nil.
func NewBellVibrator(out io.Writer, attention func()) *BellVibrator {
	return &BellVibrator{out: out, attention: attention, sleep: time.Sleep}
}

// Vibrate plays the pattern in the background. Even entries are pulses,
// odd entries are pauses.
func (vibrator *BellVibrator) Vibrate(pattern []time.Duration) {
	steps := append([]time.Duration(nil), pattern...)
	go vibrator.play(steps)
}

func (vibrator *BellVibrator) play(pattern []time.Duration) {
	for index, duration := range pattern {
		if index%2 == 0 {
			vibrator.pulse()
		}
		if index < len(pattern)-1 {
			vibrator.sleep(duration)
		}
	}
}

func (vibrator *BellVibrator) pulse() {
	vibrator.mu.Lock()
	defer vibrator.mu.Unlock()
	if vibrator.out != nil {
		_, _ = io.WriteString(vibrator.out, "\a")
	}
	if vibrator.attention != nil {
		vibrator.attention()
	}
}
