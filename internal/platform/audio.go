package platform

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"time"

	"focuskit/internal/core/alert"

	"go.uber.org/zap"
)

// SoundLoader returns the encoded bytes of a sound by source id.
type SoundLoader func(sourceID string) ([]byte, error)

// AudioSource plays sounds through the system's command-line player.
type AudioSource struct {
	player   string
	loadFile SoundLoader
	logger   *zap.Logger
	retry    time.Duration
}

// NewAudioSource resolves a platform player. Acquisition fails with
// alert.ErrAudioUnsupported when none is installed.
func NewAudioSource(load SoundLoader, logger *zap.Logger) *AudioSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AudioSource{
		player:   lookupPlayer(),
		loadFile: load,
		logger:   logger,
		retry:    time.Second,
	}
}

// AcquireLooping writes the sound to a temporary file and returns a
// resource that replays it until stopped.
func (source *AudioSource) AcquireLooping(ctx context.Context, sourceID string) (alert.AudioResource, error) {
	if source.player == "" {
		return nil, alert.ErrAudioUnsupported
	}
	data, err := source.loadFile(sourceID)
	if err != nil {
		return nil, fmt.Errorf("acquire %s: %w", sourceID, err)
	}

	file, err := os.CreateTemp("", "focuskit-*-"+sourceID)
	if err != nil {
		return nil, fmt.Errorf("acquire %s: create temp file: %w", sourceID, err)
	}
	path := file.Name()
	_, writeErr := file.Write(data)
	closeErr := file.Close()
	if writeErr != nil || closeErr != nil || ctx.Err() != nil {
		_ = os.Remove(path)
		if writeErr != nil {
			return nil, fmt.Errorf("acquire %s: write temp file: %w", sourceID, writeErr)
		}
		if closeErr != nil {
			return nil, fmt.Errorf("acquire %s: close temp file: %w", sourceID, closeErr)
		}
		return nil, ctx.Err()
	}

	return &loopingSound{
		path:   path,
		player: source.player,
		logger: source.logger.With(zap.String("source", sourceID)),
		retry:  source.retry,
	}, nil
}

type loopingSound struct {
	mu     sync.Mutex
	path   string
	player string
	logger *zap.Logger
	retry  time.Duration
	cancel context.CancelFunc
	done   chan struct{}
}

func (sound *loopingSound) Play() error {
	sound.mu.Lock()
	defer sound.mu.Unlock()
	if sound.cancel != nil {
		return nil
	}
	ctx, cancel := context.WithCancel(context.Background())
	sound.cancel = cancel
	sound.done = make(chan struct{})
	go sound.loop(ctx, sound.done)
	return nil
}

func (sound *loopingSound) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	for {
		cmd := exec.CommandContext(ctx, sound.player, playerArgs(sound.path)...)
		err := cmd.Run()
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			sound.logger.Warn("player exited", zap.String("player", sound.player), zap.Error(err))
			if !sleepWithContext(ctx, sound.retry) {
				return
			}
		}
	}
}

func (sound *loopingSound) Stop() error {
	sound.mu.Lock()
	cancel := sound.cancel
	done := sound.done
	sound.cancel = nil
	sound.done = nil
	sound.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	<-done
	return nil
}

func (sound *loopingSound) Release() error {
	if err := sound.Stop(); err != nil {
		return err
	}
	if err := os.Remove(sound.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("release sound: %w", err)
	}
	return nil
}

func sleepWithContext(ctx context.Context, duration time.Duration) bool {
	timer := time.NewTimer(duration)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
