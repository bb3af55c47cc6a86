package resources

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAlarmSoundIsWave(t *testing.T) {
	data, err := Sound(AlarmSound)
	require.NoError(t, err)
	require.Greater(t, len(data), 44)
	assert.Equal(t, "RIFF", string(data[:4]))
	assert.Equal(t, "WAVE", string(data[8:12]))
}

func TestMissingSound(t *testing.T) {
	_, err := Sound("missing.wav")
	assert.Error(t, err)
}

func TestIconIsCached(t *testing.T) {
	first, err := Icon("focuskit.png")
	require.NoError(t, err)
	second := MustIcon("focuskit.png")
	assert.Same(t, first, second)
	assert.Equal(t, "focuskit.png", first.Name())
}
