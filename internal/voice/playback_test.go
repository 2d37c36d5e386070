package voice

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type closeTracker struct {
	bytes.Buffer
	closed bool
}

func (c *closeTracker) Close() error {
	c.closed = true
	return nil
}

func TestWriterPlayback_FlushDropsQueuedAudio(t *testing.T) {
	dst := &closeTracker{}
	p := NewWriterPlayback(dst, 64)

	_, err := p.Write([]byte("stale"))
	require.NoError(t, err)
	require.NoError(t, p.Flush())

	_, err = p.Write([]byte("fresh"))
	require.NoError(t, err)
	assert.Zero(t, dst.Len(), "nothing reaches the writer before the buffer fills")

	require.NoError(t, p.Close())
	assert.Equal(t, "fresh", dst.String())
	assert.True(t, dst.closed)
}

func TestWriterPlayback_LargeWritesPassThrough(t *testing.T) {
	var dst bytes.Buffer
	p := NewWriterPlayback(&dst, 4)

	_, err := p.Write([]byte("0123456789"))
	require.NoError(t, err)
	assert.Equal(t, "0123456789", dst.String())
	require.NoError(t, p.Close())
}

func TestWriterPlayback_SatisfiesPlayback(t *testing.T) {
	var _ Playback = NewWriterPlayback(&bytes.Buffer{}, 0)
}
