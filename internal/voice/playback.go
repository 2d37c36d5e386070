package voice

import (
	"bufio"
	"io"
	"sync"
)

// WriterPlayback plays into any writer: a file, a pipe to an audio player,
// stdout. Audio is buffered so an interruption can drop what has not been
// handed to the writer yet.
type WriterPlayback struct {
	mu  sync.Mutex
	dst io.Writer
	buf *bufio.Writer
}

// NewWriterPlayback buffers up to size bytes before writing to dst.
// size <= 0 uses one second of output audio.
func NewWriterPlayback(dst io.Writer, size int) *WriterPlayback {
	if size <= 0 {
		size = OutputSampleRate * 2
	}
	return &WriterPlayback{dst: dst, buf: bufio.NewWriterSize(dst, size)}
}

func (p *WriterPlayback) Write(pcm []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.buf.Write(pcm)
}

// Flush discards queued audio.
func (p *WriterPlayback) Flush() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.buf.Reset(p.dst)
	return nil
}

// Close writes out what is still queued and closes dst if it is a Closer.
func (p *WriterPlayback) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	err := p.buf.Flush()
	if c, ok := p.dst.(io.Closer); ok {
		if cerr := c.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
