// Package voice runs a realtime spoken conversation with the career coach.
// Audio is 16 kHz PCM16 in and 24 kHz PCM16 out.
package voice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/josephgoksu/kai/internal/locale"
)

// Audio formats of the live session.
const (
	InputSampleRate  = 16000
	OutputSampleRate = 24000
	InputMIMEType    = "audio/pcm;rate=16000"

	// captureChunk is 4096 samples of PCM16.
	captureChunk = 8192
)

// Status is reported to the caller as the session changes state.
type Status string

const (
	StatusConnected    Status = "connected"
	StatusError        Status = "error"
	StatusDisconnected Status = "disconnected"
)

// ErrAlreadyOpen is returned by Open on a session that is already running.
var ErrAlreadyOpen = errors.New("voice session already open")

// Message is one server event: audio to play, or an interruption.
type Message struct {
	Audio       [][]byte
	Interrupted bool
}

// Conn is an open realtime connection.
type Conn interface {
	SendAudio(pcm []byte) error
	Receive() (Message, error)
	Close() error
}

// Dialer opens connections. The system instruction sets the coach persona.
type Dialer interface {
	Dial(ctx context.Context, systemInstruction string) (Conn, error)
}

// Playback plays 24 kHz PCM16. Flush drops anything queued but not yet
// played.
type Playback interface {
	io.WriteCloser
	Flush() error
}

// SystemInstruction is the persona of the live coach.
func SystemInstruction(loc locale.Locale) string {
	return fmt.Sprintf("You are an encouraging career coach helping a user navigate AI transformation in their job. "+
		"Be concise, friendly, and helpful. Speak in %s.", loc.LanguageName())
}

// Session owns one live conversation plus the capture and playback
// devices. Close releases all of them, whether or not Open succeeded.
type Session struct {
	dialer   Dialer
	capture  io.ReadCloser
	playback Playback

	mu       sync.Mutex
	conn     Conn
	cancel   context.CancelFunc
	onStatus func(Status)
	recvDone chan struct{}
	closed   bool
	released bool
	// ended is set once the server closed the stream and
	// StatusDisconnected has been reported.
	ended bool
}

// NewSession wires a dialer to the audio devices.
func NewSession(dialer Dialer, capture io.ReadCloser, playback Playback) *Session {
	return &Session{dialer: dialer, capture: capture, playback: playback}
}

// Open connects and starts streaming. Failures are reported through
// onStatus as well as returned.
func (s *Session) Open(ctx context.Context, loc locale.Locale, onStatus func(Status)) error {
	if onStatus == nil {
		onStatus = func(Status) {}
	}

	s.mu.Lock()
	if s.conn != nil || s.closed {
		s.mu.Unlock()
		return ErrAlreadyOpen
	}
	s.mu.Unlock()

	conn, err := s.dialer.Dial(ctx, SystemInstruction(loc))
	if err != nil {
		onStatus(StatusError)
		return fmt.Errorf("open voice session: %w", err)
	}

	runCtx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	if s.closed {
		// Closed while dialing.
		s.mu.Unlock()
		cancel()
		_ = conn.Close()
		return ErrAlreadyOpen
	}
	s.conn = conn
	s.cancel = cancel
	s.onStatus = onStatus
	s.recvDone = make(chan struct{})
	s.mu.Unlock()

	onStatus(StatusConnected)
	go s.sendLoop(runCtx, conn)
	go s.receiveLoop(runCtx, conn)
	return nil
}

// Close ends the session and releases capture and playback. It always
// succeeds and may be called any number of times.
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	conn, cancel, done, onStatus, ended := s.conn, s.cancel, s.recvDone, s.onStatus, s.ended
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
	if conn != nil {
		if err := conn.Close(); err != nil {
			slog.Debug("voice connection close failed", "error", err)
		}
	}
	s.release()
	if done != nil {
		<-done
	}
	if err := s.playback.Close(); err != nil {
		slog.Debug("playback close failed", "error", err)
	}
	if conn != nil && onStatus != nil && !ended {
		onStatus(StatusDisconnected)
	}
}

func (s *Session) release() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.released {
		return
	}
	s.released = true
	if err := s.capture.Close(); err != nil {
		slog.Debug("capture close failed", "error", err)
	}
}

func (s *Session) isClosed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Session) fail(err error) {
	if s.isClosed() {
		return
	}
	slog.Warn("voice session error", "error", err)
	s.mu.Lock()
	onStatus := s.onStatus
	s.mu.Unlock()
	onStatus(StatusError)
}

// end reports StatusDisconnected when the server closes the stream.
func (s *Session) end() {
	s.mu.Lock()
	if s.closed || s.ended {
		s.mu.Unlock()
		return
	}
	s.ended = true
	onStatus := s.onStatus
	s.mu.Unlock()
	onStatus(StatusDisconnected)
}

func (s *Session) sendLoop(ctx context.Context, conn Conn) {
	buf := make([]byte, captureChunk)
	for {
		n, err := s.capture.Read(buf)
		if ctx.Err() != nil {
			return
		}
		if n > 0 {
			chunk := append([]byte(nil), buf[:n]...)
			if sendErr := conn.SendAudio(chunk); sendErr != nil {
				s.fail(sendErr)
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.fail(err)
			}
			return
		}
	}
}

func (s *Session) receiveLoop(ctx context.Context, conn Conn) {
	defer close(s.recvDone)
	for {
		msg, err := conn.Receive()
		if ctx.Err() != nil {
			return
		}
		if err != nil {
			if errors.Is(err, io.EOF) {
				s.end()
			} else {
				s.fail(err)
			}
			return
		}
		if msg.Interrupted {
			if err := s.playback.Flush(); err != nil {
				slog.Debug("playback flush failed", "error", err)
			}
		}
		for _, pcm := range msg.Audio {
			if _, err := s.playback.Write(pcm); err != nil {
				s.fail(err)
				return
			}
		}
	}
}
