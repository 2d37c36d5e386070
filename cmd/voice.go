/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/kai/internal/app"
	"github.com/josephgoksu/kai/internal/ui"
	"github.com/josephgoksu/kai/internal/voice"
)

var (
	voiceInput  string
	voiceOutput string
)

var voiceCmd = &cobra.Command{
	Use:   "voice",
	Short: "Have a live spoken conversation with the coach",
	Long: `Streams microphone audio to the live coach and plays its answers.
Input is raw 16 kHz mono PCM16, output raw 24 kHz mono PCM16. Both default
to stdin and stdout so kai can sit between audio tools:

  arecord -f S16_LE -r 16000 -c 1 -t raw | kai voice | aplay -f S16_LE -r 24000 -c 1

Press Ctrl+C to hang up.`,
	RunE: runVoice,
}

func runVoice(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer e.Close()
	if e.genai == nil {
		return app.ErrNoGateway
	}

	capture, err := openCapture(voiceInput)
	if err != nil {
		return err
	}
	sink, err := openSink(voiceOutput)
	if err != nil {
		capture.Close()
		return err
	}

	dialer := voice.NewGenaiDialer(e.genai, e.settings.Gemini.Models.Live, e.settings.Gemini.Voices.Live)
	session := voice.NewSession(dialer, capture, voice.NewWriterPlayback(sink, 0))
	defer session.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	status := cmd.ErrOrStderr()
	ended := make(chan voice.Status, 1)
	onStatus := func(st voice.Status) {
		switch st {
		case voice.StatusConnected:
			fmt.Fprintln(status, ui.StylePrefixDone.Render("Connected. Start talking, Ctrl+C to hang up."))
		case voice.StatusError, voice.StatusDisconnected:
			select {
			case ended <- st:
			default:
			}
		}
	}
	if err := session.Open(ctx, e.locale, onStatus); err != nil {
		return err
	}

	select {
	case <-ctx.Done():
		fmt.Fprintln(status, ui.StyleSubtle.Render("Disconnected."))
		return nil
	case st := <-ended:
		if st == voice.StatusError {
			return fmt.Errorf("voice session ended with an error")
		}
		fmt.Fprintln(status, ui.StyleSubtle.Render("The coach ended the call."))
		return nil
	}
}

func openCapture(path string) (io.ReadCloser, error) {
	if path == "" || path == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open audio input: %w", err)
	}
	return f, nil
}

func openSink(path string) (io.Writer, error) {
	if path == "" || path == "-" {
		// Hide Close so playback does not close stdout.
		return struct{ io.Writer }{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create audio output: %w", err)
	}
	return f, nil
}

func init() {
	rootCmd.AddCommand(voiceCmd)
	voiceCmd.Flags().StringVarP(&voiceInput, "input", "i", "-", "raw 16 kHz PCM16 input (- for stdin)")
	voiceCmd.Flags().StringVarP(&voiceOutput, "output", "o", "-", "raw 24 kHz PCM16 output (- for stdout)")
}
