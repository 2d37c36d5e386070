/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var speakOutput string

var speakCmd = &cobra.Command{
	Use:   "speak [text]",
	Short: "Turn text into speech with the coach voice",
	Long: `Synthesizes text (from the arguments or stdin) and writes the raw
24 kHz mono PCM16 audio to --output. Play it with, for example:

  ffplay -f s16le -ar 24000 -ac 1 speech.pcm`,
	RunE: func(cmd *cobra.Command, args []string) error {
		text := strings.Join(args, " ")
		if strings.TrimSpace(text) == "" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return fmt.Errorf("read text: %w", err)
			}
			text = string(data)
		}
		if strings.TrimSpace(text) == "" {
			return fmt.Errorf("nothing to speak: pass text as arguments or on stdin")
		}

		e, err := newEnv(cmd.Context(), true)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := speakTo(cmd.Context(), e, text, speakOutput, cmd.OutOrStdout()); err != nil {
			return err
		}
		if isJSON() {
			return printJSON(cmd.OutOrStdout(), map[string]string{"output": speakOutput})
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(speakCmd)
	speakCmd.Flags().StringVarP(&speakOutput, "output", "o", "speech.pcm", "file to write the audio to")
}
