/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/kai/internal/ui"
)

var chatCmd = &cobra.Command{
	Use:   "chat [message]",
	Short: "Talk to the career coach",
	Long: `Asks the AI career coach a question. With a message argument kai prints
one answer and exits; without one it starts a conversation that keeps
context until you type /exit or send EOF.`,
	Example: `  kai chat "Which skills should a copywriter learn next?"
  kai chat --lang nl`,
	RunE: runChat,
}

func runChat(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer e.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()
	interactive := ui.IsInteractive() && !isJSON()

	ask := func(msg string) error {
		var reply string
		err := ui.RunWithSpinner(ctx, interactive, "Thinking...", func() error {
			var cerr error
			reply, cerr = e.shell.Chat(ctx, msg)
			return cerr
		})
		if err != nil {
			return err
		}
		if reply == "" {
			return nil
		}
		if isJSON() {
			return printJSON(out, map[string]string{"message": msg, "reply": reply})
		}
		fmt.Fprintf(out, "%s %s\n\n", ui.StylePrefixCoach.Render("coach>"), ui.WrapText(reply, ui.TerminalWidth(80)-8))
		return nil
	}

	if len(args) > 0 {
		return ask(strings.Join(args, " "))
	}
	return chatLoop(cmd.InOrStdin(), out, ask)
}

// chatLoop reads one message per line. A failed exchange is reported and
// the conversation continues.
func chatLoop(in io.Reader, out io.Writer, ask func(string) error) error {
	sc := bufio.NewScanner(in)
	for {
		if !isJSON() {
			fmt.Fprint(out, ui.StylePrefixUser.Render("you> "))
		}
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		switch line {
		case "":
			continue
		case "/exit", "/quit":
			return nil
		}
		if err := ask(line); err != nil {
			fmt.Fprintln(out, ui.StylePrefixError.Render(userMessage(err)))
		}
	}
}

func init() {
	rootCmd.AddCommand(chatCmd)
}
