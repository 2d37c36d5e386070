/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/kai/internal/assessment"
	"github.com/josephgoksu/kai/internal/gateway"
	"github.com/josephgoksu/kai/internal/profile"
	"github.com/josephgoksu/kai/internal/ui"
	"github.com/josephgoksu/kai/internal/utils"
	"github.com/josephgoksu/kai/internal/workflow"
)

var assessCmd = &cobra.Command{
	Use:   "assess [job title]",
	Short: "Assess how AI will change a job role",
	Long: `Runs a full assessment: the AI suggests tasks and skills for the role,
rates every task, and writes a strategy report. In a terminal you can
adjust the ratings before the report is generated. The result is saved
unless --no-save is given.

Tasks can be supplied with --task (repeatable) or one per line on stdin
with --tasks-from-stdin; otherwise the AI suggestions are used.`,
	Example: `  kai assess "Copywriter"
  kai assess "Nurse" --task "Triage patients" --task "Update charts" --no-edit
  cat tasks.txt | kai assess "Accountant" --tasks-from-stdin --json`,
	RunE: runAssess,
}

type assessOptions struct {
	tasks      []string
	fromStdin  bool
	hardSkills []string
	softSkills []string
	noEdit     bool
	noSave     bool
	speakPath  string
}

var assessOpts assessOptions

type assessOutput struct {
	Session  workflow.Session      `json:"session"`
	Profile  *profile.SavedProfile `json:"profile,omitempty"`
	Fallback bool                  `json:"fallback"`
}

func runAssess(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	e, err := newEnv(ctx, true)
	if err != nil {
		return err
	}
	defer e.Close()

	out := cmd.OutOrStdout()
	interactive := ui.IsInteractive() && !isJSON()
	shell := e.shell
	if err := shell.Start(); err != nil {
		return err
	}

	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" && interactive {
		if title, err = ui.PromptLine("Which job role should kai assess?", "", "e.g. Copywriter", false); err != nil {
			return err
		}
	}
	if strings.TrimSpace(title) == "" {
		return workflow.ErrEmptyJobTitle
	}

	scope, err := buildScope(ctx, cmd.InOrStdin(), out, title, interactive, e)
	if err != nil {
		return err
	}

	var tasks []assessment.Task
	var fellBack bool
	err = ui.RunWithSpinner(ctx, interactive, "Rating tasks...", func() error {
		var aerr error
		tasks, fellBack, aerr = shell.Assess(ctx, scope)
		return aerr
	})
	if err != nil {
		return err
	}
	if fellBack && !isJSON() {
		fmt.Fprintln(out, ui.StylePrefixWarn.Render("AI assessment unavailable; every task starts at 3. Adjust the ratings to fit your role."))
	}

	if interactive && !assessOpts.noEdit {
		if _, err := ui.EditRatings("Rate tasks: "+ui.RoleTitle(scope.JobTitle, e.locale), tasks, shell); err != nil {
			return err
		}
	}

	err = ui.RunWithSpinner(ctx, interactive, "Writing strategy report...", func() error {
		_, rerr := shell.GenerateReport(ctx)
		return rerr
	})
	if err != nil {
		if !isJSON() {
			fmt.Fprintln(cmd.ErrOrStderr(), ui.RenderErrorPanel("Report failed", "The strategy report could not be generated. Run the assessment again to retry."))
		}
		return err
	}

	sess := shell.Session()
	result := assessOutput{Session: sess, Fallback: fellBack}
	if !isJSON() {
		fmt.Fprintln(out, ui.RenderReport(sess.JobTitle, e.locale, sess.Tasks, *sess.Report))
	}

	if !assessOpts.noSave {
		saved, err := shell.Save(ctx)
		if err != nil {
			return err
		}
		result.Profile = &saved
		if !isJSON() {
			fmt.Fprintf(out, "%s Saved as %s\n", ui.Icon("✔", ui.StylePrefixDone), saved.ID)
		}
	}

	if assessOpts.speakPath != "" {
		if err := speakTo(ctx, e, sess.Report.ActionPlan, assessOpts.speakPath, out); err != nil {
			return err
		}
	}

	if isJSON() {
		return printJSON(out, result)
	}
	return nil
}

// buildScope collects tasks and skills from flags, stdin, AI suggestions
// and finally an interactive prompt, in that order.
func buildScope(ctx context.Context, in io.Reader, out io.Writer, title string, interactive bool, e *env) (workflow.Scope, error) {
	scope := workflow.Scope{
		JobTitle:   title,
		Tasks:      append([]string(nil), assessOpts.tasks...),
		HardSkills: assessOpts.hardSkills,
		SoftSkills: assessOpts.softSkills,
	}
	if assessOpts.fromStdin {
		lines, err := readLines(in)
		if err != nil {
			return workflow.Scope{}, fmt.Errorf("read tasks: %w", err)
		}
		scope.Tasks = append(scope.Tasks, lines...)
	}

	if len(scope.Tasks) == 0 || (len(scope.HardSkills) == 0 && len(scope.SoftSkills) == 0) {
		var details gateway.RoleDetails
		var fellBack bool
		err := ui.RunWithSpinner(ctx, interactive, "Suggesting tasks and skills...", func() error {
			var serr error
			details, fellBack, serr = e.shell.SuggestRoleDetails(ctx, title)
			return serr
		})
		if err != nil {
			return workflow.Scope{}, err
		}
		if fellBack && !isJSON() {
			fmt.Fprintln(out, ui.StylePrefixWarn.Render("No AI suggestions available for this role."))
		}
		if len(scope.Tasks) == 0 {
			scope.Tasks = details.Tasks
		}
		if len(scope.HardSkills) == 0 && len(scope.SoftSkills) == 0 {
			scope.HardSkills, scope.SoftSkills = details.HardSkills, details.SoftSkills
		}
	}

	if interactive {
		for i, t := range scope.Tasks {
			fmt.Fprintf(out, "  %2d. %s\n", i+1, t)
		}
		extra, err := ui.PromptLine("Add tasks (optional)", "Separate tasks with ';'. Leave empty to continue.", "", false)
		if err != nil && !errors.Is(err, ui.ErrCancelled) {
			return workflow.Scope{}, err
		}
		for _, t := range strings.Split(extra, ";") {
			scope.AddTask(t)
		}
	}

	scope = scope.Normalize()
	if len(scope.Tasks) == 0 {
		return workflow.Scope{}, workflow.ErrNoTasks
	}
	return scope, nil
}

// speakTo synthesizes text and writes the raw audio to path.
func speakTo(ctx context.Context, e *env, text, path string, out io.Writer) error {
	pcm, err := e.shell.Speak(ctx, utils.Truncate(text, 4000))
	if err != nil {
		return fmt.Errorf("synthesize speech: %w", err)
	}
	if pcm == nil {
		if !isJSON() {
			fmt.Fprintln(out, ui.StylePrefixWarn.Render("The model returned no audio."))
		}
		return nil
	}
	if err := writeAudio(path, pcm); err != nil {
		return err
	}
	if !isJSON() {
		fmt.Fprintf(out, "%s Audio written to %s (raw PCM, 24 kHz mono 16-bit)\n", ui.Icon("♪", ui.StylePrefixDone), path)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(assessCmd)

	f := assessCmd.Flags()
	f.StringArrayVarP(&assessOpts.tasks, "task", "t", nil, "task of the role (repeatable)")
	f.BoolVar(&assessOpts.fromStdin, "tasks-from-stdin", false, "read tasks from stdin, one per line")
	f.StringSliceVar(&assessOpts.hardSkills, "hard-skill", nil, "hard skills (comma separated or repeated)")
	f.StringSliceVar(&assessOpts.softSkills, "soft-skill", nil, "soft skills (comma separated or repeated)")
	f.BoolVar(&assessOpts.noEdit, "no-edit", false, "accept the AI ratings without the editor")
	f.BoolVar(&assessOpts.noSave, "no-save", false, "do not save the result")
	f.StringVar(&assessOpts.speakPath, "speak", "", "also write the action plan as speech to this file")
}
