/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/josephgoksu/kai/internal/ui"
	"github.com/josephgoksu/kai/internal/util"
)

var profilesCmd = &cobra.Command{
	Use:     "profiles",
	Aliases: []string{"profile", "p"},
	Short:   "Manage saved assessments",
}

var profilesListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List saved profiles, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer e.Close()

		profiles := e.shell.Profiles(cmd.Context())
		if isJSON() {
			return printJSON(cmd.OutOrStdout(), profiles)
		}
		fmt.Fprint(cmd.OutOrStdout(), ui.RenderProfiles(profiles))
		return nil
	},
}

var profilesShowSpeak string

var profilesShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a saved profile (id or unique prefix)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd.Context(), profilesShowSpeak != "")
		if err != nil {
			return err
		}
		defer e.Close()

		p, err := e.shell.LoadProfile(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if isJSON() {
			if err := printJSON(out, p); err != nil {
				return err
			}
		} else {
			fmt.Fprintf(out, "%s  %s\n\n", ui.StyleSelectDim.Render(p.ID), ui.StyleSelectDim.Render(p.Date.Local().Format("2006-01-02 15:04")))
			fmt.Fprintln(out, ui.RenderReport(p.JobTitle, e.locale, p.Tasks, p.Analysis))
		}
		if profilesShowSpeak != "" {
			return speakTo(cmd.Context(), e, p.Analysis.ActionPlan, profilesShowSpeak, out)
		}
		return nil
	},
}

var profilesDeleteYes bool

var profilesDeleteCmd = &cobra.Command{
	Use:     "delete <id>",
	Aliases: []string{"rm"},
	Short:   "Delete a saved profile",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		out := cmd.OutOrStdout()
		p, err := e.repo.Get(ctx, args[0])
		if errors.Is(err, util.ErrNotFound) {
			// Deleting something that is already gone is not an error.
			if !isJSON() {
				fmt.Fprintf(out, "No profile matches %q.\n", args[0])
			}
			return nil
		}
		if err != nil {
			return err
		}

		if !profilesDeleteYes && !isJSON() {
			prompt := fmt.Sprintf("Delete %s (%s)? [y/N] ", p.JobTitle, util.ShortID(p.ID, 0))
			if !confirmOrAbort(cmd.InOrStdin(), out, prompt) {
				return nil
			}
		}
		if err := e.shell.DeleteProfile(ctx, p.ID); err != nil {
			return err
		}
		if isJSON() {
			return printJSON(out, map[string]string{"deleted": p.ID})
		}
		fmt.Fprintf(out, "%s Deleted %s\n", ui.Icon("✔", ui.StylePrefixDone), p.ID)
		return nil
	},
}

var (
	exportFormat string
	exportOutput string
)

var profilesExportCmd = &cobra.Command{
	Use:   "export [id]",
	Short: "Export one profile, or all of them, as JSON or YAML",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := newEnv(cmd.Context(), false)
		if err != nil {
			return err
		}
		defer e.Close()

		var payload any = e.repo.List(cmd.Context())
		if len(args) == 1 {
			p, err := e.repo.Get(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			payload = p
		}

		w := cmd.OutOrStdout()
		if exportOutput != "" && exportOutput != "-" {
			f, err := os.Create(exportOutput)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			defer f.Close()
			w = f
		}
		return encodeProfiles(w, exportFormat, payload)
	},
}

func encodeProfiles(w io.Writer, format string, v any) error {
	switch strings.ToLower(format) {
	case "", "json":
		return printJSON(w, v)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown export format %q (use json or yaml)", format)
	}
}

func init() {
	rootCmd.AddCommand(profilesCmd)
	profilesCmd.AddCommand(profilesListCmd, profilesShowCmd, profilesDeleteCmd, profilesExportCmd)

	profilesShowCmd.Flags().StringVar(&profilesShowSpeak, "speak", "", "write the action plan as speech to this file")
	profilesDeleteCmd.Flags().BoolVarP(&profilesDeleteYes, "yes", "y", false, "skip confirmation")
	profilesExportCmd.Flags().StringVarP(&exportFormat, "format", "f", "json", "output format: json or yaml")
	profilesExportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "write to file instead of stdout")
}
