/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/kai/internal/config"
	"github.com/josephgoksu/kai/internal/profile"
	"github.com/josephgoksu/kai/internal/ui"
)

var dashboardWatch bool

var dashboardCmd = &cobra.Command{
	Use:     "dashboard",
	Aliases: []string{"dash"},
	Short:   "Show saved assessments and how they changed over time",
	Long: `Lists every saved profile with its category shares and, once there are
two or more, a trend chart. With --watch the dashboard redraws whenever
another kai process saves or deletes a profile.`,
	RunE: runDashboard,
}

type dashboardOutput struct {
	Profiles []profile.SavedProfile `json:"profiles"`
	Trend    []profile.TrendPoint   `json:"trend"`
}

func runDashboard(cmd *cobra.Command, args []string) error {
	e, err := newEnv(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer e.Close()

	out := cmd.OutOrStdout()
	render := func() {
		profiles := e.shell.OpenDashboard(cmd.Context())
		if isJSON() {
			_ = printJSON(out, dashboardOutput{Profiles: profiles, Trend: profile.Trend(profiles)})
			return
		}
		if dashboardWatch && ui.IsInteractive() {
			fmt.Fprint(out, "\033[H\033[2J")
		}
		fmt.Fprint(out, ui.RenderDashboard(profiles))
	}
	render()
	if !dashboardWatch {
		return nil
	}
	if e.settings.Storage.Backend == config.StorageMemory {
		return fmt.Errorf("--watch needs a persistent storage backend")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if !isJSON() {
		fmt.Fprintln(cmd.ErrOrStderr(), ui.StyleSubtle.Render("Watching for changes, Ctrl+C to stop."))
	}
	return profile.Watch(ctx, e.settings.Storage.Path, profile.DefaultWatchDelay, render)
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
	dashboardCmd.Flags().BoolVarP(&dashboardWatch, "watch", "w", false, "redraw when saved profiles change")
}
