/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/kai/internal/telemetry"
	"github.com/josephgoksu/kai/internal/ui"
)

var telemetryCmd = &cobra.Command{
	Use:   "telemetry",
	Short: "Manage telemetry settings",
	Long: `View and manage kai's anonymous telemetry settings.

Telemetry is off until you enable it. When on, kai records which steps
of an assessment were used (for example "report generated") and how many
tasks fell into each category. Job titles, task descriptions and
reports are never sent.`,
}

var telemetryStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show current telemetry status",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := telemetry.Load()
		if err != nil {
			return fmt.Errorf("failed to read telemetry status: %w", err)
		}
		if isJSON() {
			return printJSON(cmd.OutOrStdout(), cfg)
		}

		out := cmd.OutOrStdout()
		switch {
		case !cfg.Decided:
			fmt.Fprintln(out, "Telemetry: not configured (off)")
			fmt.Fprintln(out, "   To enable: kai telemetry enable")
		case cfg.IsEnabled():
			fmt.Fprintln(out, ui.StylePrefixDone.Render("Telemetry: enabled"))
			fmt.Fprintf(out, "   Anonymous ID: %s\n", cfg.AnonymousID)
			fmt.Fprintf(out, "   Enabled on: %s\n", cfg.DecidedAt.Local().Format("2006-01-02"))
			fmt.Fprintln(out, "   To disable: kai telemetry disable")
		default:
			fmt.Fprintln(out, "Telemetry: disabled")
			fmt.Fprintln(out, "   To enable: kai telemetry enable")
		}
		return nil
	},
}

var telemetryEnableCmd = &cobra.Command{
	Use:   "enable",
	Short: "Enable anonymous telemetry",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setTelemetry(cmd, true)
	},
}

var telemetryDisableCmd = &cobra.Command{
	Use:   "disable",
	Short: "Disable anonymous telemetry",
	RunE: func(cmd *cobra.Command, args []string) error {
		return setTelemetry(cmd, false)
	},
}

func setTelemetry(cmd *cobra.Command, enabled bool) error {
	cfg, err := telemetry.Load()
	if err != nil {
		return fmt.Errorf("failed to read telemetry status: %w", err)
	}
	if enabled {
		cfg.Enable()
	} else {
		cfg.Disable()
	}
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save telemetry settings: %w", err)
	}

	if isJSON() {
		return printJSON(cmd.OutOrStdout(), cfg)
	}
	if enabled {
		fmt.Fprintln(cmd.OutOrStdout(), "✅ Telemetry enabled. Thank you for helping improve kai!")
	} else {
		fmt.Fprintln(cmd.OutOrStdout(), "✅ Telemetry disabled.")
	}
	return nil
}

func init() {
	rootCmd.AddCommand(telemetryCmd)
	telemetryCmd.AddCommand(telemetryStatusCmd, telemetryEnableCmd, telemetryDisableCmd)
}
