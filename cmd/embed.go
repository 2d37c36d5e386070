/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/josephgoksu/kai/internal/ui"
)

var embedCmd = &cobra.Command{
	Use:   "embed",
	Short: "Print the iframe snippet for embedding the web assessment",
	Example: `  kai embed --origin https://kai.example.com
  KAI_EMBED_ORIGIN=https://kai.example.com kai embed`,
	RunE: func(cmd *cobra.Command, args []string) error {
		snippet, err := ui.EmbedSnippet(viper.GetString("embed.origin"))
		if err != nil {
			return err
		}
		if isJSON() {
			return printJSON(cmd.OutOrStdout(), map[string]string{"snippet": snippet})
		}
		fmt.Fprintln(cmd.OutOrStdout(), snippet)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(embedCmd)
	embedCmd.Flags().String("origin", "", "URL the assessment is served from")
	_ = viper.BindPFlag("embed.origin", embedCmd.Flags().Lookup("origin"))
}
