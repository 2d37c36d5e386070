/*
Copyright © 2025 Joseph Goksu josephgoksu@gmail.com
*/
package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/josephgoksu/kai/internal/assessment"
	"github.com/josephgoksu/kai/internal/ui"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [axis=value ...]",
	Short: "Classify a single task from its five ratings",
	Long: `Runs the KAI classifier offline. Ratings default to 3 and can be set
with flags or as axis=value arguments. Axis names accept short aliases
(pattern, human, complexity, creativity, data).`,
	Example: `  kai classify --pattern 5 --data 5 --complexity 1 --human 1 --creativity 1
  kai classify creativity=4.5 human=2 --explain`,
	RunE: runClassify,
}

var (
	classifyRatings assessment.Ratings
	classifyExplain bool
)

func runClassify(cmd *cobra.Command, args []string) error {
	r := classifyRatings
	for _, arg := range args {
		var err error
		if r, err = applyRatingArg(r, arg); err != nil {
			return err
		}
	}
	if err := r.Validate(); err != nil {
		return fmt.Errorf("invalid ratings: %w", err)
	}

	score := assessment.Explain(r)
	if isJSON() {
		return printJSON(cmd.OutOrStdout(), struct {
			Ratings assessment.Ratings `json:"ratings"`
			assessment.Score
		}{r, score})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, ui.CategoryBadge(score.Category))
	if classifyExplain {
		fmt.Fprintln(out)
		fmt.Fprintln(out, ui.RenderExplanation(r, score))
	}
	return nil
}

// applyRatingArg parses "axis=value".
func applyRatingArg(r assessment.Ratings, arg string) (assessment.Ratings, error) {
	name, raw, ok := strings.Cut(arg, "=")
	if !ok {
		return r, fmt.Errorf("expected axis=value, got %q", arg)
	}
	axis, err := assessment.ParseAxis(name)
	if err != nil {
		return r, err
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return r, fmt.Errorf("rating for %s: %w", axis, err)
	}
	return r.With(axis, v)
}

func init() {
	rootCmd.AddCommand(classifyCmd)

	f := classifyCmd.Flags()
	f.Float64Var(&classifyRatings.PatternRecognition, "pattern", 3, "pattern recognition (1-5)")
	f.Float64Var(&classifyRatings.HumanInteraction, "human", 3, "human interaction (1-5)")
	f.Float64Var(&classifyRatings.Complexity, "complexity", 3, "complexity (1-5)")
	f.Float64Var(&classifyRatings.Creativity, "creativity", 3, "creativity (1-5)")
	f.Float64Var(&classifyRatings.DataAccessibility, "data", 3, "data accessibility (1-5)")
	f.BoolVar(&classifyExplain, "explain", false, "show the decisive rule and the weighted scores")
}
