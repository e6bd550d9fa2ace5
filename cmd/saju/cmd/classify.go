package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/f3rmion/saju/internal/archetype"
	"github.com/f3rmion/saju/internal/config"
)

var classifyFlags birthFlags

var classifyCmd = &cobra.Command{
	Use:   "classify <YYYY-MM-DD>",
	Short: "Print only the ghost archetype for a birth date",
	Long: `Classify a birth chart into one of the fourteen ghost archetypes and print
its affinity score, the rule that matched and the detection lines.

Example:
  saju classify 1995-03-21 --hour "묘시초 (05:00~05:30)" --gender female`,
	Args: cobra.ExactArgs(1),
	RunE: runClassify,
}

func init() {
	rootCmd.AddCommand(classifyCmd)
	classifyFlags.register(classifyCmd)
}

func runClassify(cmd *cobra.Command, args []string) error {
	cfg, r, err := compute(cmd, &classifyFlags, args[0])
	if err != nil {
		return err
	}

	c := r.Archetype
	def := archetype.Default().MustGet(c.ID)

	if classifyFlags.json || cfg.Output.Format == config.FormatJSON {
		return writeJSON(cmd.OutOrStdout(), struct {
			archetype.Classification
			Archetype archetype.Definition `json:"definition"`
		}{c, def})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s (%s)\n", def.Hanja, def.Reading, def.Meaning)
	fmt.Fprintf(out, "%s\n\n", def.Tagline)
	fmt.Fprintf(out, "친밀도 %d%% %s\n", c.AffinityScore, c.AffinityDescription)
	fmt.Fprintf(out, "판정   %s\n", c.MatchReason)
	if verbose {
		fmt.Fprintf(out, "규칙   %s (phase %d)\n", c.Rule, c.Phase)
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, "· "+strings.Join(c.DetectionLines, "\n· "))
	return nil
}
