package cmd

import (
	"github.com/spf13/cobra"

	"github.com/f3rmion/saju/internal/archetype"
	"github.com/f3rmion/saju/internal/calendar"
	"github.com/f3rmion/saju/internal/config"
)

var archetypesCmd = &cobra.Command{
	Use:   "archetypes",
	Short: "List the fourteen ghost archetypes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings()
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON || cfg.Output.Format == config.FormatJSON {
			return writeJSON(cmd.OutOrStdout(), archetype.Default().All())
		}
		return newRenderer(cfg).Archetypes(cmd.OutOrStdout())
	},
}

var hoursCmd = &cobra.Command{
	Use:   "hours",
	Short: "List the accepted birth-hour labels",
	Long: `List the birth-hour labels accepted by --hour, with the time each one
resolves to. "모름" leaves the hour pillar out.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSettings()
		if err != nil {
			return err
		}
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON || cfg.Output.Format == config.FormatJSON {
			return writeJSON(cmd.OutOrStdout(), calendar.HourLabels())
		}
		return newRenderer(cfg).Hours(cmd.OutOrStdout(), calendar.HourLabels())
	},
}

func init() {
	rootCmd.AddCommand(archetypesCmd, hoursCmd)
	archetypesCmd.Flags().Bool("json", false, "print JSON")
	hoursCmd.Flags().Bool("json", false, "print JSON")
}
