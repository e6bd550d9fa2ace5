package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/f3rmion/saju/internal/config"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse archived readings",
	Long: `List, show and delete readings saved with --save or archive.auto_save.

Ids may be shortened to any unique prefix.

Examples:
  saju history
  saju history show 3f2a9c1b
  saju history delete 3f2a9c1b`,
	Args: cobra.NoArgs,
	RunE: runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived readings, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Print an archived reading",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Remove an archived reading",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

var historyStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Count archived readings per archetype",
	Args:  cobra.NoArgs,
	RunE:  runHistoryStats,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyDeleteCmd, historyStatsCmd)
	historyCmd.PersistentFlags().IntVarP(&historyLimit, "limit", "n", 20, "number of readings to list (0 for all)")
	historyShowCmd.Flags().Bool("json", false, "print JSON")
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	s, err := openArchive(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	list, err := s.List(cmd.Context(), historyLimit)
	if err != nil {
		return err
	}
	return newRenderer(cfg).Summaries(cmd.OutOrStdout(), list)
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	s, err := openArchive(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := s.Resolve(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	entry, err := s.Get(cmd.Context(), id)
	if err != nil {
		return err
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON || cfg.Output.Format == config.FormatJSON {
		return writeJSON(cmd.OutOrStdout(), entry)
	}
	return newRenderer(cfg).Reading(cmd.OutOrStdout(), entry.Reading)
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	s, err := openArchive(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	id, err := s.Resolve(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	if err := s.Delete(cmd.Context(), id); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", id)
	return nil
}

func runHistoryStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	s, err := openArchive(cfg)
	if err != nil {
		return err
	}
	defer s.Close()

	counts, err := s.CountByArchetype(cmd.Context())
	if err != nil {
		return err
	}
	return newRenderer(cfg).ArchetypeCounts(cmd.OutOrStdout(), counts)
}
