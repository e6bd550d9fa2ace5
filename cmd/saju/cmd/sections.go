package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/f3rmion/saju/internal/clipboard"
	"github.com/f3rmion/saju/internal/config"
	"github.com/f3rmion/saju/internal/narrative"
)

var sectionsCmd = &cobra.Command{
	Use:   "sections <file>...",
	Short: "Merge narrative batch responses into ordered sections",
	Long: `Read one or more narrative batch responses and print all thirteen reading
sections in order. Sections are delimited as

  ===SECTION_START::ilju_character===
  title line
  body
  ===SECTION_END::ilju_character===

Sections missing from every file get a fallback title and body. Pass "-" to
read a response from standard input.

Example:
  saju sections batch-a.txt batch-b.txt batch-c1.txt batch-c2.txt`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSections,
}

var (
	briefBatch string
	briefCopy  bool
)

var briefFlags birthFlags

var briefCmd = &cobra.Command{
	Use:   "brief <YYYY-MM-DD>",
	Short: "Print the writing brief for one batch of narrative sections",
	Long: `Compute a reading and print the fact sheet and section instructions for
one narrative batch (A, B, C1 or C2). The response to the brief is read back
with 'saju sections'.

Example:
  saju brief 1990-05-17 --hour "오시정 (12:00~12:30)" -g female --batch A`,
	Args: cobra.ExactArgs(1),
	RunE: runBrief,
}

func init() {
	rootCmd.AddCommand(sectionsCmd, briefCmd)
	sectionsCmd.Flags().Bool("json", false, "print JSON")
	briefFlags.register(briefCmd)
	briefCmd.Flags().StringVar(&briefBatch, "batch", string(narrative.BatchA), "section batch: A, B, C1 or C2")
	briefCmd.Flags().BoolVar(&briefCopy, "copy", false, "also copy the brief to the clipboard")
}

func runSections(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	responses := make([]string, 0, len(args))
	for _, path := range args {
		var data []byte
		if path == "-" {
			data, err = io.ReadAll(cmd.InOrStdin())
		} else {
			data, err = os.ReadFile(path)
		}
		if err != nil {
			return fmt.Errorf("reading response: %w", err)
		}
		responses = append(responses, string(data))
	}

	sections := narrative.Merge(responses...)
	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON || cfg.Output.Format == config.FormatJSON {
		return writeJSON(cmd.OutOrStdout(), sections)
	}
	return newRenderer(cfg).Sections(cmd.OutOrStdout(), sections)
}

func runBrief(cmd *cobra.Command, args []string) error {
	b, err := narrative.ParseBatch(briefBatch)
	if err != nil {
		return err
	}
	_, r, err := compute(cmd, &briefFlags, args[0])
	if err != nil {
		return err
	}

	brief, err := narrative.NewComposer(nil).Compose(r, b)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), brief)

	if briefCopy {
		if err := clipboard.Write(brief); err != nil {
			logger.Warn("copying brief failed", zap.Error(err))
			return nil
		}
		fmt.Fprintln(cmd.ErrOrStderr(), "copied to clipboard")
	}
	return nil
}
