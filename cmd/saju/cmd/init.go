package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/f3rmion/saju/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize saju configuration",
	Long: `Write the default config.yaml into your config directory.

The file holds:
  - leap_month_fallback   read a missing leap month as the regular month
  - workers               concurrency of 'saju batch'
  - archive               reading archive file and auto-save
  - output                text or json, romanization, banner, color

Every setting can also be given as a flag or a SAJU_ environment variable,
e.g. SAJU_OUTPUT_FORMAT=json.`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().Bool("force", false, "overwrite existing configuration")
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	configDir := getConfigDir()
	if configDir == "" {
		return errors.New("no config directory; pass --config")
	}
	path := filepath.Join(configDir, config.FileName)

	// Check if config already exists
	if _, err := os.Stat(path); err == nil && !force {
		return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", path)
	} else if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("checking config file: %w", err)
	}

	if err := config.EnsureDir(configDir); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := config.Save(configDir, config.Default()); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created %s\n\n", path)
	fmt.Fprintln(out, "Next steps:")
	fmt.Fprintln(out, "  1. Edit the file to change output and archive settings")
	fmt.Fprintln(out, "  2. Run 'saju hours' to see the accepted birth-hour labels")
	fmt.Fprintln(out, "  3. Run 'saju chart <YYYY-MM-DD> --hour <label> --gender <male|female>'")
	return nil
}
