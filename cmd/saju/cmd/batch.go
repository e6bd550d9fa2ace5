package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/f3rmion/saju/internal/config"
	"github.com/f3rmion/saju/internal/engine"
	"github.com/f3rmion/saju/internal/saju"
	"github.com/f3rmion/saju/internal/store"
)

var batchSave bool

var batchCmd = &cobra.Command{
	Use:   "batch <file>",
	Short: "Compute many birth inputs concurrently",
	Long: `Compute a reading for every input in a file and print one JSON object per
line, in input order.

Files ending in .yaml or .yml hold an "inputs" list; any other file is read as
JSON Lines with one input object per line:

  {"year":1990,"month":5,"day":17,"hour":"오시정 (12:00~12:30)","gender":"female"}

A failed input prints its index and message and does not stop the batch.

Example:
  saju batch people.jsonl --workers 8 > readings.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: runBatch,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.Flags().Int("workers", 0, "concurrent computations (default from config)")
	batchCmd.Flags().BoolVar(&batchSave, "save", false, "save every reading to the archive")
	viper.BindPFlag("workers", batchCmd.Flags().Lookup("workers"))
}

// batchLine is one line of batch output.
type batchLine struct {
	Index   int             `json:"index"`
	Input   saju.BirthInput `json:"input"`
	ID      string          `json:"id,omitempty"`
	Reading *engine.Reading `json:"reading,omitempty"`
	Error   string          `json:"error,omitempty"`
}

func runBatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}
	inputs, err := config.LoadInputs(args[0])
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	results, batchErr := newEngine(cfg).ComputeBatch(ctx, inputs, cfg.Workers)

	var archived *store.Store
	if batchSave || cfg.Archive.AutoSave {
		if archived, err = openArchive(cfg); err != nil {
			logger.Warn("archive unavailable", zap.Error(err))
		} else {
			defer archived.Close()
		}
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	failed := 0
	for _, res := range results {
		line := batchLine{Index: res.Index, Input: inputs[res.Index], Reading: res.Reading}
		if res.Err != nil {
			failed++
			line.Error = batchMessage(res.Err)
		} else if archived != nil {
			line.ID = save(ctx, archived, res.Reading)
		}
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("writing result %d: %w", res.Index, err)
		}
	}

	if batchErr != nil {
		return fmt.Errorf("batch interrupted: %w", batchErr)
	}
	if failed > 0 {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d of %d inputs failed\n", failed, len(inputs))
	}
	return nil
}

func batchMessage(err error) string {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err.Error()
	}
	return userError(err).Error()
}

func save(ctx context.Context, s *store.Store, r *engine.Reading) string {
	id, err := s.Save(ctx, r)
	if err != nil {
		logger.Warn("archiving reading failed", zap.Error(err))
		return ""
	}
	return id
}
