package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/f3rmion/saju/internal/config"
	"github.com/f3rmion/saju/internal/engine"
	"github.com/f3rmion/saju/internal/saju"
)

// birthFlags are the flags that complete a birth date argument.
type birthFlags struct {
	hour   string
	lunar  bool
	leap   bool
	gender string
	json   bool
	save   bool
}

func (f *birthFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.hour, "hour", saju.UnknownHour, "birth hour label (see 'saju hours')")
	cmd.Flags().BoolVar(&f.lunar, "lunar", false, "the date is a lunar date")
	cmd.Flags().BoolVar(&f.leap, "leap", false, "the lunar month is a leap month")
	cmd.Flags().StringVarP(&f.gender, "gender", "g", "", "male or female")
	cmd.Flags().BoolVar(&f.json, "json", false, "print JSON")
	cmd.Flags().BoolVar(&f.save, "save", false, "save the reading to the archive")
	cmd.MarkFlagRequired("gender")
}

func (f *birthFlags) input(date string) (saju.BirthInput, error) {
	y, m, d, err := parseDate(date)
	if err != nil {
		return saju.BirthInput{}, err
	}
	g, err := parseGender(f.gender)
	if err != nil {
		return saju.BirthInput{}, err
	}
	in := saju.BirthInput{
		Year:      y,
		Month:     m,
		Day:       d,
		Hour:      f.hour,
		Calendar:  saju.Solar,
		LeapMonth: f.leap,
		Gender:    g,
	}
	if f.lunar {
		in.Calendar = saju.Lunar
	}
	return in, nil
}

// parseDate splits YYYY-MM-DD without checking that the day exists; lunar
// dates such as 02-30 are valid.
func parseDate(s string) (int, int, int, error) {
	parts := strings.Split(s, "-")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("date must look like YYYY-MM-DD, got %q", s)
	}
	var out [3]int
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return 0, 0, 0, fmt.Errorf("date must look like YYYY-MM-DD, got %q", s)
		}
		out[i] = n
	}
	return out[0], out[1], out[2], nil
}

func parseGender(s string) (saju.Gender, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "male", "m", "남", "남자":
		return saju.Male, nil
	case "female", "f", "여", "여자":
		return saju.Female, nil
	default:
		return "", fmt.Errorf("gender must be male or female, got %q", s)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

var chartFlags birthFlags

var chartCmd = &cobra.Command{
	Use:   "chart <YYYY-MM-DD>",
	Short: "Compute and print the full reading for a birth date",
	Long: `Compute the four-pillar chart for a birth date and print every analysis.

The hour is one of the labels listed by 'saju hours'; leave it out when the
birth time is unknown and the chart is read from three pillars.

Examples:
  saju chart 1990-05-17 --hour "오시정 (12:00~12:30)" --gender female
  saju chart 1987-04-23 --lunar --leap --gender male
  saju chart 2000-01-01 -g male --json --save`,
	Args: cobra.ExactArgs(1),
	RunE: runChart,
}

func init() {
	rootCmd.AddCommand(chartCmd)
	chartFlags.register(chartCmd)
}

// compute loads settings, computes one reading and archives it when asked.
func compute(cmd *cobra.Command, f *birthFlags, date string) (*config.Config, *engine.Reading, error) {
	cfg, err := loadSettings()
	if err != nil {
		return nil, nil, err
	}
	in, err := f.input(date)
	if err != nil {
		return nil, nil, err
	}

	r, err := newEngine(cfg).Compute(in)
	if err != nil {
		return nil, nil, userError(err)
	}

	if f.save || cfg.Archive.AutoSave {
		archive(cmd.Context(), cfg, cmd.ErrOrStderr(), r)
	}
	return cfg, r, nil
}

func runChart(cmd *cobra.Command, args []string) error {
	cfg, r, err := compute(cmd, &chartFlags, args[0])
	if err != nil {
		return err
	}

	if chartFlags.json || cfg.Output.Format == config.FormatJSON {
		return writeJSON(cmd.OutOrStdout(), r)
	}
	return newRenderer(cfg).Reading(cmd.OutOrStdout(), r)
}
