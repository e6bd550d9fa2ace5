package calendar

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/f3rmion/saju/internal/saju"
)

//go:embed hours.yaml
var hoursYAML []byte

// HourLabel is one entry of the accepted birth-hour catalog.
type HourLabel struct {
	Label  string       `yaml:"label" json:"label"`
	Branch *saju.Branch `yaml:"-" json:"branch,omitempty"`
	Time   ResolvedTime `yaml:"-" json:"time"`
}

type hourEntry struct {
	Label  string `yaml:"label"`
	Branch string `yaml:"branch"`
}

var hourLabels []HourLabel

func init() {
	labels, err := parseHourLabels(hoursYAML)
	if err != nil {
		panic(err)
	}
	hourLabels = labels
}

func parseHourLabels(data []byte) ([]HourLabel, error) {
	var doc struct {
		Hours []hourEntry `yaml:"hours"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing hour labels: %w", err)
	}

	out := make([]HourLabel, 0, len(doc.Hours))
	for _, h := range doc.Hours {
		hl := HourLabel{Label: h.Label, Time: ResolveTime(h.Label)}
		if h.Branch != "" {
			b, err := saju.ParseBranch(h.Branch)
			if err != nil {
				return nil, fmt.Errorf("hour label %q: %w", h.Label, err)
			}
			hl.Branch = &b
		}
		if hl.Branch == nil && !hl.Time.Unknown {
			return nil, fmt.Errorf("hour label %q: missing branch", h.Label)
		}
		out = append(out, hl)
	}
	return out, nil
}

// HourLabels returns the accepted birth-hour labels in day order, ending
// with the unknown token.
func HourLabels() []HourLabel {
	return append([]HourLabel(nil), hourLabels...)
}
