package narrative

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
	"text/template"

	"github.com/f3rmion/saju/internal/analysis"
	"github.com/f3rmion/saju/internal/archetype"
	"github.com/f3rmion/saju/internal/engine"
	"github.com/f3rmion/saju/internal/markers"
	"github.com/f3rmion/saju/internal/relations"
	"github.com/f3rmion/saju/internal/saju"
)

// Composer renders the brief for one batch of sections from a reading.
type Composer struct {
	registry *archetype.Registry
	template *template.Template
}

// BriefData is what the brief template sees.
type BriefData struct {
	Reading   *engine.Reading
	Archetype archetype.Definition
	Batch     Batch
	Sections  []SectionDef
}

var funcs = template.FuncMap{
	"startMarker": StartMarker,
	"endMarker":   EndMarker,
	"elements":    elementSummary,
	"special":     specialSummary,
	"nobleman":    noblemanSummary,
	"relations":   relationSummary,
	"join":        strings.Join,
}

// NewComposer creates a composer using the archetype registry r, or the
// embedded catalog when r is nil.
func NewComposer(r *archetype.Registry) *Composer {
	if r == nil {
		r = archetype.Default()
	}
	return &Composer{
		registry: r,
		template: template.Must(template.New("brief").Funcs(funcs).Parse(defaultTemplate)),
	}
}

// SetTemplate replaces the brief template.
func (c *Composer) SetTemplate(tmpl string) error {
	t, err := template.New("brief").Funcs(funcs).Parse(tmpl)
	if err != nil {
		return fmt.Errorf("parsing template: %w", err)
	}
	c.template = t
	return nil
}

// Compose renders the brief of batch b for r.
func (c *Composer) Compose(r *engine.Reading, b Batch) (string, error) {
	def, ok := c.registry.Get(r.Archetype.ID)
	if !ok {
		return "", fmt.Errorf("archetype %q not in registry", r.Archetype.ID)
	}
	data := BriefData{Reading: r, Archetype: def, Batch: b, Sections: SectionsOf(b)}
	if len(data.Sections) == 0 {
		return "", fmt.Errorf("batch %q has no sections", b)
	}

	var buf bytes.Buffer
	if err := c.template.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}
	return strings.TrimSpace(buf.String()), nil
}

func elementSummary(b analysis.ElementBalance) string {
	parts := make([]string, 0, saju.NumElements)
	for _, e := range saju.Elements() {
		parts = append(parts, e.String()+" "+strconv.FormatFloat(b.Counts.Get(e), 'f', -1, 64))
	}
	return strings.Join(parts, " · ")
}

func specialSummary(s markers.Special) string {
	if len(s.Hits) == 0 {
		return "없음"
	}
	names := make([]string, 0, len(s.Hits))
	for _, h := range s.Hits {
		names = append(names, h.Marker.String())
	}
	return strings.Join(names, ", ")
}

func noblemanSummary(n markers.Nobleman) string {
	if len(n.Hits) == 0 {
		return "없음"
	}
	names := make([]string, 0, len(n.Hits))
	for _, h := range n.Hits {
		names = append(names, h.Marker.String())
	}
	return strings.Join(names, ", ")
}

func relationSummary(s relations.Set) string {
	all := s.All()
	if len(all) == 0 {
		return "없음"
	}
	descs := make([]string, 0, len(all))
	for _, r := range all {
		descs = append(descs, r.Description)
	}
	return strings.Join(descs, "; ")
}

const defaultTemplate = `
[사주 원국]
{{range .Reading.Chart.Pillars}}- {{.Position.PillarLabel}}: {{.Pillar.StemBranch}} ({{.Pillar.StemBranch.Hanja}}) 천간 {{.Pillar.StemTenGod}} · {{.Pillar.Stage}} · {{.Pillar.Nayin}}
{{end}}{{if not .Reading.Chart.HasHour}}- 시주: 모름
{{end}}
[일간] {{.Reading.DayMaster.Stem}} ({{.Reading.DayMaster.Element}}, {{.Reading.DayMaster.Polarity}}) {{.Reading.DayMaster.Description}}
[띠] {{.Reading.Zodiac}}
[오행] {{elements .Reading.Elements}}
[신강약] {{.Reading.Strength.Category}} ({{.Reading.Strength.Score}}점)
[용신] {{.Reading.Favorable.Primary}} / 희신 {{.Reading.Favorable.Secondary}} / 기신 {{.Reading.Favorable.Unfavorable}}
[격국] {{.Reading.Structure.Structure}}: {{.Reading.Structure.Description}}
[신살] {{special .Reading.Special}}
[귀인] {{nobleman .Reading.Nobleman}}
[합충] {{relations .Reading.Relations}}

[귀신] {{.Archetype.Hanja}} {{.Archetype.Reading}} ({{.Archetype.Meaning}}): {{.Archetype.Tagline}}
[판정] {{.Reading.Archetype.MatchReason}}
[친화도] {{.Reading.Archetype.AffinityScore}} {{.Reading.Archetype.AffinityDescription}}

[작성할 섹션: 배치 {{.Batch}}]
각 섹션은 아래 구분자 사이에 쓰고, 첫 줄은 제목, 나머지는 본문으로 쓴다.
{{range .Sections}}
{{startMarker .ID}}
{{.HanjaIcon}}: {{.Title}}
...
{{endMarker .ID}}
{{end}}
`
