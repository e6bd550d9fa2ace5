// Package archetype reduces a computed chart to one of fourteen archetypes
// with an affinity score and the lines that explain the match.
package archetype

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// ID identifies an archetype.
type ID string

const (
	CheBaek        ID = "cheBaek"        // 滯魄
	IkGwi          ID = "ikGwi"          // 溺鬼
	GwangIn        ID = "gwangIn"        // 狂燐
	SikMae         ID = "sikMae"         // 蝕魅
	MyeongPan      ID = "myeongPan"      // 冥判
	MuMyeonGwi     ID = "muMyeonGwi"     // 無面鬼
	YaChokGwi      ID = "yaChokGwi"      // 夜燭鬼
	GalHon         ID = "galHon"         // 渴魂
	GyeonRyeong    ID = "gyeonRyeong"    // 繭靈
	GwiMun         ID = "gwiMun"         // 鬼門
	HwangCheonGaek ID = "hwangCheonGaek" // 黃泉客
	JipMae         ID = "jipMae"         // 執魅
	BulGaSal       ID = "bulGaSal"       // 不可殺
	ChipRyong      ID = "chipRyong"      // 蟄龍
)

var allIDs = []ID{
	CheBaek, IkGwi, GwangIn, SikMae, MyeongPan, MuMyeonGwi, YaChokGwi,
	GalHon, GyeonRyeong, GwiMun, HwangCheonGaek, JipMae, BulGaSal, ChipRyong,
}

// IDs returns every archetype id in catalog order.
func IDs() []ID { return append([]ID(nil), allIDs...) }

// Valid reports whether id names a known archetype.
func (id ID) Valid() bool {
	for _, x := range allIDs {
		if x == id {
			return true
		}
	}
	return false
}

// minTeaserLines is enough to pad the shortest possible detection list.
const minTeaserLines = minDetectionLines

// Desire is the surface and hidden want of an archetype.
type Desire struct {
	SurfaceLabel string `yaml:"surface_label" json:"surfaceLabel"`
	Surface      string `yaml:"surface" json:"surface"`
	TruthLabel   string `yaml:"truth_label" json:"truthLabel"`
	Truth        string `yaml:"truth" json:"truth"`
}

// Colors are the display colors of an archetype as hex strings.
type Colors struct {
	Primary   string `yaml:"primary" json:"primary"`
	Secondary string `yaml:"secondary" json:"secondary"`
}

// Definition is one catalog entry.
type Definition struct {
	ID          ID       `yaml:"id" json:"id"`
	Hanja       string   `yaml:"hanja" json:"hanja"`
	Reading     string   `yaml:"reading" json:"reading"`
	Meaning     string   `yaml:"meaning" json:"meaning"`
	Tagline     string   `yaml:"tagline" json:"tagline"`
	Desire      Desire   `yaml:"desire" json:"desire"`
	Colors      Colors   `yaml:"colors" json:"colors"`
	TeaserLines []string `yaml:"teaser_lines" json:"teaserLines"`
	Message     string   `yaml:"message" json:"message"`
	Quote       string   `yaml:"quote" json:"quote"`
}

// Registry is a validated archetype catalog.
type Registry struct {
	defs  map[ID]Definition
	order []ID
}

// ParseRegistry decodes and validates a YAML catalog. Every archetype id
// must appear exactly once.
func ParseRegistry(data []byte) (*Registry, error) {
	var doc struct {
		Archetypes []Definition `yaml:"archetypes"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing archetype catalog: %w", err)
	}

	r := &Registry{defs: make(map[ID]Definition, len(doc.Archetypes))}
	for _, d := range doc.Archetypes {
		if !d.ID.Valid() {
			return nil, fmt.Errorf("archetype catalog: unknown id %q", d.ID)
		}
		if _, dup := r.defs[d.ID]; dup {
			return nil, fmt.Errorf("archetype catalog: duplicate id %q", d.ID)
		}
		if strings.TrimSpace(d.Hanja) == "" || strings.TrimSpace(d.Reading) == "" {
			return nil, fmt.Errorf("archetype catalog: %s: missing hanja or reading", d.ID)
		}
		if len(d.TeaserLines) < minTeaserLines {
			return nil, fmt.Errorf("archetype catalog: %s: need at least %d teaser lines, have %d",
				d.ID, minTeaserLines, len(d.TeaserLines))
		}
		r.defs[d.ID] = d
		r.order = append(r.order, d.ID)
	}

	var missing []string
	for _, id := range allIDs {
		if _, ok := r.defs[id]; !ok {
			missing = append(missing, string(id))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("archetype catalog: missing %s", strings.Join(missing, ", "))
	}
	return r, nil
}

var defaultRegistry *Registry

func init() {
	r, err := ParseRegistry(catalogYAML)
	if err != nil {
		panic(err)
	}
	defaultRegistry = r
}

// Default returns the embedded catalog.
func Default() *Registry { return defaultRegistry }

// Get looks up an archetype definition.
func (r *Registry) Get(id ID) (Definition, bool) {
	d, ok := r.defs[id]
	return d, ok
}

// MustGet is Get for ids produced by the classifier.
func (r *Registry) MustGet(id ID) Definition {
	d, ok := r.defs[id]
	if !ok {
		panic(fmt.Sprintf("archetype: %q not in registry", id))
	}
	return d
}

// All returns every definition in catalog order.
func (r *Registry) All() []Definition {
	out := make([]Definition, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.defs[id])
	}
	return out
}
