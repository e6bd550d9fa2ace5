// Package engine runs the full chart pipeline: calendar conversion, chart
// derivation, every analysis and the archetype classifier.
package engine

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/f3rmion/saju/internal/analysis"
	"github.com/f3rmion/saju/internal/archetype"
	"github.com/f3rmion/saju/internal/calendar"
	"github.com/f3rmion/saju/internal/chart"
	"github.com/f3rmion/saju/internal/luck"
	"github.com/f3rmion/saju/internal/markers"
	"github.com/f3rmion/saju/internal/relations"
	"github.com/f3rmion/saju/internal/saju"
	"github.com/f3rmion/saju/internal/structure"
)

// Version is stamped on every reading.
const Version = "3.0.0"

// Engine computes readings. It is safe for concurrent use as long as its
// adapter is.
type Engine struct {
	adapter      calendar.Adapter
	classifier   *archetype.Classifier
	logger       *zap.Logger
	leapFallback bool
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithLeapFallback converts a lunar leap month that does not exist in the
// given year as the regular month instead of rejecting the date.
func WithLeapFallback(on bool) Option {
	return func(e *Engine) { e.leapFallback = on }
}

// WithClassifier replaces the classifier built on the embedded catalog.
func WithClassifier(c *archetype.Classifier) Option {
	return func(e *Engine) {
		if c != nil {
			e.classifier = c
		}
	}
}

// New creates an engine around a calendar adapter.
func New(a calendar.Adapter, opts ...Option) *Engine {
	e := &Engine{
		adapter:    a,
		classifier: archetype.NewClassifier(nil),
		logger:     zap.NewNop(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Registry returns the archetype catalog the engine classifies against.
func (e *Engine) Registry() *archetype.Registry { return e.classifier.Registry() }

// DayMaster summarizes the day stem.
type DayMaster struct {
	Stem        saju.Stem     `json:"gan"`
	Element     saju.Element  `json:"ohHaeng"`
	Polarity    saju.Polarity `json:"yinYang"`
	Description string        `json:"description"`
}

// Reading is the complete output for one birth input.
type Reading struct {
	EngineVersion string                   `json:"engineVersion"`
	Input         saju.BirthInput          `json:"input"`
	Time          calendar.ResolvedTime    `json:"resolvedTime"`
	Lunar         calendar.LunarDate       `json:"lunar"`
	LeapFallback  bool                     `json:"leapMonthFallback"`
	Chart         saju.Chart               `json:"saju"`
	Palaces       chart.Palaces            `json:"palaces"`
	DayMaster     DayMaster                `json:"dayMaster"`
	Zodiac        string                   `json:"zodiac"`
	Elements      analysis.ElementBalance  `json:"ohHaeng"`
	Strength      analysis.Strength        `json:"strength"`
	Favorable     analysis.Favorable       `json:"yongShin"`
	Special       markers.Special          `json:"sinSal"`
	Nobleman      markers.Nobleman         `json:"gwiIn"`
	Void          markers.Void             `json:"gongMang"`
	Relations     relations.Set            `json:"relationships"`
	Structure     structure.Result         `json:"gyeokGuk"`
	Luck          luck.Cycle               `json:"daeUn"`
	Archetype     archetype.Classification `json:"archetype"`
}

// LuckAt returns the luck period covering a calendar year.
func (r *Reading) LuckAt(year int) (luck.Period, bool) {
	for _, p := range r.Luck.Periods {
		if year >= p.StartYear && year <= p.EndYear {
			return p, true
		}
	}
	return luck.Period{}, false
}

// Compute produces the reading for one input. Identical input always
// yields an identical reading.
func (e *Engine) Compute(in saju.BirthInput) (*Reading, error) {
	in = in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	c, raw, t, err := chart.Compute(e.adapter, in, e.leapFallback)
	if err != nil {
		if saju.IsKind(err, saju.KindAdapterFailure) {
			e.logger.Warn("calendar conversion failed", zap.Object("input", inputFields(in)), zap.Error(err))
		}
		return nil, err
	}

	palaces, err := chart.BuildPalaces(raw.Palaces)
	if err != nil {
		e.logger.Warn("palace conversion failed", zap.Object("input", inputFields(in)), zap.Error(err))
		return nil, err
	}
	// A rejected luck cycle leaves the rest of the reading intact.
	cycle, err := luck.Build(c, in.Gender, raw.Luck)
	if err != nil {
		e.logger.Warn("luck cycle rejected", zap.Object("input", inputFields(in)), zap.Error(err))
		cycle = luck.Cycle{Direction: luck.DirectionOf(in.Gender, c.Year.Stem()), Periods: []luck.Period{}}
	}

	r := analyze(c)
	r.EngineVersion = Version
	r.Input = in
	r.Time = t
	r.Lunar = raw.Lunar
	r.LeapFallback = raw.LeapFallback
	r.Palaces = palaces
	r.Luck = cycle
	r.Archetype = e.classifier.Classify(archetype.Input{
		Chart:     c,
		Elements:  r.Elements,
		Strength:  r.Strength.Category,
		Special:   r.Special,
		Relations: r.Relations,
	})

	e.logger.Debug("reading computed",
		zap.Object("input", inputFields(in)),
		zap.Int("hour", t.Hour),
		zap.Int("minute", t.Minute),
		zap.Bool("unknownHour", t.Unknown),
		zap.Stringer("day", c.Day.StemBranch),
		zap.String("archetype", string(r.Archetype.ID)),
		zap.String("rule", r.Archetype.Rule),
	)
	return r, nil
}

// analyze runs the chart-only analyses.
func analyze(c saju.Chart) *Reading {
	dm := c.DayMaster()
	strength := analysis.AnalyzeStrength(c)
	void := markers.VoidOf(c)
	return &Reading{
		Chart: c,
		DayMaster: DayMaster{
			Stem:        dm,
			Element:     dm.Element(),
			Polarity:    dm.Polarity(),
			Description: dm.Description(),
		},
		Zodiac:    c.Year.Branch().Zodiac(),
		Elements:  analysis.Elements(c),
		Strength:  strength,
		Favorable: analysis.ResolveFavorable(dm.Element(), strength.Category),
		Special:   markers.DetectSpecial(c, void),
		Nobleman:  markers.DetectNobleman(c),
		Void:      void,
		Relations: relations.Detect(c),
		Structure: structure.Classify(c),
	}
}

// Result is one item of a batch.
type Result struct {
	Index   int
	Reading *Reading
	Err     error
}

// ComputeBatch computes every input with at most workers running at once.
// Each item carries its own result or error. Cancelling ctx stops new items
// from starting; those items report the context error, which is also
// returned.
func (e *Engine) ComputeBatch(ctx context.Context, inputs []saju.BirthInput, workers int) ([]Result, error) {
	if workers < 1 {
		workers = 1
	}
	start := time.Now()

	results := make([]Result, len(inputs))
	for i := range results {
		results[i].Index = i
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, in := range inputs {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				results[i].Err = err
				return nil
			}
			r, err := e.Compute(in)
			results[i].Reading, results[i].Err = r, err
			return nil
		})
	}
	_ = g.Wait()

	failed := 0
	if err := ctx.Err(); err != nil {
		for i := range results {
			if results[i].Reading == nil && results[i].Err == nil {
				results[i].Err = err
			}
		}
	}
	for _, r := range results {
		if r.Err != nil {
			failed++
		}
	}
	e.logger.Debug("batch finished",
		zap.Int("items", len(inputs)),
		zap.Int("failed", failed),
		zap.Int("workers", workers),
		zap.Duration("elapsed", time.Since(start)),
	)
	return results, ctx.Err()
}
