// Package report renders readings and archive listings for the terminal.
package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/f3rmion/saju/internal/archetype"
	"github.com/f3rmion/saju/internal/calendar"
	"github.com/f3rmion/saju/internal/engine"
	"github.com/f3rmion/saju/internal/narrative"
	"github.com/f3rmion/saju/internal/saju"
	"github.com/f3rmion/saju/internal/store"
)

// Banner size in terminal cells.
const (
	bannerCols = 16
	bannerRows = 8
)

const (
	labelWidth  = 10
	columnWidth = 12
	barScale    = 2
)

// Options control what a Renderer prints.
type Options struct {
	Color    bool
	Romanize bool
	Banner   bool
}

// Renderer prints reports.
type Renderer struct {
	opts      Options
	registry  *archetype.Registry
	romanizer *Romanizer
	now       func() time.Time
}

// New creates a renderer. A nil registry uses the built-in catalog.
func New(registry *archetype.Registry, opts Options) *Renderer {
	if registry == nil {
		registry = archetype.Default()
	}
	r := &Renderer{
		opts:     opts,
		registry: registry,
		now:      time.Now,
	}
	if opts.Romanize {
		r.romanizer = NewRomanizer()
	}
	return r
}

// page collects one report before it is written out.
type page struct {
	st styles
	sb strings.Builder
}

func (r *Renderer) newPage(w io.Writer) *page {
	return &page{st: newStyles(lipgloss.NewRenderer(w), r.opts.Color)}
}

func (p *page) line(parts ...string) {
	p.sb.WriteString(strings.Join(parts, ""))
	p.sb.WriteByte('\n')
}

func (p *page) section(title string) {
	p.sb.WriteByte('\n')
	p.line(p.st.subtitle.Render(title))
	p.line(p.st.divider.Render(strings.Repeat("─", labelWidth+columnWidth*saju.NumPositions)))
}

func (p *page) field(label, value string) {
	p.line(p.st.label.Render(runewidth.FillRight(label, labelWidth)), p.st.value.Render(value))
}

func (p *page) flush(w io.Writer) error {
	_, err := io.WriteString(w, p.sb.String())
	return err
}

// Reading prints a full reading.
func (r *Renderer) Reading(w io.Writer, rd *engine.Reading) error {
	p := r.newPage(w)

	r.header(p, rd)
	r.pillars(p, rd)
	r.profile(p, rd)
	r.elements(p, rd)
	r.markers(p, rd)
	r.relations(p, rd)
	r.luck(p, rd)
	r.archetype(p, rd.Archetype)

	return p.flush(w)
}

func (r *Renderer) header(p *page, rd *engine.Reading) {
	if r.opts.Banner {
		dm := rd.DayMaster.Stem
		if art := Banner(dm.Hanja(), bannerCols, bannerRows); art != "" {
			p.line(p.st.element[dm.Element()].Render(art))
		}
	}

	in := rd.Input
	p.line(p.st.title.Render(fmt.Sprintf("%04d-%02d-%02d %s", in.Year, in.Month, in.Day, calendarName(in))))

	hour := in.Hour
	if rd.Time.Unknown {
		hour = saju.UnknownHour
	}
	p.field("시각", hour)
	p.field("음력", rd.Lunar.Text)
	if rd.LeapFallback {
		p.line(p.st.muted.Render("윤달이 없어 평달로 계산했습니다."))
	}
	p.field("성별", genderName(in.Gender))
	p.field("띠", rd.Zodiac)
}

func calendarName(in saju.BirthInput) string {
	switch {
	case in.Calendar == saju.Lunar && in.LeapMonth:
		return "음력(윤달)"
	case in.Calendar == saju.Lunar:
		return "음력"
	default:
		return "양력"
	}
}

func genderName(g saju.Gender) string {
	if g == saju.Male {
		return "남"
	}
	return "여"
}

// displayOrder is the traditional right-to-left layout read left to right.
var displayOrder = [saju.NumPositions]saju.Position{
	saju.PositionHour, saju.PositionDay, saju.PositionMonth, saju.PositionYear,
}

func pillarAt(c saju.Chart, pos saju.Position) *saju.Pillar {
	switch pos {
	case saju.PositionYear:
		return &c.Year
	case saju.PositionMonth:
		return &c.Month
	case saju.PositionDay:
		return &c.Day
	default:
		return c.Hour
	}
}

func (r *Renderer) pillars(p *page, rd *engine.Reading) {
	p.section("사주 팔자")

	var head strings.Builder
	head.WriteString(runewidth.FillRight("", labelWidth))
	for _, pos := range displayOrder {
		head.WriteString(runewidth.FillRight(pos.PillarLabel(), columnWidth))
	}
	p.line(p.st.accent.Render(strings.TrimRight(head.String(), " ")))

	row := func(label string, cell func(*saju.Pillar) string) {
		var sb strings.Builder
		for _, pos := range displayOrder {
			text := "-"
			if pl := pillarAt(rd.Chart, pos); pl != nil {
				text = cell(pl)
			}
			sb.WriteString(runewidth.FillRight(text, columnWidth))
		}
		p.line(p.st.label.Render(runewidth.FillRight(label, labelWidth)), strings.TrimRight(sb.String(), " "))
	}

	row("천간", func(pl *saju.Pillar) string {
		s := pl.Stem()
		return s.Hanja() + " " + s.String() + s.Element().String()
	})
	row("지지", func(pl *saju.Pillar) string {
		b := pl.Branch()
		return b.Hanja() + " " + b.String() + b.Element().String()
	})
	if r.romanizer != nil {
		row("병음", func(pl *saju.Pillar) string { return r.romanizer.Romanize(pl.StemBranch.Hanja()) })
	}
	row("십신", func(pl *saju.Pillar) string { return pl.StemTenGod.String() })
	row("지장간", func(pl *saju.Pillar) string {
		var s strings.Builder
		for _, h := range pl.HiddenStems {
			s.WriteString(h.Hanja())
		}
		return s.String()
	})
	row("지장십신", func(pl *saju.Pillar) string {
		names := make([]string, len(pl.HiddenTenGods))
		for i, g := range pl.HiddenTenGods {
			names[i] = g.String()
		}
		return strings.Join(names, "·")
	})
	row("12운성", func(pl *saju.Pillar) string { return pl.Stage.String() })
	row("납음", func(pl *saju.Pillar) string { return pl.Nayin.String() })
}

func (r *Renderer) profile(p *page, rd *engine.Reading) {
	p.section("일간과 격국")

	dm := rd.DayMaster
	p.field("일간", fmt.Sprintf("%s %s (%s%s, %s)", dm.Stem.Hanja(), dm.Stem.String(), dm.Element.String(), dm.Element.Hanja(), dm.Polarity.String()))
	p.line(runewidth.FillRight("", labelWidth), p.st.muted.Render(dm.Description))

	s := rd.Strength
	p.field("신강약", fmt.Sprintf("%s (%d점)", s.Category.String(), s.Score))
	season := "월령 " + s.SeasonalElement.String()
	if s.SeasonalDominance {
		season += ", 득령"
	}
	p.field("", season)

	f := rd.Favorable
	p.field("용신", fmt.Sprintf("%s  희신 %s  기신 %s", f.Primary.String(), f.Secondary.String(), f.Unfavorable.String()))

	st := rd.Structure
	p.field("격국", fmt.Sprintf("%s (%s)", st.Structure, st.Category))
	p.line(runewidth.FillRight("", labelWidth), p.st.muted.Render(st.Description))

	pl := rd.Palaces
	p.field("태원", palaceText(pl.Conception.StemBranch, pl.Conception.Nayin))
	p.field("명궁", palaceText(pl.Life.StemBranch, pl.Life.Nayin))
	p.field("신궁", palaceText(pl.Body.StemBranch, pl.Body.Nayin))
}

func palaceText(sb saju.StemBranch, n saju.Nayin) string {
	return fmt.Sprintf("%s %s (%s)", sb.Hanja(), sb.String(), n.String())
}

func (r *Renderer) elements(p *page, rd *engine.Reading) {
	p.section("오행")

	b := rd.Elements
	for _, e := range saju.Elements() {
		v := b.Counts.Get(e)
		bar := strings.Repeat("█", int(v*barScale))
		label := runewidth.FillRight(e.String()+" "+e.Hanja(), labelWidth)
		count := runewidth.FillLeft(strconv.FormatFloat(v, 'f', -1, 64), 4)
		p.line(p.st.element[e].Render(label), count, " ", p.st.element[e].Render(bar))
	}
	p.field("강한 오행", elementList(b.Dominant))
	p.field("약한 오행", elementList(b.Weak))
	if len(b.Missing) > 0 {
		p.field("없는 오행", elementList(b.Missing))
	}
}

func elementList(es []saju.Element) string {
	if len(es) == 0 {
		return "-"
	}
	names := make([]string, len(es))
	for i, e := range es {
		names[i] = e.String()
	}
	return strings.Join(names, ", ")
}

func (r *Renderer) markers(p *page, rd *engine.Reading) {
	p.section("신살과 귀인")

	if len(rd.Special.Hits) == 0 {
		p.field("신살", "-")
	}
	for _, h := range rd.Special.Hits {
		labels := make([]string, len(h.Pillars))
		for i, pos := range h.Pillars {
			labels[i] = pos.PillarLabel()
		}
		p.field(h.Marker.String(), strings.Join(labels, ", "))
	}

	if len(rd.Nobleman.Hits) == 0 {
		p.field("귀인", "-")
	}
	for _, h := range rd.Nobleman.Hits {
		labels := make([]string, len(h.Sightings))
		for i, s := range h.Sightings {
			labels[i] = s.String()
		}
		p.field(h.Marker.String(), strings.Join(labels, ", "))
	}

	v := rd.Void
	void := v.Branches[0].String() + v.Branches[1].String()
	if len(v.Affected) > 0 {
		labels := make([]string, len(v.Affected))
		for i, pos := range v.Affected {
			labels[i] = pos.PillarLabel()
		}
		void += " → " + strings.Join(labels, ", ")
	}
	p.field("공망", void)
}

func (r *Renderer) relations(p *page, rd *engine.Reading) {
	all := rd.Relations.All()
	if len(all) == 0 {
		return
	}
	p.section("합충형파해")
	for _, rel := range all {
		p.field(string(rel.Kind), rel.Description)
	}
}

func (r *Renderer) luck(p *page, rd *engine.Reading) {
	c := rd.Luck
	if len(c.Periods) == 0 {
		return
	}
	p.section(fmt.Sprintf("대운 (%s, %d세 시작)", c.Direction.String(), c.StartAge))

	current, ok := rd.LuckAt(r.now().Year())
	for _, per := range c.Periods {
		text := fmt.Sprintf("%s %s  %d~%d세  %d~%d",
			per.StemBranch.Hanja(), per.StemBranch.String(), per.StartAge, per.EndAge, per.StartYear, per.EndYear)
		if ok && per.StartYear == current.StartYear {
			p.line(p.st.accent.Render("▶ " + text))
			continue
		}
		p.line("  " + text)
	}
}

func (r *Renderer) archetype(p *page, c archetype.Classification) {
	def, ok := r.registry.Get(c.ID)
	if !ok {
		p.section(string(c.ID))
		return
	}

	accent := p.st.accent
	if def.Colors.Primary != "" {
		accent = accent.Foreground(lipgloss.Color(def.Colors.Primary))
	}

	var body strings.Builder
	body.WriteString(accent.Render(fmt.Sprintf("%s %s", def.Hanja, def.Reading)))
	body.WriteString("  " + p.st.muted.Render(def.Meaning) + "\n")
	body.WriteString(def.Tagline + "\n\n")
	fmt.Fprintf(&body, "%s %d%%  %s\n", p.st.label.Render("친밀도"), c.AffinityScore, c.AffinityDescription)
	fmt.Fprintf(&body, "%s %s\n\n", p.st.label.Render("판정"), c.MatchReason)
	for _, l := range c.DetectionLines {
		body.WriteString("· " + l + "\n")
	}
	if def.Quote != "" {
		body.WriteString("\n" + p.st.muted.Render(def.Quote))
	}

	p.section("당신의 귀신")
	p.line(p.st.box.BorderForeground(lipgloss.Color(def.Colors.Secondary)).Render(strings.TrimRight(body.String(), "\n")))
}

// Summaries prints an archive listing.
func (r *Renderer) Summaries(w io.Writer, list []store.Summary) error {
	p := r.newPage(w)
	if len(list) == 0 {
		p.line(p.st.muted.Render("저장된 풀이가 없습니다."))
		return p.flush(w)
	}

	for _, s := range list {
		name := string(s.Archetype)
		if def, ok := r.registry.Get(s.Archetype); ok {
			name = def.Hanja + " " + def.Reading
		}
		in := s.Input
		p.line(
			p.st.accent.Render(runewidth.FillRight(shortID(s.ID), 10)),
			runewidth.FillRight(s.CreatedAt.Local().Format("2006-01-02 15:04"), 18),
			runewidth.FillRight(fmt.Sprintf("%04d-%02d-%02d %s %s", in.Year, in.Month, in.Day, calendarName(in), genderName(in.Gender)), 26),
			runewidth.FillRight(name, 14),
			fmt.Sprintf("%3d%%", s.AffinityScore),
		)
	}
	return p.flush(w)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// ArchetypeCounts prints how many readings fell into each archetype, in
// catalog order.
func (r *Renderer) ArchetypeCounts(w io.Writer, counts map[archetype.ID]int) error {
	p := r.newPage(w)
	total := 0
	for _, n := range counts {
		total += n
	}
	for _, def := range r.registry.All() {
		n := counts[def.ID]
		p.line(
			p.st.accent.Render(runewidth.FillRight(def.Hanja, 8)),
			runewidth.FillRight(def.Reading, 10),
			runewidth.FillLeft(strconv.Itoa(n), 5), " ",
			p.st.muted.Render(strings.Repeat("█", n)),
		)
	}
	p.field("합계", strconv.Itoa(total))
	return p.flush(w)
}

// Archetypes prints the catalog.
func (r *Renderer) Archetypes(w io.Writer) error {
	p := r.newPage(w)
	for _, def := range r.registry.All() {
		p.line(
			p.st.accent.Render(runewidth.FillRight(def.Hanja, 8)),
			runewidth.FillRight(def.Reading, 10),
			p.st.muted.Render(runewidth.FillRight(string(def.ID), 16)),
			def.Tagline,
		)
	}
	return p.flush(w)
}

// Hours prints the accepted birth-hour labels.
func (r *Renderer) Hours(w io.Writer, labels []calendar.HourLabel) error {
	p := r.newPage(w)
	for _, l := range labels {
		if l.Time.Unknown {
			p.line(l.Label, p.st.muted.Render("  (시주 없이 계산)"))
			continue
		}
		p.line(runewidth.FillRight(l.Label, 28), p.st.muted.Render(fmt.Sprintf("%02d:%02d", l.Time.Hour, l.Time.Minute)))
	}
	return p.flush(w)
}

// Sections prints merged narrative sections in order.
func (r *Renderer) Sections(w io.Writer, sections []narrative.Section) error {
	p := r.newPage(w)
	for i, s := range sections {
		if i > 0 {
			p.sb.WriteByte('\n')
		}
		p.line(p.st.title.Render(s.Title))
		if s.Fallback {
			p.line(p.st.muted.Render(s.Content))
			continue
		}
		p.line(s.Content)
	}
	return p.flush(w)
}
