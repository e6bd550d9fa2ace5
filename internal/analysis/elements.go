// Package analysis measures the elemental balance of a chart, the strength
// of its day-master and the elements that favor it.
package analysis

import (
	"encoding/json"

	"github.com/f3rmion/saju/internal/saju"
)

// Weights of each symbol in the element tally.
const (
	SymbolWeight = 1.0
	HiddenWeight = 0.5
)

// ElementCounts holds the weighted count of each element.
type ElementCounts [saju.NumElements]float64

// Get returns the count of e.
func (c ElementCounts) Get(e saju.Element) float64 { return c[e] }

// Total sums every element.
func (c ElementCounts) Total() float64 {
	var t float64
	for _, v := range c {
		t += v
	}
	return t
}

// MarshalJSON emits an object keyed by element id.
func (c ElementCounts) MarshalJSON() ([]byte, error) {
	m := make(map[string]float64, saju.NumElements)
	for _, e := range saju.Elements() {
		m[e.ID()] = c[e]
	}
	return json.Marshal(m)
}

// UnmarshalJSON reverses MarshalJSON.
func (c *ElementCounts) UnmarshalJSON(b []byte) error {
	var m map[string]float64
	if err := json.Unmarshal(b, &m); err != nil {
		return err
	}
	for _, e := range saju.Elements() {
		c[e] = m[e.ID()]
	}
	return nil
}

// ElementBalance is the elemental make-up of a chart.
type ElementBalance struct {
	Counts   ElementCounts  `json:"counts"`
	Dominant []saju.Element `json:"dominant"`
	Weak     []saju.Element `json:"weak"`
	Missing  []saju.Element `json:"missing"`
}

// IsMissing reports whether e has no weight at all.
func (b ElementBalance) IsMissing(e saju.Element) bool { return b.Counts[e] == 0 }

// Elements tallies every stem and branch at full weight and every hidden
// stem at half weight. Ties are kept in element order.
func Elements(c saju.Chart) ElementBalance {
	var counts ElementCounts
	for _, lp := range c.Pillars() {
		p := lp.Pillar
		counts[p.Stem().Element()] += SymbolWeight
		counts[p.Branch().Element()] += SymbolWeight
		for _, h := range p.HiddenStems {
			counts[h.Element()] += HiddenWeight
		}
	}

	var max, min float64
	for _, e := range saju.Elements() {
		v := counts[e]
		if v <= 0 {
			continue
		}
		if v > max {
			max = v
		}
		if min == 0 || v < min {
			min = v
		}
	}

	b := ElementBalance{
		Counts:   counts,
		Dominant: []saju.Element{},
		Weak:     []saju.Element{},
		Missing:  []saju.Element{},
	}
	for _, e := range saju.Elements() {
		v := counts[e]
		switch {
		case v == 0:
			b.Missing = append(b.Missing, e)
		case v == max:
			b.Dominant = append(b.Dominant, e)
		case v == min && min < max:
			b.Weak = append(b.Weak, e)
		}
	}
	return b
}
