// Package saju provides the closed symbol vocabulary of the four-pillar
// system (stems, branches, elements, ten gods, twelve stages, sound
// elements) and the Pillar and Chart types every analyzer consumes.
//
// Every enumeration is a small integer type backed by arrays sized by the
// enumeration's count, so a lookup can never miss.
package saju

import "fmt"

// Element is one of the five elements (오행).
type Element int

const (
	Wood  Element = iota // 목 木
	Fire                 // 화 火
	Earth                // 토 土
	Metal                // 금 金
	Water                // 수 水
)

// NumElements is the number of elements.
const NumElements = 5

var elementNames = [NumElements]string{"목", "화", "토", "금", "수"}
var elementHanja = [NumElements]string{"木", "火", "土", "金", "水"}
var elementIDs = [NumElements]string{"wood", "fire", "earth", "metal", "water"}

// Elements lists every element in cycle order.
func Elements() [NumElements]Element {
	return [NumElements]Element{Wood, Fire, Earth, Metal, Water}
}

// Valid reports whether e is one of the five elements.
func (e Element) Valid() bool { return e >= 0 && e < NumElements }

// String returns the hangul name.
func (e Element) String() string {
	if !e.Valid() {
		return fmt.Sprintf("Element(%d)", int(e))
	}
	return elementNames[e]
}

// Hanja returns the element's character.
func (e Element) Hanja() string { return elementHanja[e] }

// ID returns the english identifier used in serialized output.
func (e Element) ID() string { return elementIDs[e] }

// Produces returns the element e generates (wood feeds fire).
func (e Element) Produces() Element { return (e + 1) % NumElements }

// ProducedBy returns the element that generates e.
func (e Element) ProducedBy() Element { return (e + NumElements - 1) % NumElements }

// Controls returns the element e overcomes (wood breaks earth).
func (e Element) Controls() Element { return (e + 2) % NumElements }

// ControlledBy returns the element that overcomes e.
func (e Element) ControlledBy() Element { return (e + 3) % NumElements }

// MarshalText encodes the element as its english identifier.
func (e Element) MarshalText() ([]byte, error) {
	if !e.Valid() {
		return nil, fmt.Errorf("invalid element %d", int(e))
	}
	return []byte(elementIDs[e]), nil
}

// UnmarshalText accepts the english identifier, the hangul name or the hanja.
func (e *Element) UnmarshalText(b []byte) error {
	v, err := ParseElement(string(b))
	if err != nil {
		return err
	}
	*e = v
	return nil
}

// ParseElement parses an english identifier, hangul name or hanja.
func ParseElement(s string) (Element, error) {
	for i := range NumElements {
		if s == elementIDs[i] || s == elementNames[i] || s == elementHanja[i] {
			return Element(i), nil
		}
	}
	return 0, fmt.Errorf("unknown element %q", s)
}

// Polarity is yin or yang (음양).
type Polarity int

const (
	Yang Polarity = iota // 양
	Yin                  // 음
)

var polarityNames = [2]string{"양", "음"}
var polarityIDs = [2]string{"yang", "yin"}

// String returns the hangul name.
func (p Polarity) String() string {
	if p != Yang && p != Yin {
		return fmt.Sprintf("Polarity(%d)", int(p))
	}
	return polarityNames[p]
}

// MarshalText encodes the polarity as "yang" or "yin".
func (p Polarity) MarshalText() ([]byte, error) {
	if p != Yang && p != Yin {
		return nil, fmt.Errorf("invalid polarity %d", int(p))
	}
	return []byte(polarityIDs[p]), nil
}

// UnmarshalText decodes "yang"/"yin" or the hangul names.
func (p *Polarity) UnmarshalText(b []byte) error {
	for i, id := range polarityIDs {
		if string(b) == id || string(b) == polarityNames[i] {
			*p = Polarity(i)
			return nil
		}
	}
	return fmt.Errorf("unknown polarity %q", string(b))
}
