package report

import (
	"strings"

	gopinyin "github.com/mozillazg/go-pinyin"
)

// Stems and branches have a fixed reading in the sexagenary cycle; the
// dictionary's first reading is not always it (子 comes first as neutral zi).
var cycleReadings = map[rune]string{
	'甲': "jiǎ", '乙': "yǐ", '丙': "bǐng", '丁': "dīng", '戊': "wù",
	'己': "jǐ", '庚': "gēng", '辛': "xīn", '壬': "rén", '癸': "guǐ",
	'子': "zǐ", '丑': "chǒu", '寅': "yín", '卯': "mǎo", '辰': "chén", '巳': "sì",
	'午': "wǔ", '未': "wèi", '申': "shēn", '酉': "yǒu", '戌': "xū", '亥': "hài",
}

// Romanizer spells hanja in pinyin.
type Romanizer struct {
	args gopinyin.Args
}

// NewRomanizer creates a romanizer with tone marks.
func NewRomanizer() *Romanizer {
	args := gopinyin.NewArgs()
	args.Style = gopinyin.Tone
	return &Romanizer{args: args}
}

// Romanize returns one reading per hanja, space separated. Cycle characters
// use their fixed reading; others take the dictionary's first. Runes without
// a reading are dropped.
func (r *Romanizer) Romanize(hanja string) string {
	var parts []string
	for _, c := range hanja {
		if p, ok := cycleReadings[c]; ok {
			parts = append(parts, p)
			continue
		}
		if readings := gopinyin.SinglePinyin(c, r.args); len(readings) > 0 {
			parts = append(parts, readings[0])
		}
	}
	return strings.Join(parts, " ")
}
