package narrative

import (
	"regexp"
	"strings"
)

// Delimiters around each section of a batch response.
const (
	startPrefix = "===SECTION_START::"
	endPrefix   = "===SECTION_END::"
	markerClose = "==="
)

// FallbackContent fills sections that no batch produced.
const FallbackContent = "귀신이 방해해서 이 풀이가 안 됐다... 나중에 다시 와봐라."

var startPattern = regexp.MustCompile(`===SECTION_START::(\w+)===`)

// StartMarker returns the opening delimiter of a section.
func StartMarker(id string) string { return startPrefix + id + markerClose }

// EndMarker returns the closing delimiter of a section.
func EndMarker(id string) string { return endPrefix + id + markerClose }

// Section is one parsed section of text.
type Section struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Order    int    `json:"order"`
	Fallback bool   `json:"fallback,omitempty"`
}

// Parse extracts the delimited sections of one batch response in the order
// they appear. The first line of a section is its title and the rest is the
// body. Unknown ids and sections without a matching end marker are skipped.
func Parse(text string) []Section {
	var out []Section
	for pos := 0; pos < len(text); {
		m := startPattern.FindStringSubmatchIndex(text[pos:])
		if m == nil {
			break
		}
		id := text[pos+m[2] : pos+m[3]]
		bodyStart := pos + m[1]

		end := strings.Index(text[bodyStart:], EndMarker(id))
		if end < 0 {
			pos = bodyStart
			continue
		}
		body := text[bodyStart : bodyStart+end]
		pos = bodyStart + end + len(EndMarker(id))

		def, ok := Lookup(id)
		if !ok {
			continue
		}
		out = append(out, sectionOf(def, body))
	}
	return out
}

func sectionOf(def SectionDef, body string) Section {
	title, rest, _ := strings.Cut(strings.TrimSpace(body), "\n")
	title = strings.TrimSpace(title)
	if title == "" {
		title = def.FallbackTitle()
	}
	return Section{
		ID:      def.ID,
		Title:   title,
		Content: strings.TrimSpace(rest),
		Order:   def.Order,
	}
}

// Merge parses every batch response and returns all thirteen sections in
// catalog order. An empty response stands for a failed batch. The first
// occurrence of a section wins; sections nobody produced get the fallback
// title and content.
func Merge(responses ...string) []Section {
	found := make(map[string]Section, len(sections))
	for _, text := range responses {
		for _, s := range Parse(text) {
			if _, dup := found[s.ID]; !dup {
				found[s.ID] = s
			}
		}
	}

	out := make([]Section, 0, len(sections))
	for _, def := range sections {
		s, ok := found[def.ID]
		if !ok {
			s = Section{
				ID:       def.ID,
				Title:    def.FallbackTitle(),
				Content:  FallbackContent,
				Order:    def.Order,
				Fallback: true,
			}
		}
		out = append(out, s)
	}
	return out
}
