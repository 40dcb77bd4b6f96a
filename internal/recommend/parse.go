package recommend

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/goccy/go-json"
)

var (
	ErrNoFencedBlock = errors.New("no ```json fenced block in model output")
	ErrInvalidJSON   = errors.New("fenced block is not valid JSON")
	ErrNotAList      = errors.New("fenced JSON is not a list")
)

var (
	fencedJSON   = regexp.MustCompile("```json\\s*([\\s\\S]*?)\\s*```")
	markdownLink = regexp.MustCompile(`^\[([^\]]*)\]\(([^)]*)\)$`)
)

// Suggestion is one structured recommendation extracted from model output.
type Suggestion struct {
	Name      string `json:"game_name"`
	Genre     string `json:"genre"`
	IGDBLink  string `json:"igdb_link,omitempty"`
	Reasoning string `json:"reasoning"`
}

// ExtractFencedJSON returns the body of the first ```json block in raw.
func ExtractFencedJSON(raw string) (string, error) {
	m := fencedJSON.FindStringSubmatch(raw)
	if m == nil {
		return "", ErrNoFencedBlock
	}
	return m[1], nil
}

// ParseSuggestions locates the fenced JSON array in raw and validates it
// entry by entry. The name is read from "name", then "title", then
// "game_name"; entries missing a name, genre or reasoning are skipped. On any structural failure it returns an empty, non-nil slice and
// the reason; callers keep the raw text either way.
func ParseSuggestions(raw string) ([]Suggestion, error) {
	out := []Suggestion{}

	body, err := ExtractFencedJSON(raw)
	if err != nil {
		return out, err
	}

	var payload interface{}
	if err := json.Unmarshal([]byte(body), &payload); err != nil {
		return out, fmt.Errorf("%w: %v", ErrInvalidJSON, err)
	}
	items, ok := payload.([]interface{})
	if !ok {
		return out, ErrNotAList
	}

	for _, item := range items {
		fields, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		s := Suggestion{
			Name:      firstField(fields, "name", "title", "game_name"),
			Genre:     stringField(fields, "genre"),
			IGDBLink:  normalizeLink(stringField(fields, "igdb_link")),
			Reasoning: stringField(fields, "reasoning"),
		}
		if s.Name == "" || s.Genre == "" || s.Reasoning == "" {
			continue
		}
		out = append(out, s)
	}
	return out, nil
}

// firstField returns the first non-empty string among keys.
func firstField(fields map[string]interface{}, keys ...string) string {
	for _, key := range keys {
		if v := stringField(fields, key); v != "" {
			return v
		}
	}
	return ""
}

func stringField(fields map[string]interface{}, key string) string {
	v, ok := fields[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(v)
}

// normalizeLink unwraps "[url](url)" markdown that models sometimes echo.
func normalizeLink(link string) string {
	if m := markdownLink.FindStringSubmatch(link); m != nil {
		if m[2] != "" {
			return strings.TrimSpace(m[2])
		}
		return strings.TrimSpace(m[1])
	}
	return link
}
