package recommend

import (
	"fmt"
	"strings"
)

const DefaultSuggestionCount = 3

const (
	noFavorites = "no specific favorite games"
	noBacklog   = "no games in their backlog"
	noDislikes  = "no specific disliked games"
)

// PromptInput carries the game names that describe a user's taste.
type PromptInput struct {
	Favorites []string
	Backlog   []string
	Disliked  []string
}

func joinOr(names []string, fallback string) string {
	if len(names) == 0 {
		return fallback
	}
	return strings.Join(names, ", ")
}

// BuildPrompt renders the request sent to the generative model. The model
// is asked for a fenced JSON array so ParseSuggestions can find it.
func BuildPrompt(in PromptInput, count int) string {
	if count <= 0 {
		count = DefaultSuggestionCount
	}

	var b strings.Builder
	fmt.Fprintf(&b, "The user's favorite games are: %s.\n", joinOr(in.Favorites, noFavorites))
	fmt.Fprintf(&b, "The user's backlog contains: %s.\n", joinOr(in.Backlog, noBacklog))
	fmt.Fprintf(&b, "The user dislikes: %s.\n\n", joinOr(in.Disliked, noDislikes))
	fmt.Fprintf(&b, "Based on these preferences, recommend %d games the user has not mentioned.\n", count)
	b.WriteString("For each recommendation include:\n")
	b.WriteString(`- "name": the game's title.` + "\n")
	b.WriteString(`- "genre": its primary genre.` + "\n")
	b.WriteString(`- "igdb_link": the game's IGDB page, e.g. "https://www.igdb.com/games/game-slug" (omit if unknown).` + "\n")
	b.WriteString(`- "reasoning": one or two sentences tying the game to the user's preferences.` + "\n\n")
	b.WriteString("Reply with a single JSON array inside a ```json fenced code block and nothing else inside the block. Example:\n")
	b.WriteString("```json\n")
	b.WriteString(`[{"name": "Game Title", "genre": "RPG", "igdb_link": "https://www.igdb.com/games/game-title", "reasoning": "You enjoyed similar RPGs."}]` + "\n")
	b.WriteString("```\n")
	return b.String()
}
