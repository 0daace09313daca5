package genclient

import (
	"fmt"
	"strings"
)

// languageName maps a locale code to the language the model is instructed to
// answer in. Unknown codes fall back to English.
func languageName(code string) string {
	switch code {
	case "pt":
		return "Portuguese"
	default:
		return "English"
	}
}

// figureSystemPrompt builds the persona instruction for a single historical
// figure. The figure answers in first person and stays in period.
func figureSystemPrompt(figureName, language string) string {
	return fmt.Sprintf(
		"You are %s, speaking in first person from your own time and experience. "+
			"Answer the user's questions as yourself, with the knowledge, manner and "+
			"convictions you held in life. Do not mention being an AI or break character. "+
			"Keep answers to a few paragraphs at most. Respond in %s.",
		figureName, languageName(language))
}

// eventSystemPrompt builds the round-table instruction for a historical
// event: each participant speaks in turn, prefixed with their name.
func eventSystemPrompt(eventID string, participants []string, eventContext, language string) string {
	var b strings.Builder
	fmt.Fprintf(&b,
		"You are moderating a round-table conversation about the historical event %q. ", eventID)
	if len(participants) > 0 {
		fmt.Fprintf(&b, "The participants are: %s. ", strings.Join(participants, ", "))
		b.WriteString("For each reply, have one or more participants speak in first person, " +
			"prefixing each contribution with the speaker's name followed by a colon. ")
	}
	if eventContext != "" {
		fmt.Fprintf(&b, "Historical context: %s ", eventContext)
	}
	b.WriteString("Stay in period, do not mention being an AI, and keep the exchange lively but brief. ")
	fmt.Fprintf(&b, "Respond in %s.", languageName(language))
	return b.String()
}
