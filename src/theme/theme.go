// Package theme holds the lipgloss styles for the chat transcript.
package theme

import "github.com/charmbracelet/lipgloss"

var (
	// SubjectStyle renders the subject header line.
	SubjectStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#d4a017"))

	// UserStyle renders the user's side of the transcript.
	UserStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5fafff"))

	// AssistantStyle renders the subject's replies.
	AssistantStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff"))

	// FavoriteMark renders the favorite indicator.
	FavoriteMark = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffd700")).
			SetString("★")

	// MutedStyle renders hints, suggestions and timestamps.
	MutedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#808080"))

	// ErrorStyle renders error notifications.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff5f5f"))
)
