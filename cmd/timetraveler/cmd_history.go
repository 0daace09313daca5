package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/afero"

	"github.com/lucas-bats/timetraveler/src/histdata"
	"github.com/lucas-bats/timetraveler/src/session"
)

// HistoryCmd inspects, clears or exports one conversation's history.
type HistoryCmd struct {
	Show   HistoryShowCmd   `cmd:"" help:"Print the stored conversation"`
	Clear  HistoryClearCmd  `cmd:"" help:"Delete the stored conversation"`
	Export HistoryExportCmd `cmd:"" help:"Write the conversation as Markdown"`
}

type historySubjectArgs struct {
	Kind string `arg:"" help:"Subject kind: character or event"`
	ID   string `arg:"" help:"Subject id"`
}

func (a *historySubjectArgs) mount(cli *CLI) (*mountedHistory, error) {
	logger := createCLILogger(cli.LogLevel)
	application, err := buildApp(cli, logger)
	if err != nil {
		return nil, err
	}

	kind, err := parseSubjectKind(a.Kind)
	if err != nil {
		application.Close()
		return nil, err
	}

	subject, err := histdata.ResolveSubject(kind, a.ID)
	if errors.Is(err, histdata.ErrNotFound) {
		application.Close()
		return nil, fmt.Errorf("no %s named %q", a.Kind, a.ID)
	}
	if err != nil {
		application.Close()
		return nil, err
	}

	history := session.Open(application.Store, a.Kind, a.ID, logger)
	return &mountedHistory{subject: subject, history: history, close: func() {
		history.Close()
		application.Close()
	}}, nil
}

type mountedHistory struct {
	subject histdata.Subject
	history *session.History
	close   func()
}

// HistoryShowCmd prints the stored messages.
type HistoryShowCmd struct {
	historySubjectArgs
}

func (c *HistoryShowCmd) Run(cli *CLI) error {
	m, err := c.mount(cli)
	if err != nil {
		return err
	}
	defer m.close()

	messages := m.history.Messages()
	if len(messages) == 0 {
		fmt.Println("no conversation stored")
		return nil
	}
	for _, msg := range messages {
		speaker := "you"
		if msg.Role == session.RoleAssistant {
			speaker = m.subject.DisplayName()
		}
		fav := ""
		if msg.Favorited {
			fav = " ★"
		}
		fmt.Printf("[%s]%s %s: %s\n", msg.CreatedAt.Format("2006-01-02 15:04"), fav, speaker, msg.Content)
	}
	return nil
}

// HistoryClearCmd deletes the stored messages.
type HistoryClearCmd struct {
	historySubjectArgs
}

func (c *HistoryClearCmd) Run(cli *CLI) error {
	m, err := c.mount(cli)
	if err != nil {
		return err
	}
	defer m.close()

	m.history.Set([]session.Message{})
	fmt.Printf("cleared conversation with %s\n", m.subject.DisplayName())
	return nil
}

// HistoryExportCmd writes the conversation to a Markdown file.
type HistoryExportCmd struct {
	historySubjectArgs
	Output string `short:"o" help:"Output file (default <kind>-<id>.md)"`
}

func (c *HistoryExportCmd) Run(cli *CLI) error {
	m, err := c.mount(cli)
	if err != nil {
		return err
	}
	defer m.close()

	path := c.Output
	if path == "" {
		path = fmt.Sprintf("%s-%s.md", c.Kind, c.ID)
	}

	if err := exportTranscript(afero.NewOsFs(), path, m.subject, m.history.Messages()); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

// exportTranscript renders messages as a Markdown transcript on fs.
func exportTranscript(fs afero.Fs, path string, subject histdata.Subject, messages []session.Message) error {
	var b strings.Builder
	fmt.Fprintf(&b, "# Conversation with %s\n\n", subject.DisplayName())

	if event, ok := subject.(*histdata.Event); ok {
		fmt.Fprintf(&b, "Participants: %s\n\n", strings.Join(event.ParticipantNames(), ", "))
	}

	for _, m := range messages {
		speaker := "You"
		if m.Role == session.RoleAssistant {
			speaker = subject.DisplayName()
		}
		fav := ""
		if m.Favorited {
			fav = " ★"
		}
		fmt.Fprintf(&b, "**%s**%s (%s):\n\n%s\n\n", speaker, fav, m.CreatedAt.Format("2006-01-02 15:04"), m.Content)
	}

	return afero.WriteFile(fs, path, []byte(b.String()), 0644)
}
