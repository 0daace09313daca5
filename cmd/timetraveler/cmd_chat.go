package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/lucas-bats/timetraveler/src/chat"
	"github.com/lucas-bats/timetraveler/src/histdata"
	"github.com/lucas-bats/timetraveler/src/notify"
	"github.com/lucas-bats/timetraveler/src/session"
	"github.com/lucas-bats/timetraveler/src/theme"
)

// ChatCmd starts an interactive conversation with one subject.
type ChatCmd struct {
	Kind string `arg:"" help:"Subject kind: character or event"`
	ID   string `arg:"" help:"Subject id (see 'timetraveler subjects')"`
}

func (c *ChatCmd) Run(cli *CLI) error {
	// Log to a file so slog output does not interleave with the transcript.
	logger := createChatLogger(cli.LogLevel)

	application, err := buildApp(cli, logger)
	if err != nil {
		return err
	}
	defer application.Close()

	kind, err := parseSubjectKind(c.Kind)
	if err != nil {
		return err
	}

	controller, err := application.MountConversation(kind, c.ID)
	if errors.Is(err, histdata.ErrNotFound) {
		return fmt.Errorf("no %s named %q, run 'timetraveler subjects' for the full list", c.Kind, c.ID)
	}
	if err != nil {
		return err
	}
	defer controller.Close()

	cancelToasts := application.Notifier.Subscribe(func(n notify.Notification) {
		if n.Level == notify.LevelError {
			fmt.Println(theme.ErrorStyle.Render(n.Title + ": " + n.Message))
		} else {
			fmt.Println(theme.MutedStyle.Render(n.Title + ": " + n.Message))
		}
	})
	defer cancelToasts()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	printHeader(controller)
	for _, m := range controller.Messages() {
		printMessage(controller, m)
	}

	scanner := bufio.NewScanner(os.Stdin)
	prompt := theme.MutedStyle.Render("you> ")
	for {
		fmt.Print(prompt)
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "/") {
			if quit := runSlashCommand(ctx, controller, line); quit {
				break
			}
			continue
		}

		before := len(controller.Messages())
		if err := controller.SendMessage(ctx, line); err != nil {
			// Already rolled back and toasted; nothing else to do here.
			continue
		}
		messages := controller.Messages()
		for _, m := range messages[min(before+1, len(messages)):] {
			printMessage(controller, m)
		}
	}

	return scanner.Err()
}

// runSlashCommand handles the REPL's local commands. Returns true to quit.
func runSlashCommand(ctx context.Context, controller *chat.Controller, line string) bool {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return true
	case "/clear":
		controller.ClearConversation()
		fmt.Println(theme.MutedStyle.Render("conversation cleared"))
	case "/suggest":
		suggestions := controller.Suggestions()
		if len(fields) == 2 {
			if n, err := strconv.Atoi(fields[1]); err == nil && n >= 1 && n <= len(suggestions) {
				fmt.Println(theme.UserStyle.Render("you: " + suggestions[n-1]))
				if err := controller.UseSuggestion(ctx, suggestions[n-1]); err == nil {
					messages := controller.Messages()
					if len(messages) > 0 {
						printMessage(controller, messages[len(messages)-1])
					}
				}
				return false
			}
		}
		for i, s := range suggestions {
			fmt.Println(theme.MutedStyle.Render(fmt.Sprintf("  %d. %s", i+1, s)))
		}
	case "/fav":
		messages := controller.Messages()
		if len(fields) == 2 {
			if n, err := strconv.Atoi(fields[1]); err == nil && n >= 1 && n <= len(messages) {
				controller.ToggleFavorite(messages[n-1].ID)
				return false
			}
		}
		fmt.Println(theme.MutedStyle.Render("usage: /fav <message number>"))
	case "/favorites":
		for _, m := range controller.FavoriteMessages() {
			printMessage(controller, m)
		}
	default:
		fmt.Println(theme.MutedStyle.Render("commands: /suggest [n], /fav <n>, /favorites, /clear, /quit"))
	}
	return false
}

func printHeader(controller *chat.Controller) {
	subject := controller.Subject()
	fmt.Println(theme.SubjectStyle.Render(subject.DisplayName()))

	switch s := subject.(type) {
	case *histdata.Character:
		fmt.Println(theme.MutedStyle.Render(s.Era + " · " + s.Years))
		for _, conn := range histdata.ConnectionsFor(s.ID) {
			fmt.Println(theme.MutedStyle.Render("linked: " + conn.Relationship))
		}
	case *histdata.Event:
		fmt.Println(theme.MutedStyle.Render(s.Year + " · with " + strings.Join(s.ParticipantNames(), ", ")))
	}
	if suggestions := controller.Suggestions(); len(suggestions) > 0 {
		fmt.Println(theme.MutedStyle.Render("try: " + suggestions[0] + "  (/suggest for more)"))
	}
	fmt.Println()
}

func printMessage(controller *chat.Controller, m session.Message) {
	mark := "  "
	if m.Favorited {
		mark = theme.FavoriteMark.String() + " "
	}
	switch m.Role {
	case session.RoleUser:
		fmt.Println(mark + theme.UserStyle.Render("you: "+m.Content))
	default:
		name := controller.Subject().DisplayName()
		fmt.Println(mark + theme.AssistantStyle.Render(name+": "+m.Content))
	}
}
