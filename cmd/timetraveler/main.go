package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
)

// CLI represents the main CLI structure
type CLI struct {
	APIKey   string `env:"TIMETRAVELER_API_KEY" help:"Generation service API key"`
	BaseURL  string `help:"Custom API base URL"`
	Model    string `help:"Override the chat model"`
	LogLevel string `default:"warn" help:"Log level"`

	Chat     ChatCmd     `cmd:"" help:"Talk with a historical figure or event"`
	Subjects SubjectsCmd `cmd:"" help:"List available figures and events"`
	History  HistoryCmd  `cmd:"" help:"Inspect, clear or export a conversation"`
	Locale   LocaleCmd   `cmd:"" help:"Show or set the response language"`
	Config   ConfigCmd   `cmd:"" help:"Manage the configuration file"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("timetraveler"),
		kong.Description("Chat with history's greatest figures and events"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
	)

	err := ctx.Run(&cli)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
