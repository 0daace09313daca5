package main

import (
	"fmt"
	"strings"

	"github.com/lucas-bats/timetraveler/src/histdata"
	"github.com/lucas-bats/timetraveler/src/theme"
)

// SubjectsCmd lists the available conversation subjects.
type SubjectsCmd struct{}

func (c *SubjectsCmd) Run(cli *CLI) error {
	fmt.Println(theme.SubjectStyle.Render("Characters"))
	for _, ch := range histdata.Characters() {
		fmt.Printf("  %-22s %s\n", ch.ID, theme.MutedStyle.Render(ch.Name+" - "+ch.Era))
	}

	fmt.Println()
	fmt.Println(theme.SubjectStyle.Render("Events"))
	for _, e := range histdata.Events() {
		participants := strings.Join(e.ParticipantNames(), ", ")
		fmt.Printf("  %-28s %s\n", e.ID, theme.MutedStyle.Render(e.Name+" - "+participants))
	}

	fmt.Println()
	fmt.Println(theme.MutedStyle.Render("start one with: timetraveler chat character cleopatra"))
	return nil
}
