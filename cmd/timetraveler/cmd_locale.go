package main

import (
	"fmt"
)

// LocaleCmd shows or sets the persisted response language.
type LocaleCmd struct {
	Get LocaleGetCmd `cmd:"" default:"1" help:"Show the current response language"`
	Set LocaleSetCmd `cmd:"" help:"Set the response language (en or pt)"`
}

type LocaleGetCmd struct{}

func (c *LocaleGetCmd) Run(cli *CLI) error {
	application, err := buildApp(cli, createCLILogger(cli.LogLevel))
	if err != nil {
		return err
	}
	defer application.Close()

	fmt.Println(application.Locale())
	return nil
}

type LocaleSetCmd struct {
	Locale string `arg:"" enum:"en,pt" help:"Response language"`
}

func (c *LocaleSetCmd) Run(cli *CLI) error {
	application, err := buildApp(cli, createCLILogger(cli.LogLevel))
	if err != nil {
		return err
	}
	defer application.Close()

	application.SetLocale(c.Locale)
	fmt.Printf("response language set to %s\n", c.Locale)
	return nil
}
