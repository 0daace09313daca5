package main

import (
	"fmt"
	"os"

	"github.com/lucas-bats/timetraveler/src/config"
)

// ConfigCmd manages the user configuration file.
type ConfigCmd struct {
	Init ConfigInitCmd `cmd:"" help:"Write a default config file to edit"`
	Path ConfigPathCmd `cmd:"" help:"Print the config file location"`
}

// ConfigInitCmd writes the default configuration to the user config path.
type ConfigInitCmd struct {
	Force bool `help:"Overwrite an existing config file"`
}

func (c *ConfigInitCmd) Run(cli *CLI) error {
	path := config.UserConfigPath()
	if !c.Force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists at %s (use --force to overwrite)", path)
		}
	}

	if err := config.NewLoader().SaveFile(config.DefaultConfig(), path); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

// ConfigPathCmd prints where the user config is read from.
type ConfigPathCmd struct{}

func (c *ConfigPathCmd) Run(cli *CLI) error {
	fmt.Println(config.UserConfigPath())
	return nil
}
