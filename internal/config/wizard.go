package config

import (
	"fmt"
	"strconv"

	"github.com/manifoldco/promptui"
)

// RunWizard runs an interactive wizard and returns the resulting Config.
// It also saves the config to .orgchart.yml.
func RunWizard() (*Config, error) {
	fmt.Println("Welcome to orgchart! Let's configure your workspace.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Directory export location.
	snapshotPrompt := promptui.Prompt{
		Label:   "Path (or glob) of the directory export",
		Default: cfg.SnapshotPath,
	}
	snapshotPath, err := snapshotPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("snapshot path: %w", err)
	}
	cfg.SnapshotPath = snapshotPath

	// 2. Channel lookup file.
	channelsPrompt := promptui.Prompt{
		Label:   "Path of the channel lookup file (empty to skip)",
		Default: cfg.ChannelsPath,
	}
	channelsPath, err := channelsPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("channels path: %w", err)
	}
	cfg.ChannelsPath = channelsPath

	// 3. Server port.
	portPrompt := promptui.Prompt{
		Label:   "HTTP server port",
		Default: strconv.Itoa(cfg.Server.Port),
		Validate: func(s string) error {
			n, err := strconv.Atoi(s)
			if err != nil || n < 1 || n > 65535 {
				return fmt.Errorf("port must be a number between 1 and 65535")
			}
			return nil
		},
	}
	portStr, err := portPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("server port: %w", err)
	}
	cfg.Server.Port, _ = strconv.Atoi(portStr)

	if err := cfg.Save(".orgchart.yml"); err != nil {
		return nil, err
	}

	fmt.Println()
	fmt.Println("Configuration written to .orgchart.yml")
	return cfg, nil
}
