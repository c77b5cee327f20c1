package cmd

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spiffcs/dday/config"
)

// NewCmdConfig creates the config command with subcommands.
func NewCmdConfig() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or edit the countdown configuration",
		Long: `Inspect or edit the countdown configuration.

Without a subcommand, prints the labels, repository and output settings a
run would start from, before any command-line flags are applied.

Subcommands:
  init      Write a starter file with the default D-5 to D-0 countdown
  path      Show where the global and local files live
  defaults  Print every setting with its built-in value
  show      Same as bare 'dday config'
  set       Change one setting in the global file`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, args, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "yaml", "Output format (yaml, json)")

	cmd.AddCommand(NewCmdConfigInit())
	cmd.AddCommand(NewCmdConfigPath())
	cmd.AddCommand(NewCmdConfigDefaults())
	cmd.AddCommand(NewCmdConfigShow())
	cmd.AddCommand(NewCmdConfigSet())

	return cmd
}

// NewCmdConfigInit creates the config init subcommand.
func NewCmdConfigInit() *cobra.Command {
	var global, local bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a starter countdown config",
		Long: `Write a starter config holding the default D-5 to D-0 countdown.

--global writes ~/.config/dday/config.yaml, used by every run on this machine.
--local writes ./.dday.yaml, which a repository can commit next to its
workflow so local runs and scheduled runs share one label list.
With neither flag you are asked which one to write.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigInit(global, local)
		},
	}

	cmd.Flags().BoolVar(&global, "global", false, "Write ~/.config/dday/config.yaml")
	cmd.Flags().BoolVar(&local, "local", false, "Write ./.dday.yaml in the current directory")

	return cmd
}

// NewCmdConfigPath creates the config path subcommand.
func NewCmdConfigPath() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Show where config files are read from",
		Long:  `Show the global and local config file paths a run reads, and whether each exists.`,
		RunE:  runConfigPath,
	}
}

// NewCmdConfigDefaults creates the config defaults subcommand.
func NewCmdConfigDefaults() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "defaults",
		Short: "Print every setting with its built-in value",
		Long: `Print every setting with its built-in value, including the default
D-0 to D-5 label list and a placeholder repository.

Redirect it to start a fully spelled-out local file:
  dday config defaults > .dday.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigDefaults(outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "yaml", "Output format (yaml, json)")

	return cmd
}

// NewCmdConfigShow creates the config show subcommand.
func NewCmdConfigShow() *cobra.Command {
	var outputFormat string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the settings a run would start from",
		Long: `Show the settings a run would start from: built-in values, then the global
file, then ./.dday.yaml, then INPUT_DDAY-LABELS and GITHUB_REPOSITORY.
Command-line flags are applied on top of this at run time.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigShow(cmd, args, outputFormat)
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", "yaml", "Output format (yaml, json)")

	return cmd
}

// NewCmdConfigSet creates the config set subcommand.
func NewCmdConfigSet() *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set a configuration value",
		Long: `Set a configuration value in the global config file. Available keys:
  labels      - Countdown labels, deadline first (e.g. D-0,D-1,D-2)
  repo        - Repository as owner/name
  per_page    - Pull requests fetched per API page (1-100)
  format      - Default output format (table, json, yaml, markdown)

The GitHub token is never stored; set GITHUB_TOKEN instead.`,
		Args: cobra.ExactArgs(2),
		RunE: runConfigSet,
	}
}

func runConfigInit(global, local bool) error {
	if global && local {
		return fmt.Errorf("cannot specify both --global and --local")
	}

	paths := config.GetConfigPaths()
	var targetPath string
	var location string

	if global {
		targetPath = paths.GlobalPath
		location = "global"
	} else if local {
		targetPath = paths.LocalPath
		location = "local"
	} else {
		fmt.Println("Which countdown config should be written?")
		fmt.Printf("  [1] Global (%s) - every run on this machine\n", paths.GlobalPath)
		fmt.Printf("  [2] Local (%s) - runs started from this directory\n", paths.LocalPath)
		fmt.Print("Choose [1/2]: ")

		reader := bufio.NewReader(os.Stdin)
		choice, err := reader.ReadString('\n')
		if err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}

		choice = strings.TrimSpace(choice)
		switch choice {
		case "1":
			targetPath = paths.GlobalPath
			location = "global"
		case "2":
			targetPath = paths.LocalPath
			location = "local"
		default:
			return fmt.Errorf("invalid choice: %s (must be 1 or 2)", choice)
		}
		fmt.Println()
	}

	if _, err := os.Stat(targetPath); err == nil {
		return fmt.Errorf("%s already exists; edit it directly or use 'dday config set labels ...'", targetPath)
	}

	if err := config.SaveTo(targetPath, config.MinimalConfig()); err != nil {
		return err
	}

	fmt.Printf("Wrote %s countdown config to %s\n\n", location, targetPath)
	fmt.Println("The labels list runs from the deadline (D-0) outward.")
	fmt.Println("Rename them to match the labels on your repository, then try 'dday --dry-run'.")

	return nil
}

func runConfigPath(_ *cobra.Command, _ []string) error {
	paths := config.GetConfigPaths()

	fmt.Println("Countdown config files:")
	fmt.Println()

	globalStatus := "not found"
	if paths.GlobalExists {
		globalStatus = "exists"
	}
	fmt.Printf("  Global: %s (%s)\n", paths.GlobalPath, globalStatus)

	localStatus := "not found"
	if paths.LocalExists {
		localStatus = "exists"
	}
	fmt.Printf("  Local:  %s (%s)\n", paths.LocalPath, localStatus)

	fmt.Println()
	fmt.Println("Precedence: built-in < global < local < environment < flags")

	return nil
}

func runConfigDefaults(format string) error {
	return printConfig(config.DefaultConfig(), format)
}

func runConfigShow(_ *cobra.Command, _ []string, format string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.ApplyEnv(os.Getenv); err != nil {
		return err
	}

	return printConfig(cfg, format)
}

func printConfig(cfg *config.Config, format string) error {
	switch format {
	case "yaml":
		yamlStr, err := cfg.ToYAML()
		if err != nil {
			return err
		}
		fmt.Print(yamlStr)
	case "json":
		data, err := json.MarshalIndent(cfg, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal config to JSON: %w", err)
		}
		fmt.Println(string(data))
	default:
		return fmt.Errorf("invalid format: %s (must be yaml or json)", format)
	}

	return nil
}

func runConfigSet(_ *cobra.Command, args []string) error {
	// Only the global file is rewritten; local and environment values stay out of it.
	cfg, err := config.LoadFile(config.ConfigPath())
	if err != nil {
		return err
	}

	key, value := args[0], args[1]
	if err := cfg.Set(key, value); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return err
	}

	fmt.Printf("Set %s to %s in %s.\n", key, value, config.ConfigPath())
	return nil
}
