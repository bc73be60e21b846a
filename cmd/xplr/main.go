// Command xplr is a hackable terminal file explorer. Keys feed a mode
// engine, the mode engine emits messages, and every mutating action is a
// shell hook talking back over the session pipes.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"xplr/internal/app"
	"xplr/internal/config"
	"xplr/internal/explorer"
	"xplr/internal/log"
	"xplr/internal/msg"
	"xplr/internal/pipe"
	"xplr/internal/runtime"
	"xplr/internal/ui"
)

func main() {
	var (
		configPath string
		readOnly   bool
		debug      bool
	)

	rootCmd := &cobra.Command{
		Use:           "xplr [dir]",
		Short:         "A hackable, message-driven terminal file explorer",
		Long:          "xplr explores directories through a configurable mode engine.\nEvery key press becomes a message; every action can be rebound or scripted.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			startDir := ""
			if len(args) > 0 {
				startDir = args[0]
			}
			return run(startDir, configPath, readOnly, debug)
		},
	}
	rootCmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the config file")
	rootCmd.Flags().BoolVar(&readOnly, "read-only", false, "disable every mutating action")
	rootCmd.Flags().BoolVar(&debug, "debug", false, "write debug logs into the session directory")

	rootCmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("xplr " + runtime.Version)
		},
	})

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(2)
	}
}

func defaultConfigPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "xplr", "config.yml")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "xplr", "config.yml")
}

func run(startDir, configPath string, readOnly, debug bool) error {
	if configPath == "" {
		configPath = defaultConfigPath()
	}
	cfg, patchOlder, err := config.Load(configPath, runtime.Version)
	if err != nil {
		return err
	}
	if readOnly || cfg.ReadOnly() {
		cfg = cfg.Sanitized(true)
	}

	if startDir == "" {
		startDir, err = os.Getwd()
		if err != nil {
			return err
		}
	}

	session, err := pipe.NewSession(os.Getpid())
	if err != nil {
		return err
	}
	defer session.Close()

	log.SetDebug(debug)
	log.SetFile(filepath.Join(session.Path, "debug.log"))

	a, err := app.New(cfg, runtime.Version, startDir)
	if err != nil {
		return err
	}
	if patchOlder {
		a.Handle(msg.LogInfo("config " + configPath + " was written for an older patch release; please review"))
	}

	ex := explorer.New()
	defer ex.Close()
	watcher, err := explorer.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	rt := runtime.New(os.Getpid(), session.Path)
	model := ui.New(a, session, rt, ex, watcher)

	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithOutput(os.Stderr))
	if _, err := program.Run(); err != nil {
		return err
	}

	outcome := model.Outcome()
	if outcome == nil {
		return nil
	}
	for _, line := range outcome.Output {
		fmt.Println(line)
	}
	if outcome.ExitCode != 0 {
		os.Exit(outcome.ExitCode)
	}
	return nil
}
