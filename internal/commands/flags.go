package commands

import (
	"os"
	"path/filepath"
	"runtime"

	"github.com/colonyops/thinkthread/internal/core/config"
	"github.com/colonyops/thinkthread/internal/core/notify"
	"github.com/colonyops/thinkthread/internal/social"
)

type Flags struct {
	LogLevel     string
	LogFile      string
	ConfigPath   string
	APIURL       string
	Token        string
	ProfilerPort int

	// Config is loaded in the Before hook and available to all commands
	Config *config.Config

	// App is the social client shared by every command
	App *social.App

	// History records every toast shown during the run
	History *notify.History

	// StopPresenter detaches the stderr toast printer. The TUI calls it
	// before taking over the screen.
	StopPresenter func()
}

// DefaultConfigPath returns the default config file path using XDG_CONFIG_HOME.
func DefaultConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "thinkthread", "config.yaml")
}

// DefaultLogFile returns the default log file path using the system's state directory.
// On macOS: ~/Library/Logs/thinkthread/thinkthread.log
// On Linux: $XDG_STATE_HOME/thinkthread/thinkthread.log (defaults to ~/.local/state)
func DefaultLogFile() string {
	stateHome := os.Getenv("XDG_STATE_HOME")
	if stateHome != "" {
		return filepath.Join(stateHome, "thinkthread", "thinkthread.log")
	}

	home, _ := os.UserHomeDir()

	if runtime.GOOS == "darwin" {
		return filepath.Join(home, "Library", "Logs", "thinkthread", "thinkthread.log")
	}

	return filepath.Join(home, ".local", "state", "thinkthread", "thinkthread.log")
}
