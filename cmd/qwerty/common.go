package main

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"
	"github.com/spf13/pflag"

	"github.com/1broseidon/qwerty/internal/config"
	"github.com/1broseidon/qwerty/internal/logger"
	"github.com/1broseidon/qwerty/internal/platform"
	"github.com/1broseidon/qwerty/internal/xdgpath"
)

const logFileName = "qwerty.log"

// globalOptions are the persistent flags shared by every command.
type globalOptions struct {
	configPath string
	debug      bool
	logFile    string
}

func addGlobalFlags(flags *pflag.FlagSet, opts *globalOptions) {
	flags.StringVar(&opts.configPath, "config", "", "Settings file (default: ~/.config/qwerty-launcher/qwerty.yaml)")
	flags.BoolVar(&opts.debug, "debug", false, "Enable debug logging")
	flags.StringVar(&opts.logFile, "log-file", "", "Also write logs to this file (default with --debug: ~/.local/state/qwerty-launcher/qwerty.log)")
}

// newBackend is replaced in tests.
var newBackend = func() platform.Backend {
	return platform.NewLazyLinuxBackend()
}

func closeBackend(b platform.Backend) {
	if lb, ok := b.(*platform.LinuxBackend); ok {
		lb.Disconnect()
	}
}

func setupLogger(opts *globalOptions) (*logger.Logger, error) {
	level := zerolog.InfoLevel
	if opts.debug {
		level = zerolog.DebugLevel
	}
	logOpts := []logger.Option{logger.WithConsole(), logger.WithLevel(level)}
	path, err := logFilePath(opts)
	if err != nil {
		return nil, err
	}
	if path != "" {
		logOpts = append(logOpts, logger.WithFile(path))
	}
	return logger.New(logOpts...)
}

// logFilePath returns the file logs are mirrored to, or "" for console only.
// Debug runs without --log-file write to the state directory.
func logFilePath(opts *globalOptions) (string, error) {
	if opts.logFile != "" {
		return xdgpath.ExpandHome(opts.logFile), nil
	}
	if !opts.debug {
		return "", nil
	}
	dir, err := xdgpath.StateDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve log directory: %w", err)
	}
	return filepath.Join(dir, logFileName), nil
}

func openStore(opts *globalOptions) (*config.Store, error) {
	path := opts.configPath
	if path == "" {
		p, err := xdgpath.ConfigPath()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve settings path: %w", err)
		}
		path = p
	}
	return config.Open(xdgpath.ExpandHome(path))
}
