package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/imcbsglobal/syncrun/internal/config"
	"github.com/imcbsglobal/syncrun/internal/execrun"
	"github.com/imcbsglobal/syncrun/internal/launcher"
	"github.com/imcbsglobal/syncrun/internal/logging"
	"github.com/imcbsglobal/syncrun/internal/logtail"
	"github.com/imcbsglobal/syncrun/internal/ui"
)

// runLaunch is the bare-invocation path: the double-click equivalent of
// the original batch launcher.
func runLaunch(cmd *cobra.Command, args []string) {
	settings, err := config.Load(rootViper)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger, logCloser := logging.New(settings.DebugLog)

	l, err := launcher.New(launcher.Config{
		ExecPath:     settings.ExecPath,
		ConfigPath:   settings.ConfigPath,
		LogPath:      settings.LogPath,
		SuccessPause: settings.SuccessPause,
		FailurePause: settings.FailurePause,
		Timeout:      settings.Timeout,
		Out:          os.Stdout,
		Runner:       execrun.New(),
		Presenter:    ui.NewConsole(),
		Logger:       logger,
	})
	if err != nil {
		logCloser.Close()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(cmd.Context())

	if settings.Follow {
		follower := logtail.New(settings.LogPath, os.Stdout)
		go func() {
			if err := follower.Follow(ctx); err != nil {
				logger.Printf("log follow stopped: %v", err)
			}
		}()
	}

	result := l.Run(ctx)
	cancel()

	// Closed explicitly: os.Exit below would skip a defer.
	logCloser.Close()

	if result.ExitCode != launcher.ExitOK {
		os.Exit(result.ExitCode)
	}
}
