package main

import (
	"github.com/spf13/cobra"

	"github.com/imcbsglobal/syncrun/internal/config"
	"github.com/imcbsglobal/syncrun/internal/launcher"
)

// version is stamped at build time via -ldflags.
var version = "dev"

// rootViper carries settings for all commands: defaults, optional
// syncrun.yaml, SYNCRUN_* environment variables and flag overrides.
var rootViper = config.NewViper()

var rootCmd = &cobra.Command{
	Use:     "syncrun",
	Version: version,
	Short:   "Launcher for the database sync tool",
	Long: `syncrun checks that the sync program and its configuration file are
present in the working directory, runs the sync to completion and reports
the outcome.

On success the window stays open for a short pause; on failure it stays
open longer and points at the sync log. When the sync program itself
fails, its exit code is passed through so scripted callers can see it.`,
	Run: runLaunch,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("exec", config.DefaultExecPath, "path to the sync program")
	pf.String("config", config.DefaultConfigPath, "path to the sync program's configuration file")
	pf.String("log", config.DefaultLogPath, "log file the sync program writes")

	flags := rootCmd.Flags()
	flags.Duration("timeout", 0, "abort the sync after this long (0 = wait forever)")
	flags.Duration("success-pause", launcher.DefaultSuccessPause, "pause before exiting after a successful sync")
	flags.Duration("failure-pause", launcher.DefaultFailurePause, "pause before exiting after a failed sync")
	flags.Bool("follow", false, "stream the sync log to the console while the sync runs")
	flags.String("debug-log", "", "write the launcher's own debug log to this file")

	cobra.CheckErr(rootViper.BindPFlag("exec", pf.Lookup("exec")))
	cobra.CheckErr(rootViper.BindPFlag("config", pf.Lookup("config")))
	cobra.CheckErr(rootViper.BindPFlag("log", pf.Lookup("log")))
	cobra.CheckErr(rootViper.BindPFlag("timeout", flags.Lookup("timeout")))
	cobra.CheckErr(rootViper.BindPFlag("success_pause", flags.Lookup("success-pause")))
	cobra.CheckErr(rootViper.BindPFlag("failure_pause", flags.Lookup("failure-pause")))
	cobra.CheckErr(rootViper.BindPFlag("follow", flags.Lookup("follow")))
	cobra.CheckErr(rootViper.BindPFlag("debug_log", flags.Lookup("debug-log")))
}
