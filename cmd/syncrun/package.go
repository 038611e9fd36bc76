package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/imcbsglobal/syncrun/internal/config"
	"github.com/imcbsglobal/syncrun/internal/dist"
	"github.com/imcbsglobal/syncrun/internal/ui"
)

var packageCmd = &cobra.Command{
	Use:   "package",
	Short: "Assemble the distribution folder",
	Long: `Copy the sync program, its configuration file and this launcher into
a folder ready to hand to end users, together with an empty log file and a
README.`,
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := config.Load(rootViper)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		sourceDir, _ := cmd.Flags().GetString("source")
		outputDir, _ := cmd.Flags().GetString("output")
		withLauncher, _ := cmd.Flags().GetBool("with-launcher")

		opts := dist.Options{
			SourceDir:  sourceDir,
			OutputDir:  outputDir,
			ExecName:   filepath.Base(settings.ExecPath),
			ConfigName: filepath.Base(settings.ConfigPath),
			LogName:    filepath.Base(settings.LogPath),
		}

		if withLauncher {
			self, err := os.Executable()
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error locating launcher binary: %v\n", err)
				os.Exit(1)
			}
			opts.LauncherPath = self
		}

		manifest, err := dist.Build(opts)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("%s Distribution folder created: %s\n", ui.RenderPass("✓"), manifest.Dir)
		for _, name := range manifest.Files {
			fmt.Printf("   %s\n", name)
		}
	},
}

func init() {
	packageCmd.Flags().String("source", ".", "folder containing the sync program and its configuration")
	packageCmd.Flags().String("output", "sync_tool", "folder to assemble")
	packageCmd.Flags().Bool("with-launcher", true, "include this launcher binary in the folder")
	rootCmd.AddCommand(packageCmd)
}
