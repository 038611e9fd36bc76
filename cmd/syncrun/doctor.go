package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/imcbsglobal/syncrun/internal/config"
	"github.com/imcbsglobal/syncrun/internal/ui"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that the sync tool is ready to run",
	Long: `Verify the sync program and its configuration file are present, and
that the configuration carries the keys the sync program requires, without
running the sync itself.`,
	Run: func(cmd *cobra.Command, args []string) {
		settings, err := config.Load(rootViper)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		failed := false

		execOK := checkFile("sync program", settings.ExecPath)
		configOK := checkFile("configuration", settings.ConfigPath)
		failed = !execOK || !configOK

		if configOK {
			sc, err := config.LoadSyncConfig(settings.ConfigPath)
			if err != nil {
				fmt.Printf("%s configuration invalid: %v\n", ui.RenderFail("✗"), err)
				fmt.Println("Expected format:")
				fmt.Println(config.ExpectedFormat)
				failed = true
			} else {
				fmt.Printf("%s dsn: %s\n", ui.RenderPass("✓"), sc.DSN)
				fmt.Printf("%s api_url: %s\n", ui.RenderPass("✓"), sc.APIURL)
			}
		}

		if failed {
			fmt.Printf("\n%s Not ready to sync\n", ui.RenderFail("✗"))
			os.Exit(1)
		}
		fmt.Printf("\n%s Ready to sync\n", ui.RenderPass("✓"))
	},
}

// checkFile reports one existence check and returns whether it passed.
func checkFile(label, path string) bool {
	if info, err := os.Stat(path); err != nil || !info.Mode().IsRegular() {
		fmt.Printf("%s %s: missing (%s)\n", ui.RenderFail("✗"), label, path)
		return false
	}
	fmt.Printf("%s %s: %s\n", ui.RenderPass("✓"), label, path)
	return true
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}
