// Package dist assembles the distribution folder handed to end users:
// the sync program, its configuration file, optionally the launcher
// binary, an empty log file and a README.
package dist

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Options configures a distribution build.
type Options struct {
	// SourceDir holds the sync program and its configuration file.
	// Defaults to the working directory.
	SourceDir string

	// OutputDir is the folder to assemble. Created if needed; existing
	// files are overwritten. Defaults to "sync_tool".
	OutputDir string

	// ExecName, ConfigName and LogName override the stock file names.
	ExecName   string
	ConfigName string
	LogName    string

	// LauncherPath, when set, copies the launcher binary into the folder.
	LauncherPath string
}

// Manifest lists what Build produced.
type Manifest struct {
	// Dir is the assembled output directory.
	Dir string

	// Files are the names written into Dir, in order.
	Files []string
}

func (o *Options) applyDefaults() {
	if o.SourceDir == "" {
		o.SourceDir = "."
	}
	if o.OutputDir == "" {
		o.OutputDir = "sync_tool"
	}
	if o.ExecName == "" {
		o.ExecName = "sync.exe"
	}
	if o.ConfigName == "" {
		o.ConfigName = "config.json"
	}
	if o.LogName == "" {
		o.LogName = "sync.log"
	}
}

// Build assembles the distribution folder. Both source artifacts must
// already exist; partial folders from a failed build are left in place
// for inspection.
func Build(opts Options) (*Manifest, error) {
	opts.applyDefaults()

	execSrc := filepath.Join(opts.SourceDir, opts.ExecName)
	configSrc := filepath.Join(opts.SourceDir, opts.ConfigName)
	for _, src := range []string{execSrc, configSrc} {
		if _, err := os.Stat(src); err != nil {
			return nil, fmt.Errorf("missing source artifact: %w", err)
		}
	}

	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create %s: %w", opts.OutputDir, err)
	}

	manifest := &Manifest{Dir: opts.OutputDir}
	copyIn := func(src, name string) error {
		if err := copyFile(src, filepath.Join(opts.OutputDir, name)); err != nil {
			return fmt.Errorf("copy %s: %w", name, err)
		}
		manifest.Files = append(manifest.Files, name)
		return nil
	}

	if err := copyIn(execSrc, opts.ExecName); err != nil {
		return nil, err
	}
	if err := copyIn(configSrc, opts.ConfigName); err != nil {
		return nil, err
	}
	if opts.LauncherPath != "" {
		if err := copyIn(opts.LauncherPath, filepath.Base(opts.LauncherPath)); err != nil {
			return nil, err
		}
	}

	// The sync program appends to its log; ship it empty so the first run
	// starts from a known state.
	logDst := filepath.Join(opts.OutputDir, opts.LogName)
	if err := os.WriteFile(logDst, nil, 0o644); err != nil {
		return nil, fmt.Errorf("create %s: %w", opts.LogName, err)
	}
	manifest.Files = append(manifest.Files, opts.LogName)

	readme := readmeText(opts.ConfigName)
	if err := os.WriteFile(filepath.Join(opts.OutputDir, "README.txt"), []byte(readme), 0o644); err != nil {
		return nil, fmt.Errorf("create README.txt: %w", err)
	}
	manifest.Files = append(manifest.Files, "README.txt")

	return manifest, nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func readmeText(configName string) string {
	return fmt.Sprintf(`DATABASE SYNC TOOL
=================

This tool synchronizes data from your local SQL Anywhere database to the web database.
NOTE: This tool will CLEAR existing data in the web database before adding new data.

SETUP:
1. Edit the %s file to set your database connection details and API information
2. Run the launcher to start the synchronization
3. The window will close automatically when successful

REQUIREMENTS:
- ODBC Data Source for your SQL Anywhere database must be configured
- Internet connection to reach the web API

For support, contact: info@imcbsglobal.com
`, configName)
}
