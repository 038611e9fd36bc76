package config

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
)

// SyncConfig is the part of the sync program's config.json the doctor
// command can vouch for: the ODBC data source name and the API endpoint.
// The file may carry more; unknown keys are left alone.
type SyncConfig struct {
	DSN    string `json:"dsn"`
	APIURL string `json:"api_url"`
}

// ExpectedFormat is shown to the operator when config.json is missing a
// required key or cannot be parsed.
const ExpectedFormat = `{
  "dsn": "your_dsn_name",
  "api_url": "https://your-api-url.com"
}`

// LoadSyncConfig reads and validates the sync program's configuration file.
func LoadSyncConfig(path string) (*SyncConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	var sc SyncConfig
	if err := json.Unmarshal(data, &sc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := sc.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return &sc, nil
}

// Validate checks the keys the sync program requires at startup.
func (sc *SyncConfig) Validate() error {
	if sc.DSN == "" {
		return fmt.Errorf("missing %q", "dsn")
	}
	if sc.APIURL == "" {
		return fmt.Errorf("missing %q", "api_url")
	}

	u, err := url.Parse(sc.APIURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return fmt.Errorf("%q is not an absolute URL: %s", "api_url", sc.APIURL)
	}

	return nil
}
