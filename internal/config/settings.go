package config

import (
	"errors"
	"net/url"
	"os"
	"strings"
)

// Environment variables read by LoadSettings.
const (
	EnvBaseURL = "CENTRAL_BASE_URL"
	EnvToken   = "CENTRAL_TOKEN"
)

// ErrTokenMissing is returned by Settings.Validate when no API token is set.
var ErrTokenMissing = errors.New(EnvToken + " environment variable is required")

// Settings holds the connection settings of the network management API.
type Settings struct {
	BaseURL  string
	Token    string
	Timeouts *Timeouts
}

// LoadSettings reads API settings from the environment.
func LoadSettings() *Settings {
	return &Settings{
		BaseURL:  strings.TrimRight(strings.TrimSpace(os.Getenv(EnvBaseURL)), "/"),
		Token:    strings.TrimSpace(os.Getenv(EnvToken)),
		Timeouts: LoadTimeouts(),
	}
}

// Validate checks that the settings can be used to reach the API.
func (s *Settings) Validate() error {
	if s.BaseURL == "" {
		return errors.New(EnvBaseURL + " environment variable is required")
	}
	u, err := url.Parse(s.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return errors.New(EnvBaseURL + " must be an absolute URL (e.g. https://central.example.com)")
	}
	if s.Token == "" {
		return ErrTokenMissing
	}
	return nil
}

// StorageSettings configures the S3-compatible storage deployment reports
// are archived in.
type StorageSettings struct {
	Endpoint  string
	Region    string
	AccessKey string
	SecretKey string
	PathStyle bool
}

// LoadStorageSettings reads report storage settings from the environment.
//
// Environment Variables:
//   - REPORT_S3_ENDPOINT (default: the AWS endpoint of the region)
//   - REPORT_S3_REGION (default: us-east-1)
//   - REPORT_S3_ACCESS_KEY, REPORT_S3_SECRET_KEY (default: AWS credential chain)
//   - REPORT_S3_PATH_STYLE (default: false)
func LoadStorageSettings() *StorageSettings {
	s := &StorageSettings{
		Endpoint:  strings.TrimSpace(os.Getenv("REPORT_S3_ENDPOINT")),
		Region:    strings.TrimSpace(os.Getenv("REPORT_S3_REGION")),
		AccessKey: strings.TrimSpace(os.Getenv("REPORT_S3_ACCESS_KEY")),
		SecretKey: strings.TrimSpace(os.Getenv("REPORT_S3_SECRET_KEY")),
		PathStyle: parseBool("REPORT_S3_PATH_STYLE", false),
	}
	if s.Region == "" {
		s.Region = "us-east-1"
	}
	return s
}
