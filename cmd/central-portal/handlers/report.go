package handlers

import (
	"context"
	"fmt"
	"os"

	"github.com/go-logr/logr"

	"github.com/secure-ssid/central-portal/internal/config"
	"github.com/secure-ssid/central-portal/internal/platform/s3"
	"github.com/secure-ssid/central-portal/internal/report"
)

// newObjectStore creates the report storage client. Can be replaced in tests.
var newObjectStore = func(s *config.StorageSettings) (report.ObjectStore, error) {
	c, err := s3.NewClient(s3.Options{
		Endpoint:  s.Endpoint,
		Region:    s.Region,
		AccessKey: s.AccessKey,
		SecretKey: s.SecretKey,
		PathStyle: s.PathStyle,
	})
	if err != nil {
		return nil, err
	}
	return c, nil
}

func openArchive(bucket string) (*report.Archive, error) {
	store, err := newObjectStore(config.LoadStorageSettings())
	if err != nil {
		return nil, fmt.Errorf("failed to set up report storage: %w", err)
	}
	return report.NewArchive(store, bucket), nil
}

// archiveReport uploads rep to bucket. Failures are logged.
func archiveReport(ctx context.Context, bucket string, rep *report.Report) {
	if bucket == "" {
		return
	}
	logger := logr.FromContextOrDiscard(ctx)

	archive, err := openArchive(bucket)
	if err != nil {
		logger.Error(err, "Deployment report not archived")
		return
	}
	location, err := archive.Upload(ctx, rep)
	if err != nil {
		logger.Error(err, "Deployment report not archived", "bucket", bucket)
		return
	}
	logger.Info("Deployment report archived", "location", location)
}

// ReportList prints the keys of the archived reports, optionally of one WLAN.
func ReportList(ctx context.Context, bucket, wlan string) error {
	archive, err := openArchive(bucket)
	if err != nil {
		return err
	}

	keys, err := archive.List(ctx, wlan)
	if err != nil {
		return fmt.Errorf("failed to list reports: %w", err)
	}
	if len(keys) == 0 {
		fmt.Println("No reports found.")
		return nil
	}
	for _, k := range keys {
		fmt.Println(k)
	}
	return nil
}

// ReportShow prints an archived report.
func ReportShow(ctx context.Context, bucket, key, output string) error {
	format, err := report.ParseFormat(output)
	if err != nil {
		return err
	}

	archive, err := openArchive(bucket)
	if err != nil {
		return err
	}

	rep, err := archive.Fetch(ctx, key)
	if err != nil {
		return fmt.Errorf("failed to fetch report %s: %w", key, err)
	}
	return report.Render(os.Stdout, rep, format)
}
