package report

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"path"
	"strings"

	"github.com/secure-ssid/central-portal/internal/platform/s3"
)

const keyPrefix = "deployments/"

// ObjectStore is the subset of the S3 client the archive needs.
type ObjectStore interface {
	PutObject(ctx context.Context, bucket, key, contentType string, data []byte) error
	GetObject(ctx context.Context, bucket, key string) ([]byte, error)
	ListObjects(ctx context.Context, bucket, prefix string) ([]s3.Object, error)
}

// Archive stores reports in a bucket, one JSON object per run.
type Archive struct {
	store  ObjectStore
	bucket string
}

// NewArchive creates an archive writing to bucket.
func NewArchive(store ObjectStore, bucket string) *Archive {
	return &Archive{store: store, bucket: bucket}
}

// Key returns the object key of a report.
func Key(r *Report) string {
	return path.Join(keyPrefix, r.WLAN, r.RunID+".json")
}

// Upload stores r and returns its object URL.
func (a *Archive) Upload(ctx context.Context, r *Report) (string, error) {
	var buf bytes.Buffer
	if err := writeJSON(&buf, r); err != nil {
		return "", err
	}
	key := Key(r)
	if err := a.store.PutObject(ctx, a.bucket, key, "application/json", buf.Bytes()); err != nil {
		return "", fmt.Errorf("failed to upload report: %w", err)
	}
	return fmt.Sprintf("s3://%s/%s", a.bucket, key), nil
}

// List returns the keys of stored reports, optionally only those of one WLAN.
func (a *Archive) List(ctx context.Context, wlan string) ([]string, error) {
	prefix := keyPrefix
	if wlan != "" {
		prefix += wlan + "/"
	}
	objects, err := a.store.ListObjects(ctx, a.bucket, prefix)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(objects))
	for _, o := range objects {
		if strings.HasSuffix(o.Key, ".json") {
			keys = append(keys, o.Key)
		}
	}
	return keys, nil
}

// Fetch reads a stored report. key may be a full object key or
// "<wlan>/<run-id>".
func (a *Archive) Fetch(ctx context.Context, key string) (*Report, error) {
	if !strings.HasPrefix(key, keyPrefix) {
		key = keyPrefix + key
	}
	if !strings.HasSuffix(key, ".json") {
		key += ".json"
	}

	data, err := a.store.GetObject(ctx, a.bucket, key)
	if err != nil {
		return nil, err
	}
	var r Report
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", key, err)
	}
	return &r, nil
}
