package central

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/secure-ssid/central-portal/internal/util/retry"
)

// CreateOperation encapsulates creation logic for any console resource.
// The POST is issued exactly once; Resp receives the decoded response body
// when the API returns one.
//
// Usage example:
//
//	func (c *RealClient) CreateNamedVLAN(ctx context.Context, name string, opts NamedVLANOpts) (*NamedVLANRef, error) {
//	    _, err := (&CreateOperation[struct{}]{
//	        Name:         name,
//	        ResourceType: "named VLAN",
//	        Operation:    "create_named_vlan",
//	        Path:         namedVLANPath(name),
//	        Body:         namedVLANPayload{...},
//	    }).Execute(ctx, c)
//	    ...
//	}
type CreateOperation[Resp any] struct {
	Name         string
	ResourceType string
	// Operation labels the call in logs and metrics.
	Operation string
	Path      string
	Query     url.Values
	Body      any
}

// Execute performs the create call without retries.
func (op *CreateOperation[Resp]) Execute(ctx context.Context, client *RealClient) (*Resp, error) {
	var resp Resp
	err := client.do(ctx, request{
		operation: op.Operation,
		method:    http.MethodPost,
		path:      op.Path,
		query:     op.Query,
		body:      op.Body,
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s %s: %w", op.ResourceType, op.Name, err)
	}
	return &resp, nil
}

// DeleteOperation encapsulates deletion logic for any console resource.
// It provides consistent retry, timeout, and error handling across all resource types.
type DeleteOperation struct {
	Name         string
	ResourceType string
	Operation    string
	Path         string
}

// Execute performs the delete operation with retry logic and timeout handling.
// The operation is idempotent - it succeeds if the resource doesn't exist.
// Locked, conflicting and throttled deletes are retried with exponential backoff.
func (op *DeleteOperation) Execute(ctx context.Context, client *RealClient) error {
	ctx, cancel := context.WithTimeout(ctx, client.timeouts.Delete)
	defer cancel()

	err := retry.Do(ctx, func(ctx context.Context) error {
		err := client.do(ctx, request{
			operation: op.Operation,
			method:    http.MethodDelete,
			path:      op.Path,
		}, nil)
		if err == nil || IsNotFound(err) {
			return nil
		}
		if isRetryable(err) {
			return err
		}
		return retry.Permanent(err)
	},
		retry.WithMaxRetries(client.timeouts.RetryMaxAttempts),
		retry.WithInitialDelay(client.timeouts.RetryInitialDelay),
		retry.WithOnRetry(func(attempt int, err error) {
			client.logger.Info("Retrying delete",
				"resource", op.ResourceType,
				"name", op.Name,
				"attempt", attempt,
				"error", err.Error(),
			)
		}))
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", op.ResourceType, op.Name, err)
	}
	return nil
}
