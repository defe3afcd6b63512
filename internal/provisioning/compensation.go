package provisioning

import (
	"context"
	"fmt"
	"strconv"
)

// compensate deletes the created resources in strict reverse order of
// creation. Every delete is attempted regardless of earlier failures, and
// failures are only reported as events. The deletes run detached from
// ctx's cancellation so a cancelled caller still gets a rollback attempt.
func (o *Orchestrator) compensate(ctx context.Context, observer Observer, created []CreatedResource) (deleted, orphaned []CreatedResource) {
	ctx = context.WithoutCancel(ctx)

	for i := len(created) - 1; i >= 0; i-- {
		r := created[i]
		undo, ok := o.undoFunc(r)
		if !ok {
			o.logger.V(1).Info("No compensation defined for resource", "resource", r.String())
			continue
		}

		LogResourceDeleting(observer, r)
		if err := undo(ctx); err != nil {
			LogCompensationFailed(observer, r, err)
			orphaned = append(orphaned, r)
			continue
		}
		LogResourceDeleted(observer, r)
		deleted = append(deleted, r)
	}
	return deleted, orphaned
}

// undoFunc returns the delete call reversing the creation of r.
// Scope bindings and MPSK keys are only created after the WLAN, so they
// never precede a fatal failure and have no undo.
func (o *Orchestrator) undoFunc(r CreatedResource) (func(context.Context) error, bool) {
	switch r.Type {
	case ResourceWLAN:
		return func(ctx context.Context) error {
			return o.client.DeleteWLAN(ctx, r.Identifier)
		}, true
	case ResourceNamedVLAN:
		return func(ctx context.Context) error {
			return o.client.DeleteNamedVLAN(ctx, r.Identifier)
		}, true
	case ResourceVLAN:
		return func(ctx context.Context) error {
			id, err := strconv.Atoi(r.Identifier)
			if err != nil {
				return fmt.Errorf("invalid VLAN identifier %q: %w", r.Identifier, err)
			}
			return o.client.DeleteVLAN(ctx, id)
		}, true
	default:
		return nil, false
	}
}
