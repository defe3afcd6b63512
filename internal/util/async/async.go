package async

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Task represents an asynchronous operation with a name and function.
type Task struct {
	Name string
	Func func(context.Context) error
}

// RunParallel executes tasks in parallel and waits for all of them.
// The failures are joined in task order, each prefixed with its task name.
//
// Example:
//
//	tasks := []Task{
//	    {Name: "sites", Func: loadSites},
//	    {Name: "roles", Func: loadRoles},
//	}
//	if err := RunParallel(ctx, tasks); err != nil {
//	    logger.Error(err, "Lookup failed")
//	}
func RunParallel(ctx context.Context, tasks []Task) error {
	if len(tasks) == 0 {
		return nil
	}

	// Each task records its own error so one failure does not hide another.
	errs := make([]error, len(tasks))
	var g errgroup.Group
	for i, task := range tasks {
		g.Go(func() error {
			if err := task.Func(ctx); err != nil {
				errs[i] = fmt.Errorf("%s: %w", task.Name, err)
			}
			return nil
		})
	}
	_ = g.Wait()

	return errors.Join(errs...)
}
