package provisioning

// StepExecutor performs the resource-client calls of one deployment step.
type StepExecutor interface {
	// Step returns the id of the step this executor implements.
	Step() StepID

	// Execute runs the step. Each resource it creates must be recorded with
	// ctx.Record as soon as its creation call succeeds.
	Execute(ctx *Context) error
}
