package orchestration

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/secure-ssid/central-portal/internal/config"
	"github.com/secure-ssid/central-portal/internal/platform/central"
	"github.com/secure-ssid/central-portal/internal/provisioning"
	"github.com/secure-ssid/central-portal/internal/provisioning/mpsk"
	"github.com/secure-ssid/central-portal/internal/provisioning/network"
	"github.com/secure-ssid/central-portal/internal/provisioning/wireless"
)

// Deployer deploys WLANs through the console API.
type Deployer struct {
	orchestrator *provisioning.Orchestrator
}

type options struct {
	observers     []provisioning.Observer
	logger        logr.Logger
	enableMetrics bool
	eventLog      bool
	extra         []provisioning.Option
}

// Option configures a Deployer.
type Option func(*options)

// WithObserver adds an observer receiving the events of every run.
func WithObserver(obs provisioning.Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observers = append(o.observers, obs)
		}
	}
}

// WithLogger sets the logger. Events are logged through it unless
// WithoutEventLog is given.
func WithLogger(l logr.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithoutEventLog stops run events from being logged. Use it when another
// observer already presents them, e.g. a terminal UI.
func WithoutEventLog() Option {
	return func(o *options) {
		o.eventLog = false
	}
}

// WithMetrics enables or disables deployment metrics.
func WithMetrics(enabled bool) Option {
	return func(o *options) {
		o.enableMetrics = enabled
	}
}

// WithOrchestratorOptions passes options straight to the orchestrator.
func WithOrchestratorOptions(opts ...provisioning.Option) Option {
	return func(o *options) {
		o.extra = append(o.extra, opts...)
	}
}

// Executors returns the executors of every deployment step.
func Executors() []provisioning.StepExecutor {
	return []provisioning.StepExecutor{
		network.NewVLANExecutor(),
		network.NewNamedVLANExecutor(),
		wireless.NewWLANExecutor(),
		wireless.NewScopeExecutor(),
		mpsk.NewExecutor(),
	}
}

// NewDeployer creates a deployer driving client.
func NewDeployer(client central.ResourceClient, opts ...Option) *Deployer {
	o := options{logger: logr.Discard(), enableMetrics: true, eventLog: true}
	for _, opt := range opts {
		opt(&o)
	}

	var observers provisioning.MultiObserver
	if o.eventLog {
		observers = append(observers, provisioning.NewLogObserver(o.logger))
	}
	observers = append(observers, o.observers...)
	if o.enableMetrics {
		observers = append(observers, newMetricsObserver())
	}

	orchOpts := []provisioning.Option{
		provisioning.WithExecutors(Executors()...),
		provisioning.WithObserver(observers),
		provisioning.WithLogger(o.logger),
	}
	orchOpts = append(orchOpts, o.extra...)

	return &Deployer{
		orchestrator: provisioning.NewOrchestrator(client, orchOpts...),
	}
}

// Plan returns the steps a deployment of req would run.
func (d *Deployer) Plan(req *config.WLANRequest) []provisioning.Step {
	return provisioning.BuildPlan(req)
}

// Deploy runs one deployment of req. Retrying a failed deployment means
// calling Deploy again: the plan is rebuilt and runs from its first step.
func (d *Deployer) Deploy(ctx context.Context, req *config.WLANRequest) (*provisioning.Result, error) {
	return d.orchestrator.Run(ctx, req)
}
