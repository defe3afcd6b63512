package report

import (
	"time"

	"github.com/secure-ssid/central-portal/internal/config"
	"github.com/secure-ssid/central-portal/internal/provisioning"
)

// Report summarizes one deployment run. It never carries passphrases.
type Report struct {
	RunID      string                         `json:"runId"`
	WLAN       string                         `json:"wlan"`
	SSID       string                         `json:"ssid"`
	Scope      string                         `json:"scope"`
	VLANID     int                            `json:"vlanId"`
	Security   config.SecurityFamily          `json:"security"`
	State      provisioning.RunState          `json:"state"`
	Message    string                         `json:"message"`
	Steps      []provisioning.Step            `json:"steps"`
	Created    []provisioning.CreatedResource `json:"created,omitempty"`
	RolledBack []provisioning.CreatedResource `json:"rolledBack,omitempty"`
	Orphaned   []provisioning.CreatedResource `json:"orphaned,omitempty"`
	StartedAt  time.Time                      `json:"startedAt"`
	FinishedAt time.Time                      `json:"finishedAt"`
	Duration   string                         `json:"duration"`
}

// Build creates the report of result, a run of req.
func Build(result *provisioning.Result, req *config.WLANRequest) *Report {
	r := &Report{
		RunID:      result.RunID,
		State:      result.State,
		Message:    result.Message,
		Steps:      result.Steps,
		Created:    result.Created,
		RolledBack: result.RolledBack,
		Orphaned:   result.Orphaned,
		StartedAt:  result.StartedAt.UTC(),
		FinishedAt: result.FinishedAt.UTC(),
		Duration:   result.Duration().Round(time.Millisecond).String(),
	}
	if req != nil {
		r.WLAN = req.Name
		r.SSID = req.EffectiveSSID()
		r.Scope = req.Scope.String()
		r.VLANID = req.Network.VLANID
		r.Security = req.Auth.Family
	}
	if r.Steps == nil {
		r.Steps = []provisioning.Step{}
	}
	return r
}

// Succeeded reports whether the run finished without a fatal failure.
func (r *Report) Succeeded() bool {
	return r.State == provisioning.RunSucceeded
}
