package provisioning

// StepID identifies a deployment step.
type StepID string

const (
	StepVLAN      StepID = "vlan"
	StepNamedVLAN StepID = "named-vlan"
	StepWLAN      StepID = "wlan"
	StepScopeWLAN StepID = "scope-wlan"
	StepMPSK      StepID = "mpsk"
)

// Fatal reports whether a failure of the step aborts the run and triggers
// compensation. Scope binding and MPSK registration enhance an already
// usable WLAN and are allowed to fail.
func (id StepID) Fatal() bool {
	switch id {
	case StepScopeWLAN, StepMPSK:
		return false
	default:
		return true
	}
}

// action describes what the step does, for error messages.
func (id StepID) action() string {
	switch id {
	case StepVLAN:
		return "create VLAN"
	case StepNamedVLAN:
		return "create named VLAN"
	case StepWLAN:
		return "create WLAN"
	case StepScopeWLAN:
		return "assign WLAN to site"
	case StepMPSK:
		return "register MPSK keys"
	default:
		return "run step " + string(id)
	}
}

// StepStatus is the progress of a single step.
type StepStatus string

const (
	StatusPending    StepStatus = "Pending"
	StatusInProgress StepStatus = "InProgress"
	StatusCompleted  StepStatus = "Completed"
	StatusFailed     StepStatus = "Failed"
)

// Terminal reports whether the status can no longer change.
func (s StepStatus) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// Step is one entry of a deployment plan together with its progress.
type Step struct {
	ID     StepID     `json:"id"`
	Label  string     `json:"label"`
	Status StepStatus `json:"status"`
	// ErrorMessage is set only when Status is Failed.
	ErrorMessage string `json:"errorMessage,omitempty"`
}

// ResourceType is the kind of a resource created by a step.
type ResourceType string

const (
	ResourceVLAN         ResourceType = "vlan"
	ResourceNamedVLAN    ResourceType = "named-vlan"
	ResourceWLAN         ResourceType = "wlan"
	ResourceScopeBinding ResourceType = "scope-binding"
	ResourceMPSKKey      ResourceType = "mpsk-key"
)

// CreatedResource records a resource whose creation call succeeded.
type CreatedResource struct {
	Type ResourceType `json:"type"`
	// Identifier is the key needed to delete the resource (VLAN id, name).
	Identifier string `json:"identifier"`
}

func (r CreatedResource) String() string {
	return string(r.Type) + "/" + r.Identifier
}

// RunState is the state of one orchestration run.
type RunState string

const (
	RunNotStarted RunState = "NotStarted"
	RunRunning    RunState = "Running"
	RunSucceeded  RunState = "Succeeded"
	RunFailed     RunState = "Failed"
)
