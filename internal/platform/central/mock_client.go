package central

import (
	"context"
	"fmt"
	"strconv"
	"sync"
)

// MockClient is a mock implementation of ResourceClient.
// Unset functions succeed with a descriptor built from their arguments.
// Every call is recorded in order and can be inspected with Calls.
type MockClient struct {
	// VLAN
	CreateVLANFunc func(ctx context.Context, vlanID int, opts VLANOpts) (*VLANRef, error)
	GetVLANFunc    func(ctx context.Context, vlanID int) (*VLANRef, error)
	DeleteVLANFunc func(ctx context.Context, vlanID int) error

	// Named VLAN
	CreateNamedVLANFunc func(ctx context.Context, name string, opts NamedVLANOpts) (*NamedVLANRef, error)
	DeleteNamedVLANFunc func(ctx context.Context, name string) error

	// WLAN
	CreateWLANFunc func(ctx context.Context, name string, cfg WLANConfig, opts WLANCreateOpts) (*WLANRef, error)
	DeleteWLANFunc func(ctx context.Context, name string) error

	// Scope
	CreateScopeBindingFunc func(ctx context.Context, binding ScopeBinding) (*BindingRef, error)

	// MPSK
	CreateMPSKRegistrationFunc func(ctx context.Context, reg MPSKRegistration) (*MPSKRef, error)

	// Lookups
	ListSitesFunc  func(ctx context.Context) ([]Site, error)
	ListRolesFunc  func(ctx context.Context) ([]Role, error)
	VLANExistsFunc func(ctx context.Context, vlanID int) (bool, error)

	mu    sync.Mutex
	calls []string
}

// Ensure interface compliance
var _ ResourceClient = (*MockClient)(nil)

func (m *MockClient) record(format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, fmt.Sprintf(format, args...))
}

// Calls returns the recorded calls in invocation order, e.g. "DeleteVLAN(50)".
func (m *MockClient) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// CallsTo returns the recorded calls of a single method.
func (m *MockClient) CallsTo(method string) []string {
	var out []string
	for _, c := range m.Calls() {
		if len(c) > len(method) && c[:len(method)] == method && c[len(method)] == '(' {
			out = append(out, c)
		}
	}
	return out
}

// CreateVLAN mocks VLAN creation.
func (m *MockClient) CreateVLAN(ctx context.Context, vlanID int, opts VLANOpts) (*VLANRef, error) {
	m.record("CreateVLAN(%d)", vlanID)
	if m.CreateVLANFunc != nil {
		return m.CreateVLANFunc(ctx, vlanID, opts)
	}
	return &VLANRef{ID: vlanID, Name: opts.Name, Description: opts.Description}, nil
}

// GetVLAN mocks VLAN retrieval.
func (m *MockClient) GetVLAN(ctx context.Context, vlanID int) (*VLANRef, error) {
	m.record("GetVLAN(%d)", vlanID)
	if m.GetVLANFunc != nil {
		return m.GetVLANFunc(ctx, vlanID)
	}
	return nil, nil
}

// DeleteVLAN mocks VLAN deletion.
func (m *MockClient) DeleteVLAN(ctx context.Context, vlanID int) error {
	m.record("DeleteVLAN(%d)", vlanID)
	if m.DeleteVLANFunc != nil {
		return m.DeleteVLANFunc(ctx, vlanID)
	}
	return nil
}

// CreateNamedVLAN mocks named VLAN creation.
func (m *MockClient) CreateNamedVLAN(ctx context.Context, name string, opts NamedVLANOpts) (*NamedVLANRef, error) {
	m.record("CreateNamedVLAN(%s)", name)
	if m.CreateNamedVLANFunc != nil {
		return m.CreateNamedVLANFunc(ctx, name, opts)
	}
	return &NamedVLANRef{Name: name, VLANIDRanges: opts.VLANIDRanges}, nil
}

// DeleteNamedVLAN mocks named VLAN deletion.
func (m *MockClient) DeleteNamedVLAN(ctx context.Context, name string) error {
	m.record("DeleteNamedVLAN(%s)", name)
	if m.DeleteNamedVLANFunc != nil {
		return m.DeleteNamedVLANFunc(ctx, name)
	}
	return nil
}

// CreateWLAN mocks WLAN creation.
func (m *MockClient) CreateWLAN(ctx context.Context, name string, cfg WLANConfig, opts WLANCreateOpts) (*WLANRef, error) {
	m.record("CreateWLAN(%s)", name)
	if m.CreateWLANFunc != nil {
		return m.CreateWLANFunc(ctx, name, cfg, opts)
	}
	ssid := cfg.SSID
	if ssid == "" {
		ssid = name
	}
	return &WLANRef{Name: name, SSID: ssid}, nil
}

// DeleteWLAN mocks WLAN deletion.
func (m *MockClient) DeleteWLAN(ctx context.Context, name string) error {
	m.record("DeleteWLAN(%s)", name)
	if m.DeleteWLANFunc != nil {
		return m.DeleteWLANFunc(ctx, name)
	}
	return nil
}

// CreateScopeBinding mocks scope binding creation.
func (m *MockClient) CreateScopeBinding(ctx context.Context, binding ScopeBinding) (*BindingRef, error) {
	m.record("CreateScopeBinding(%s@%s)", binding.ResourcePath, binding.ScopeID)
	if m.CreateScopeBindingFunc != nil {
		return m.CreateScopeBindingFunc(ctx, binding)
	}
	return &BindingRef{ScopeID: binding.ScopeID, Persona: binding.Persona, ResourcePath: binding.ResourcePath}, nil
}

// CreateMPSKRegistration mocks MPSK key registration.
func (m *MockClient) CreateMPSKRegistration(ctx context.Context, reg MPSKRegistration) (*MPSKRef, error) {
	m.record("CreateMPSKRegistration(%s)", reg.Name)
	if m.CreateMPSKRegistrationFunc != nil {
		return m.CreateMPSKRegistrationFunc(ctx, reg)
	}
	return &MPSKRef{ID: reg.Name, Name: reg.Name}, nil
}

// ListSites mocks site lookup.
func (m *MockClient) ListSites(ctx context.Context) ([]Site, error) {
	m.record("ListSites()")
	if m.ListSitesFunc != nil {
		return m.ListSitesFunc(ctx)
	}
	return nil, nil
}

// ListRoles mocks role lookup.
func (m *MockClient) ListRoles(ctx context.Context) ([]Role, error) {
	m.record("ListRoles()")
	if m.ListRolesFunc != nil {
		return m.ListRolesFunc(ctx)
	}
	return nil, nil
}

// VLANExists mocks the VLAN existence check.
func (m *MockClient) VLANExists(ctx context.Context, vlanID int) (bool, error) {
	m.record("VLANExists(%s)", strconv.Itoa(vlanID))
	if m.VLANExistsFunc != nil {
		return m.VLANExistsFunc(ctx, vlanID)
	}
	return false, nil
}
