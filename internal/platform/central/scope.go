package central

import "context"

type scopeMapEntry struct {
	ScopeName    string `json:"scope-name"`
	ScopeID      string `json:"scope-id"`
	Persona      string `json:"persona"`
	ResourcePath string `json:"resource"`
}

type scopeMapPayload struct {
	ScopeMap []scopeMapEntry `json:"scope-map"`
}

// CreateScopeBinding binds a configuration resource to a scope for a persona.
func (c *RealClient) CreateScopeBinding(ctx context.Context, binding ScopeBinding) (*BindingRef, error) {
	if binding.Persona == "" {
		binding.Persona = PersonaCampusAP
	}

	if _, err := (&CreateOperation[struct{}]{
		Name:         binding.ResourcePath + "@" + binding.ScopeID,
		ResourceType: "scope binding",
		Operation:    "create_scope_binding",
		Path:         configAPIPrefix + "/scope-maps",
		Body: scopeMapPayload{ScopeMap: []scopeMapEntry{{
			ScopeName:    binding.ScopeID,
			ScopeID:      binding.ScopeID,
			Persona:      binding.Persona,
			ResourcePath: binding.ResourcePath,
		}}},
	}).Execute(ctx, c); err != nil {
		return nil, err
	}

	return &BindingRef{
		ScopeID:      binding.ScopeID,
		Persona:      binding.Persona,
		ResourcePath: binding.ResourcePath,
	}, nil
}
