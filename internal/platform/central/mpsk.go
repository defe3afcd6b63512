package central

import (
	"context"
	"net/url"
)

type mpskPayload struct {
	Name       string `json:"name"`
	Passphrase string `json:"passphrase"`
	VLAN       int    `json:"vlan,omitempty"`
	Role       string `json:"user-role,omitempty"`
}

type mpskResponse struct {
	ID string `json:"id"`
}

// CreateMPSKRegistration registers one MPSK key.
func (c *RealClient) CreateMPSKRegistration(ctx context.Context, reg MPSKRegistration) (*MPSKRef, error) {
	resp, err := (&CreateOperation[mpskResponse]{
		Name:         reg.Name,
		ResourceType: "MPSK key",
		Operation:    "create_mpsk",
		Path:         configAPIPrefix + "/mpsk-registrations/" + url.PathEscape(reg.Name),
		Body: mpskPayload{
			Name:       reg.Name,
			Passphrase: reg.Passphrase,
			VLAN:       reg.VLAN,
			Role:       reg.Role,
		},
	}).Execute(ctx, c)
	if err != nil {
		return nil, err
	}

	ref := &MPSKRef{ID: resp.ID, Name: reg.Name}
	if ref.ID == "" {
		ref.ID = reg.Name
	}
	return ref, nil
}
