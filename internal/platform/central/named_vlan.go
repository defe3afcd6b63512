package central

import (
	"context"
	"net/url"
	"slices"
)

type namedVLANPayload struct {
	Name string `json:"name"`
	VLAN struct {
		VLANIDRanges []string `json:"vlan-id-ranges"`
	} `json:"vlan"`
}

func namedVLANPath(name string) string {
	return configAPIPrefix + "/named-vlan/" + url.PathEscape(name)
}

// CreateNamedVLAN creates a named VLAN profile referencing the given VLAN id ranges.
func (c *RealClient) CreateNamedVLAN(ctx context.Context, name string, opts NamedVLANOpts) (*NamedVLANRef, error) {
	payload := namedVLANPayload{Name: name}
	payload.VLAN.VLANIDRanges = slices.Clone(opts.VLANIDRanges)

	if _, err := (&CreateOperation[struct{}]{
		Name:         name,
		ResourceType: "named VLAN",
		Operation:    "create_named_vlan",
		Path:         namedVLANPath(name),
		Body:         payload,
	}).Execute(ctx, c); err != nil {
		return nil, err
	}
	return &NamedVLANRef{Name: name, VLANIDRanges: payload.VLAN.VLANIDRanges}, nil
}

// DeleteNamedVLAN deletes a named VLAN profile.
func (c *RealClient) DeleteNamedVLAN(ctx context.Context, name string) error {
	return (&DeleteOperation{
		Name:         name,
		ResourceType: "named VLAN",
		Operation:    "delete_named_vlan",
		Path:         namedVLANPath(name),
	}).Execute(ctx, c)
}
