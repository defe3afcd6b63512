package central

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
)

const configAPIPrefix = "/network-config/v1alpha1"

func vlanPath(vlanID int) string {
	return configAPIPrefix + "/layer2-vlan/" + strconv.Itoa(vlanID)
}

// CreateVLAN creates a Layer-2 VLAN.
func (c *RealClient) CreateVLAN(ctx context.Context, vlanID int, opts VLANOpts) (*VLANRef, error) {
	payload := VLANRef{ID: vlanID, Name: opts.Name, Description: opts.Description}
	if _, err := (&CreateOperation[struct{}]{
		Name:         strconv.Itoa(vlanID),
		ResourceType: "VLAN",
		Operation:    "create_vlan",
		Path:         vlanPath(vlanID),
		Body:         payload,
	}).Execute(ctx, c); err != nil {
		return nil, err
	}
	return &payload, nil
}

// GetVLAN returns the VLAN with the given id, or nil if it does not exist.
func (c *RealClient) GetVLAN(ctx context.Context, vlanID int) (*VLANRef, error) {
	var vlan VLANRef
	err := c.do(ctx, request{
		operation: "get_vlan",
		method:    http.MethodGet,
		path:      vlanPath(vlanID),
	}, &vlan)
	if IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get VLAN %d: %w", vlanID, err)
	}
	if vlan.ID == 0 {
		vlan.ID = vlanID
	}
	return &vlan, nil
}

// DeleteVLAN deletes a Layer-2 VLAN.
func (c *RealClient) DeleteVLAN(ctx context.Context, vlanID int) error {
	return (&DeleteOperation{
		Name:         strconv.Itoa(vlanID),
		ResourceType: "VLAN",
		Operation:    "delete_vlan",
		Path:         vlanPath(vlanID),
	}).Execute(ctx, c)
}
