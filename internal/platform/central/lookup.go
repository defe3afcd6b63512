package central

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
)

// pageSize is the page size used for list lookups.
const pageSize = 100

type siteItem struct {
	ID       flexibleID `json:"id"`
	SiteID   flexibleID `json:"siteId"`
	Name     string     `json:"name"`
	SiteName string     `json:"siteName"`
}

type siteList struct {
	Items []siteItem `json:"items"`
	Total int        `json:"total"`
}

type roleList struct {
	Roles []Role `json:"role"`
}

// ListSites returns every site, sorted by name.
func (c *RealClient) ListSites(ctx context.Context) ([]Site, error) {
	var sites []Site
	for offset := 0; ; offset += pageSize {
		var page siteList
		err := c.do(ctx, request{
			operation: "list_sites",
			method:    http.MethodGet,
			path:      "/network-monitoring/v1alpha1/sites",
			query: url.Values{
				"limit":  {strconv.Itoa(pageSize)},
				"offset": {strconv.Itoa(offset)},
			},
		}, &page)
		if err != nil {
			return nil, fmt.Errorf("failed to list sites: %w", err)
		}

		for _, item := range page.Items {
			sites = append(sites, item.site())
		}
		if len(page.Items) < pageSize || (page.Total > 0 && len(sites) >= page.Total) {
			break
		}
	}

	sort.Slice(sites, func(i, j int) bool { return sites[i].Name < sites[j].Name })
	return sites, nil
}

// ListRoles returns the configured user roles.
func (c *RealClient) ListRoles(ctx context.Context) ([]Role, error) {
	var list roleList
	err := c.do(ctx, request{
		operation: "list_roles",
		method:    http.MethodGet,
		path:      configAPIPrefix + "/roles",
	}, &list)
	if err != nil {
		return nil, fmt.Errorf("failed to list roles: %w", err)
	}
	return list.Roles, nil
}

// VLANExists reports whether the Layer-2 VLAN is already configured.
func (c *RealClient) VLANExists(ctx context.Context, vlanID int) (bool, error) {
	vlan, err := c.GetVLAN(ctx, vlanID)
	if err != nil {
		return false, err
	}
	return vlan != nil, nil
}

func (s siteItem) site() Site {
	site := Site{ID: string(s.ID), Name: s.Name}
	if site.ID == "" {
		site.ID = string(s.SiteID)
	}
	if site.Name == "" {
		site.Name = s.SiteName
	}
	return site
}

// flexibleID accepts identifiers encoded either as JSON strings or numbers.
type flexibleID string

func (id *flexibleID) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		s, err := strconv.Unquote(string(data))
		if err != nil {
			return err
		}
		*id = flexibleID(s)
		return nil
	}
	*id = flexibleID(data)
	return nil
}
