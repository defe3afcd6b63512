package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// LoadFile reads and parses a WLAN request from a YAML file.
func LoadFile(path string) (*WLANRequest, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read request file: %w", err)
	}
	return Parse(data)
}

// Parse decodes a WLAN request from YAML, applies defaults and validates it.
func Parse(data []byte) (*WLANRequest, error) {
	var raw map[string]interface{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("request file is empty")
	}

	var req WLANRequest
	if err := mapstructure.Decode(raw, &req); err != nil {
		return nil, fmt.Errorf("failed to decode request: %w", err)
	}

	applyDefaults(&req, raw)

	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// applyDefaults fills in values a request file may leave out.
func applyDefaults(req *WLANRequest, raw map[string]interface{}) {
	if req.Scope.Kind == "" {
		if req.Scope.SiteID != "" {
			req.Scope.Kind = ScopeSite
		} else {
			req.Scope.Kind = ScopeGlobal
		}
	}
	if req.Network.ForwardMode == "" {
		req.Network.ForwardMode = ForwardBridge
	}
	if req.Auth.Family == "" {
		req.Auth.Family = SecurityPersonal
	}
	if !req.Enabled {
		req.Enabled = shouldEnableByDefault(raw)
	}
}

// shouldEnableByDefault returns true unless "enabled" was explicitly set.
func shouldEnableByDefault(raw map[string]interface{}) bool {
	_, explicitlySet := raw["enabled"]
	return !explicitlySet
}

// Marshal renders req in the request file format read by Parse.
func Marshal(req *WLANRequest) ([]byte, error) {
	data, err := yaml.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}
	return data, nil
}
