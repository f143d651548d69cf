package permissions

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/rs/zerolog/log"
)

//go:embed permissions.json
var permissionsData []byte

var ErrDuplicateEndpoint = errors.New("endpoint listed twice")

// Permission maps a chi route pattern and method to the staff roles allowed on it.
// Skip marks guest facing routes that need no token.
type Permission struct {
	Roles  []string `json:"permissions"`
	Path   string   `json:"path"`
	Method string   `json:"method"`
	Skip   bool     `json:"skip"`
}

type PermissionData struct {
	Endpoints []Permission `json:"endpoints"`
	Skip      bool         `json:"skip"`

	index map[string]int
}

// key indexes a route by method and pattern. A trailing slash is dropped so /v1/rooms and
// /v1/rooms/ resolve to the same entry.
func key(path, method string) string {
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}

	return strings.ToUpper(method) + " " + path
}

// Load parses a permission table and indexes it by method and path.
func Load(raw []byte) (*PermissionData, error) {
	var data PermissionData

	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("failed to decode permissions: %w", err)
	}

	data.index = make(map[string]int, len(data.Endpoints))

	for idx := range data.Endpoints {
		endpoint := &data.Endpoints[idx]
		endpoint.Method = strings.ToUpper(endpoint.Method)

		k := key(endpoint.Path, endpoint.Method)
		if _, ok := data.index[k]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateEndpoint, k)
		}

		data.index[k] = idx
	}

	return &data, nil
}

func (r *PermissionData) lookup(path, method string) (Permission, bool) {
	idx, ok := r.index[key(path, method)]
	if !ok {
		return Permission{}, false
	}

	return r.Endpoints[idx], true
}

func (r *PermissionData) FindPermissions(path, method string) Permission {
	permission, _ := r.lookup(path, method)

	return permission
}

func (r *PermissionData) IsPublic(path, method string) bool {
	return r.FindPermissions(path, method).Skip
}

// Allows reports whether role may call the route. Listed routes without a role list are open
// to any authenticated staff member; routes missing from the table are denied.
func (r *PermissionData) Allows(role, path, method string) bool {
	if r.Skip {
		return true
	}

	permission, ok := r.lookup(path, method)
	if !ok {
		return false
	}

	return permission.Skip || len(permission.Roles) == 0 || slices.Contains(permission.Roles, role)
}

// Get loads the embedded table. A broken table yields nil, which the RBAC middleware treats
// as deny all.
func Get() *PermissionData {
	data, err := Load(permissionsData)
	if err != nil {
		log.Error().Err(err).Msg("Failed to load embedded permissions")

		return nil
	}

	log.Info().Int("endpoints", len(data.Endpoints)).Msg("Loaded embedded permissions")

	return data
}
