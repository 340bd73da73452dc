package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/blackwell-systems/projscout/internal/locator"
)

// ProjectEntry is one located project in a tool result. The field names
// mirror the cache file format, with the kind added.
type ProjectEntry struct {
	Kind     string `json:"kind"`
	Name     string `json:"name"`
	FullPath string `json:"fullPath"`
}

// LocateResult holds the projects located for one or more kinds.
type LocateResult struct {
	Projects []ProjectEntry `json:"projects"`
	Count    int            `json:"count"`
}

// ExistsResult holds the outcome of a project lookup by root path.
type ExistsResult struct {
	Exists   bool   `json:"exists"`
	Kind     string `json:"kind,omitempty"`
	Name     string `json:"name,omitempty"`
	FullPath string `json:"fullPath,omitempty"`
}

// RefreshResult holds the outcome of a forced rescan.
type RefreshResult struct {
	ConfigChanged bool           `json:"config_changed"`
	ProjectsFound map[string]int `json:"projects_by_kind"`
}

// KindEntry describes one project kind and its configuration.
type KindEntry struct {
	Kind         string   `json:"kind"`
	DisplayName  string   `json:"display_name"`
	BaseFolders  []string `json:"base_folders"`
	CacheEnabled bool     `json:"cache_enabled"`
}

// KindsResult holds all known kinds.
type KindsResult struct {
	Kinds []KindEntry `json:"kinds"`
}

var (
	noArgsSchema = json.RawMessage(`{"type":"object","properties":{},"additionalProperties":false}`)
	kindSchema   = json.RawMessage(`{"type":"object","properties":{"kind":{"type":"string","description":"Project kind (git, hg, svn, vscode, any). Omit for all kinds."}},"additionalProperties":false}`)
	existsSchema = json.RawMessage(`{"type":"object","properties":{"path":{"type":"string","description":"Project root path; a leading ~ is allowed"},"kind":{"type":"string","description":"Limit the lookup to one kind"}},"required":["path"],"additionalProperties":false}`)
)

// addTools registers all four MCP tool handlers on s.
func addTools(s *Server) {
	s.registerTool(toolDef{
		Name:        "locate_projects",
		Description: "Locate project directories under the configured base folders, using the cache when current.",
		InputSchema: kindSchema,
		Handler:     s.handleLocateProjects,
	})
	s.registerTool(toolDef{
		Name:        "project_exists",
		Description: "Check whether a root path is a located project, matching case-insensitively in expanded or ~-compacted form.",
		InputSchema: existsSchema,
		Handler:     s.handleProjectExists,
	})
	s.registerTool(toolDef{
		Name:        "refresh_projects",
		Description: "Drop cached results and rescan, returning the fresh project counts.",
		InputSchema: kindSchema,
		Handler:     s.handleRefreshProjects,
	})
	s.registerTool(toolDef{
		Name:        "list_kinds",
		Description: "List the known project kinds and their configured base folders.",
		InputSchema: noArgsSchema,
		Handler:     s.handleListKinds,
	})
}

// targets resolves an optional kind argument to the locators it names, in
// registration order when no kind is given.
func (s *Server) targets(args json.RawMessage) ([]*locator.Locator, error) {
	var params struct {
		Kind string `json:"kind"`
	}
	if len(args) > 0 && string(args) != "null" {
		if err := json.Unmarshal(args, &params); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
	}

	if params.Kind == "" {
		locs := make([]*locator.Locator, 0, len(s.order))
		for _, kind := range s.order {
			locs = append(locs, s.locators[kind])
		}
		return locs, nil
	}

	loc, ok := s.locators[params.Kind]
	if !ok {
		return nil, fmt.Errorf("unknown kind: %s", params.Kind)
	}
	return []*locator.Locator{loc}, nil
}

// handleLocateProjects locates projects for one or all kinds.
func (s *Server) handleLocateProjects(args json.RawMessage) (any, error) {
	locs, err := s.targets(args)
	if err != nil {
		return nil, err
	}

	result := LocateResult{Projects: []ProjectEntry{}}
	for _, loc := range locs {
		dirs, err := loc.Locate(context.Background())
		if err != nil {
			return nil, err
		}
		for _, d := range dirs {
			result.Projects = append(result.Projects, ProjectEntry{
				Kind:     loc.Kind(),
				Name:     d.Name,
				FullPath: d.FullPath,
			})
		}
	}
	result.Count = len(result.Projects)
	return result, nil
}

// handleProjectExists looks up a root path across one or all kinds. Kinds
// are located first so the lookup always answers against a current list.
func (s *Server) handleProjectExists(args json.RawMessage) (any, error) {
	var params struct {
		Path string `json:"path"`
		Kind string `json:"kind"`
	}
	if err := json.Unmarshal(args, &params); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	if params.Path == "" {
		return nil, fmt.Errorf("path is required")
	}

	locs, err := s.targets(args)
	if err != nil {
		return nil, err
	}

	for _, loc := range locs {
		if _, err := loc.Locate(context.Background()); err != nil {
			return nil, err
		}
		if d, ok := loc.ExistsWithRootPath(params.Path); ok {
			return ExistsResult{
				Exists:   true,
				Kind:     loc.Kind(),
				Name:     d.Name,
				FullPath: d.FullPath,
			}, nil
		}
	}
	return ExistsResult{Exists: false}, nil
}

// handleRefreshProjects forces a rescan for one or all kinds and reports
// the fresh counts.
func (s *Server) handleRefreshProjects(args json.RawMessage) (any, error) {
	locs, err := s.targets(args)
	if err != nil {
		return nil, err
	}

	result := RefreshResult{ProjectsFound: make(map[string]int, len(locs))}
	for _, loc := range locs {
		if loc.RefreshConfig() {
			result.ConfigChanged = true
		}
		if err := loc.Invalidate(); err != nil {
			return nil, err
		}
		dirs, err := loc.Locate(context.Background())
		if err != nil {
			return nil, err
		}
		result.ProjectsFound[loc.Kind()] = len(dirs)
	}
	return result, nil
}

// handleListKinds lists every known kind with its configuration.
func (s *Server) handleListKinds(args json.RawMessage) (any, error) {
	result := KindsResult{Kinds: make([]KindEntry, 0, len(s.order))}
	for _, kind := range s.order {
		loc := s.locators[kind]
		cfg := loc.Config()
		result.Kinds = append(result.Kinds, KindEntry{
			Kind:         kind,
			DisplayName:  loc.Variant().DisplayName(),
			BaseFolders:  cfg.BaseFolders,
			CacheEnabled: cfg.CacheEnabled,
		})
	}
	return result, nil
}
