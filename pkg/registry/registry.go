// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

func LoadRegistry(path string) (*ActivityRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var reg ActivityRegistry
	err = json.Unmarshal(data, &reg)
	return &reg, err
}

// Save writes the registry as indented JSON, creating the directory.
func Save(reg *ActivityRegistry, path string) error {
	data, err := json.MarshalIndent(reg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal registry: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil {
		return fmt.Errorf("failed to write registry file: %w", err)
	}
	return nil
}

// Find returns the activity with the given ID, or nil.
func (r *ActivityRegistry) Find(id string) *Activity {
	for i := range r.Activities {
		if r.Activities[i].ID == id {
			return &r.Activities[i]
		}
	}
	return nil
}

// Merge replaces r's activities with generated ones. Hand-maintained fields
// (status, workflows, tags) survive from the previous entry of the same ID;
// activities no longer generated are dropped. The result is sorted by ID.
func (r *ActivityRegistry) Merge(generated []Activity) {
	merged := make([]Activity, 0, len(generated))
	for _, a := range generated {
		if prev := r.Find(a.ID); prev != nil {
			if prev.ImplementationStatus != "" {
				a.ImplementationStatus = prev.ImplementationStatus
			}
			if len(prev.Workflows) > 0 {
				a.Workflows = prev.Workflows
			}
			if len(prev.Tags) > 0 {
				a.Tags = prev.Tags
			}
		}
		merged = append(merged, a)
	}
	sort.Slice(merged, func(i, j int) bool { return merged[i].ID < merged[j].ID })
	r.Activities = merged
}

// Validate checks that IDs and task types are unique and that the fields
// a modeller relies on are filled in.
func Validate(reg *ActivityRegistry) error {
	if len(reg.Activities) == 0 {
		return fmt.Errorf("registry contains no activities")
	}

	ids := make(map[string]bool, len(reg.Activities))
	taskTypes := make(map[string]string, len(reg.Activities))
	for _, a := range reg.Activities {
		switch {
		case a.ID == "":
			return fmt.Errorf("activity missing required field: ID")
		case ids[a.ID]:
			return fmt.Errorf("duplicate activity ID: %s", a.ID)
		case a.DisplayName == "":
			return fmt.Errorf("activity %s missing required field: DisplayName", a.ID)
		case a.TaskType == "":
			return fmt.Errorf("activity %s missing required field: TaskType", a.ID)
		case a.Category == "":
			return fmt.Errorf("activity %s missing required field: Category", a.ID)
		}
		if other, ok := taskTypes[a.TaskType]; ok {
			return fmt.Errorf("activities %s and %s share task type %s", other, a.ID, a.TaskType)
		}
		switch a.ImplementationStatus {
		case StatusPlanned, StatusInProgress, StatusCompleted, StatusVerified:
		default:
			return fmt.Errorf("activity %s has unknown status %q", a.ID, a.ImplementationStatus)
		}
		ids[a.ID] = true
		taskTypes[a.TaskType] = a.ID
	}
	return nil
}
