// cmd/tools/registry-updater/main.go
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"study-abroad-workers/internal/common/config"
	"study-abroad-workers/pkg/registry"
)

var (
	registryPath string
	configPath   string

	rootCmd = &cobra.Command{
		Use:   "registry-updater",
		Short: "Maintain the activity registry BPMN models are built against",
	}

	generateCmd = &cobra.Command{
		Use:   "generate",
		Short: "Regenerate the registry from the worker packages and worker config",
		RunE: func(_ *cobra.Command, _ []string) error {
			return generate()
		},
	}

	validateCmd = &cobra.Command{
		Use:   "validate",
		Short: "Validate the registry file and check it against the workers",
		RunE: func(_ *cobra.Command, _ []string) error {
			return validate()
		},
	}

	updateField string
	updateValue string
	updateCmd   = &cobra.Command{
		Use:   "update <activity-id>",
		Short: "Update a hand-maintained field of one activity",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return update(args[0], updateField, updateValue)
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&registryPath, "path", "configs/activity-registry.json", "registry file")
	generateCmd.Flags().StringVar(&configPath, "config", "configs/config.yaml", "config file holding the workers section")
	updateCmd.Flags().StringVar(&updateField, "field", "", "status, version, description, workflows or tags")
	updateCmd.Flags().StringVar(&updateValue, "value", "", "new value; workflows and tags take a comma-separated list")
	_ = updateCmd.MarkFlagRequired("field")
	_ = updateCmd.MarkFlagRequired("value")

	rootCmd.AddCommand(generateCmd, validateCmd, updateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func generate() error {
	workers, err := loadWorkerSettings(configPath)
	if err != nil {
		return err
	}

	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to load registry: %w", err)
		}
		reg = &registry.ActivityRegistry{Version: "1.0.0"}
	}

	reg.Merge(buildActivities(workers))
	reg.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	if err := registry.Validate(reg); err != nil {
		return err
	}
	if err := registry.Save(reg, registryPath); err != nil {
		return err
	}
	fmt.Printf("Wrote %d activities to %s\n", len(reg.Activities), registryPath)
	return nil
}

// loadWorkerSettings reads only the workers section, so the tool runs
// without the secrets a full config load insists on.
func loadWorkerSettings(path string) (map[string]config.WorkerConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	workers := make(map[string]config.WorkerConfig)
	if err := v.UnmarshalKey("workers", &workers); err != nil {
		return nil, fmt.Errorf("failed to decode workers section: %w", err)
	}
	return workers, nil
}

func buildActivities(workers map[string]config.WorkerConfig) []registry.Activity {
	specs := workerSpecs()
	out := make([]registry.Activity, 0, len(specs))
	for _, w := range specs {
		settings, ok := workers[w.taskType]
		if !ok {
			settings = config.GetWorkerConfig(&config.Config{}, w.taskType)
		}
		a := registry.Activity{
			ID:                   w.taskType,
			DisplayName:          w.displayName,
			Description:          w.description,
			Category:             w.category,
			Version:              "1.0.0",
			TaskType:             w.taskType,
			ImplementationStatus: registry.StatusCompleted,
			ErrorCodes:           w.errorCodes(),
			Timeout:              config.GetDuration(settings.Timeout).String(),
			Retries:              settings.MaxRetries,
			Workflows:            []string{},
			Tags:                 []string{w.category},
		}
		if w.schema != nil {
			a.InputSchema = w.schema.Document()
		}
		out = append(out, a)
	}
	return out
}

func validate() error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	if err := registry.Validate(reg); err != nil {
		return err
	}
	if missing := missingWorkers(reg); len(missing) > 0 {
		return fmt.Errorf("registry is missing workers %v; run generate", missing)
	}
	fmt.Printf("Registry validation passed. Found %d activities.\n", len(reg.Activities))
	return nil
}

func missingWorkers(reg *registry.ActivityRegistry) []string {
	var missing []string
	for _, w := range workerSpecs() {
		if reg.Find(w.taskType) == nil {
			missing = append(missing, w.taskType)
		}
	}
	return missing
}

func update(id, field, value string) error {
	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		return fmt.Errorf("failed to load registry: %w", err)
	}
	a := reg.Find(id)
	if a == nil {
		return fmt.Errorf("activity with ID %s not found", id)
	}

	switch field {
	case "status":
		a.ImplementationStatus = value
	case "version":
		a.Version = value
	case "description":
		a.Description = value
	case "workflows":
		a.Workflows = splitList(value)
	case "tags":
		a.Tags = splitList(value)
	case "retries":
		retries, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid retries value: %w", err)
		}
		a.Retries = retries
	default:
		return fmt.Errorf("unknown field: %s", field)
	}

	if err := registry.Validate(reg); err != nil {
		return err
	}
	reg.LastUpdated = time.Now().UTC().Format(time.RFC3339)
	if err := registry.Save(reg, registryPath); err != nil {
		return err
	}
	fmt.Printf("Updated activity %s, field %s to %s\n", id, field, value)
	return nil
}
