package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/loom-ui/loom/pkg/config"
)

var configDir string

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the project's loom.yaml configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the resolved configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := projectDir()
		if err != nil {
			return err
		}
		resolved, err := config.Resolve(dir)
		if err != nil {
			return err
		}
		fmt.Printf("Project:  %s (%s)\n", resolved.AppName, resolved.AppID)
		fmt.Printf("Module:   %s\n", resolved.ModulePath)
		fmt.Printf("Root:     %s\n", resolved.Root)
		fmt.Printf("Surface:  %.0fx%.0f\n", resolved.SurfaceWidth, resolved.SurfaceHeight)
		fmt.Printf("Logging:  level=%s development=%v\n", resolved.LogLevel, resolved.Development)
		return nil
	},
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate loom.yaml against the module",
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := projectDir()
		if err != nil {
			return err
		}
		if _, err := config.Resolve(dir); err != nil {
			return fmt.Errorf("configuration invalid: %w", err)
		}
		fmt.Println("configuration valid")
		return nil
	},
}

func projectDir() (string, error) {
	if configDir != "" {
		return configDir, nil
	}
	return config.FindProjectRoot()
}

func init() {
	configCmd.PersistentFlags().StringVar(&configDir, "dir", "", "project directory (defaults to the enclosing Go module)")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
	RootCmd.AddCommand(configCmd)
}
