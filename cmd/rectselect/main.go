// Command rectselect finds a maximum guillotine-separable independent set of
// axis-aligned rectangles and reports, plots, or saves the selection.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/RectSelect/internal/engine"
	"github.com/piwi3910/RectSelect/internal/export"
	"github.com/piwi3910/RectSelect/internal/importer"
	"github.com/piwi3910/RectSelect/internal/model"
	"github.com/piwi3910/RectSelect/internal/project"
)

var (
	flagMaxNodes int64
	flagPDF      string
	flagDXF      string
	flagLabels   string
	flagSave     string
)

var rootCmd = &cobra.Command{
	Use:   "rectselect [input]",
	Short: "Select a maximum guillotine-separable independent set of rectangles",
	Long: `rectselect reads a set of axis-aligned rectangles and computes the largest
subset that is pairwise disjoint and separable by recursive guillotine cuts.

The input is a text file (count followed by "xl yb xr yt" lines), a CSV or
Excel sheet with coordinate columns, or a DXF drawing of rectangular
outlines. With no argument the text format is read from stdin.`,
	Args:          cobra.MaximumNArgs(1),
	RunE:          runSolve,
	SilenceUsage:  true,
	SilenceErrors: false,
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage application configuration",
}

var configExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export configuration to a backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config, err := project.LoadAppConfig(project.DefaultConfigPath())
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if err := project.ExportAllData(args[0], config); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration exported to %s\n", args[0])
		return nil
	},
}

var configImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import configuration from a backup file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		backup, err := project.ImportAllData(args[0])
		if err != nil {
			return err
		}
		if err := project.SaveAppConfig(project.DefaultConfigPath(), backup.Config); err != nil {
			return fmt.Errorf("failed to save config: %w", err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Configuration imported from backup created at %s\n", backup.CreatedAt)
		return nil
	},
}

func init() {
	rootCmd.Flags().Int64Var(&flagMaxNodes, "max-nodes", 0, "cap on solver search nodes, 0 = unlimited")
	rootCmd.Flags().StringVar(&flagPDF, "pdf", "", "write a layout plot PDF to this path")
	rootCmd.Flags().StringVar(&flagDXF, "dxf", "", "write a DXF drawing to this path")
	rootCmd.Flags().StringVar(&flagLabels, "labels", "", "write a QR label sheet PDF to this path")
	rootCmd.Flags().StringVar(&flagSave, "save", "", "save the problem and result as a project file")

	configCmd.AddCommand(configExportCmd)
	configCmd.AddCommand(configImportCmd)
	rootCmd.AddCommand(configCmd)
}

func runSolve(cmd *cobra.Command, args []string) error {
	var rects []model.Rect
	name := "stdin"

	if len(args) == 1 {
		path := args[0]
		name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		result := importer.ImportFile(path)
		for _, w := range result.Warnings {
			fmt.Fprintf(os.Stderr, "warning: %s\n", w)
		}
		if len(result.Errors) > 0 {
			for _, e := range result.Errors {
				fmt.Fprintf(os.Stderr, "error: %s\n", e)
			}
			return fmt.Errorf("input contains %d error(s)", len(result.Errors))
		}
		rects = result.Rects
	} else {
		var err error
		rects, err = importer.ParseProblem(os.Stdin)
		if err != nil {
			return err
		}
	}

	config, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	settings := model.DefaultSettings()
	config.ApplyToSettings(&settings)
	if cmd.Flags().Changed("max-nodes") {
		settings.MaxNodes = flagMaxNodes
	}

	solver := engine.New(settings)
	solveResult, err := solver.Solve(rects)
	if err != nil {
		return err
	}

	if err := export.WriteReport(cmd.OutOrStdout(), solveResult); err != nil {
		return err
	}

	problem := model.Problem{Name: name, Rects: rects}
	if flagPDF != "" {
		if err := export.ExportPDF(exportPath(config, flagPDF), problem, solveResult); err != nil {
			return fmt.Errorf("PDF export failed: %w", err)
		}
	}
	if flagDXF != "" {
		if err := export.ExportDXF(exportPath(config, flagDXF), problem, solveResult); err != nil {
			return fmt.Errorf("DXF export failed: %w", err)
		}
	}
	if flagLabels != "" {
		if err := export.ExportLabels(exportPath(config, flagLabels), solveResult); err != nil {
			return fmt.Errorf("label export failed: %w", err)
		}
	}
	if flagSave != "" {
		p := model.Project{
			Name:     name,
			Rects:    rects,
			Settings: settings,
			Result:   &solveResult,
		}
		if err := project.SaveProject(flagSave, p); err != nil {
			return err
		}
		project.AddRecentProject(&config, flagSave)
		if err := project.SaveAppConfig(project.DefaultConfigPath(), config); err != nil {
			return fmt.Errorf("failed to update config: %w", err)
		}
	}

	return nil
}

// exportPath resolves a relative export path against the configured export
// directory.
func exportPath(config model.AppConfig, path string) string {
	if config.ExportDir == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(config.ExportDir, path)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
