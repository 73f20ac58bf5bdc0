package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oas-schemacore/codegen/internal/diffmerge"
	"github.com/oas-schemacore/codegen/internal/openapi"
	"github.com/oas-schemacore/codegen/internal/writer"
	"github.com/oas-schemacore/codegen/pkg/codegen"
)

var (
	genSpecPath       string
	genOutDir         string
	genTargets        string
	genModulePerTag   bool
	genIncludeTags    string
	genExcludeTags    string
	genDocOverrideDir string
	genBreakingChange string
	genCheck          bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate typed code and validators from a single OpenAPI document",
	RunE:  runGenerate,
}

func init() {
	generateCmd.Flags().StringVar(&genSpecPath, "spec", "", "path to the OpenAPI 3.1 document (required)")
	generateCmd.Flags().StringVar(&genOutDir, "out", ".", "output directory")
	generateCmd.Flags().StringVar(&genTargets, "targets", "api", "comma-separated targets: api,wrapper,dts,ts_wrapper")
	generateCmd.Flags().BoolVar(&genModulePerTag, "module-per-tag", true, "group Go endpoint declarations by tag into separate files")
	generateCmd.Flags().StringVar(&genIncludeTags, "include-tags", "", "comma-separated tag allow-list")
	generateCmd.Flags().StringVar(&genExcludeTags, "exclude-tags", "", "comma-separated tag deny-list")
	generateCmd.Flags().StringVar(&genDocOverrideDir, "doc-override-dir", "", "directory of per-endpoint description overrides")
	generateCmd.Flags().StringVar(&genBreakingChange, "breaking-change-handling", "", "Error, Warn, or Ignore (unused outside merge)")
	generateCmd.Flags().BoolVar(&genCheck, "check", false, "fail instead of writing if output would change")
	_ = generateCmd.MarkFlagRequired("spec")
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		p := strings.TrimSpace(part)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func runGenerate(cmd *cobra.Command, args []string) error {
	printVerbose("loading %s", genSpecPath)
	doc, err := openapi.LoadAndValidate(genSpecPath)
	if err != nil {
		return err
	}

	opt := codegen.Options{
		Strategy:               diffmerge.StrategySeparate,
		ModulePerTag:           genModulePerTag,
		IncludeTags:            splitCSV(genIncludeTags),
		ExcludeTags:            splitCSV(genExcludeTags),
		Targets:                splitCSV(genTargets),
		DocOverrideDir:         genDocOverrideDir,
		BreakingChangeHandling: diffmerge.BreakingChangeHandling(genBreakingChange),
	}

	result, err := codegen.Generate(context.Background(), doc, opt)
	if err != nil {
		return err
	}

	if err := writeResult(result, genOutDir, genCheck); err != nil {
		return err
	}

	printWarnings(result.Warnings)
	printInfo("generated %d file(s) from %s", len(result.Files), genSpecPath)
	return nil
}

func writeResult(result *codegen.Result, outDir string, check bool) error {
	for _, f := range result.Files {
		path := outDir + "/" + f.Path
		status, err := writer.WriteFile(path, []byte(f.Content), writer.Options{Check: check})
		if err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		printVerbose("%-9s %s", status, path)
	}
	return nil
}

func printWarnings(warnings []codegen.Warning) {
	if len(warnings) == 0 {
		return
	}
	printVerbose("%d warning(s):", len(warnings))
	for _, w := range warnings {
		printVerbose("  [%s] %s: %s", w.Kind, w.Path, w.Detail)
	}
}
