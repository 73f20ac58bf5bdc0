package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/oas-schemacore/codegen/internal/diffmerge"
	"github.com/oas-schemacore/codegen/internal/emit"
	"github.com/oas-schemacore/codegen/internal/gencontext"
	"github.com/oas-schemacore/codegen/internal/ir"
	"github.com/oas-schemacore/codegen/internal/normalize"
	"github.com/oas-schemacore/codegen/internal/openapi"
	"github.com/oas-schemacore/codegen/internal/writer"
	"github.com/oas-schemacore/codegen/pkg/codegen"
)

var (
	mergeForksGlob     string
	mergeOutDir        string
	mergeBaseInstance  string
	mergeBaseModPrefix string
	mergeDiffReport    bool
	mergeBreaking      string
	mergeCheck         bool
	mergeEmitTargets   string
)

// mergeCmd is the StrategySharedBase workflow pkg/codegen.Generate
// deliberately can't run: it loads N documents instead of one, so it
// drives internal/diffmerge and internal/emit directly rather than going
// through the single-document library entry point.
var mergeCmd = &cobra.Command{
	Use:   "merge",
	Short: "Compose multiple fork specs under strategy SharedBase",
	RunE:  runMerge,
}

func init() {
	mergeCmd.Flags().StringVar(&mergeForksGlob, "forks", "", "doublestar glob matching fork spec files, e.g. specs/*/openapi.yaml (required)")
	mergeCmd.Flags().StringVar(&mergeOutDir, "out", ".", "output directory")
	mergeCmd.Flags().StringVar(&mergeBaseInstance, "base-instance-name", "shared", "subdirectory name for the shared base")
	mergeCmd.Flags().StringVar(&mergeBaseModPrefix, "base-module-prefix", "", "module prefix qualifying the shared base")
	mergeCmd.Flags().BoolVar(&mergeDiffReport, "diff-report", false, "emit a markdown diff report comparing each fork against the shared base")
	mergeCmd.Flags().StringVar(&mergeBreaking, "breaking-change-handling", "Warn", "Error, Warn, or Ignore")
	mergeCmd.Flags().BoolVar(&mergeCheck, "check", false, "fail instead of writing if output would change")
	mergeCmd.Flags().StringVar(&mergeEmitTargets, "emit", "go", "comma-separated emit.Dispatch targets: go,typescript")
	_ = mergeCmd.MarkFlagRequired("forks")
}

func runMerge(cmd *cobra.Command, args []string) error {
	paths, err := diffmerge.DiscoverForks(os.DirFS("."), mergeForksGlob)
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		return fmt.Errorf("no fork specs matched %q", mergeForksGlob)
	}
	printVerbose("discovered %d fork(s): %v", len(paths), paths)

	forks := make([]*ir.Spec, len(paths))
	var allWarnings []gencontext.Warning
	for i, p := range paths {
		doc, err := openapi.LoadAndValidate(p)
		if err != nil {
			return fmt.Errorf("loading %s: %w", p, err)
		}
		spec, warnings, err := normalize.ToIR(doc, normalize.Options{})
		if err != nil {
			return fmt.Errorf("normalizing %s: %w", p, err)
		}
		forks[i] = spec
		allWarnings = append(allWarnings, warnings...)
	}

	baseURL := ""
	if forks[0] != nil {
		baseURL = forks[0].Meta.BaseURL
	}
	merged := diffmerge.MergeSharedBase(forks, baseURL)

	handling := diffmerge.BreakingChangeHandling(mergeBreaking)
	switch handling {
	case diffmerge.BreakingChangeError, diffmerge.BreakingChangeWarn, diffmerge.BreakingChangeIgnore:
	default:
		return fmt.Errorf("unknown breaking-change-handling %q", mergeBreaking)
	}

	emitOpt := emit.Options{Targets: splitCSV(mergeEmitTargets), ModulePrefix: mergeBaseModPrefix}

	basePath := mergeOutDir + "/" + mergeBaseInstance
	if err := generateAndWrite(merged.Base, emitOpt, basePath, mergeCheck, &allWarnings); err != nil {
		return fmt.Errorf("emitting shared base: %w", err)
	}

	for i, delta := range merged.Deltas {
		forkDir := fmt.Sprintf("%s/fork-%d", mergeOutDir, i)
		if err := generateAndWrite(delta, emitOpt, forkDir, mergeCheck, &allWarnings); err != nil {
			return fmt.Errorf("emitting fork %s: %w", paths[i], err)
		}

		if mergeDiffReport {
			result := diffmerge.Diff(merged.Base, forks[i])
			if !result.IsEmpty() {
				report := diffmerge.Render(result)
				reportPath := fmt.Sprintf("%s/diff.md", forkDir)
				if _, err := writer.WriteFile(reportPath, []byte(report), writer.Options{Check: mergeCheck}); err != nil {
					return fmt.Errorf("writing diff report for %s: %w", paths[i], err)
				}
				printVerbose("wrote diff report %s", reportPath)
			}
			if err := diffmerge.Enforce(result, handling); err != nil {
				return fmt.Errorf("fork %s: %w", paths[i], err)
			}
		}
	}

	printWarnings([]codegen.Warning(allWarnings))
	printInfo("merged %d fork(s) into %s", len(paths), mergeOutDir)
	return nil
}

func generateAndWrite(spec *ir.Spec, opt emit.Options, outDir string, check bool, warnings *[]gencontext.Warning) error {
	files, w, err := emit.Dispatch(spec, opt)
	if err != nil {
		return err
	}
	*warnings = append(*warnings, w...)
	for _, f := range files {
		path := outDir + "/" + f.Path
		status, err := writer.WriteFile(path, []byte(f.Content), writer.Options{Check: check})
		if err != nil {
			return fmt.Errorf("writing %s: %w", path, err)
		}
		printVerbose("%-9s %s", status, path)
	}
	return nil
}
