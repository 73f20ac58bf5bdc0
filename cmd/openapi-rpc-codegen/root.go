package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose bool
	quiet   bool
)

var rootCmd = &cobra.Command{
	Use:   "openapi-rpc-codegen",
	Short: "Compile an OpenAPI 3.1 document into typed client code and runtime validators",
	Long: `openapi-rpc-codegen reads an OpenAPI 3.1 document and emits typed
request/response declarations plus runtime validators for Go and
TypeScript consumers.

Example:
  openapi-rpc-codegen generate --spec openapi.yaml --out ./gen
  openapi-rpc-codegen merge --forks 'specs/*/openapi.yaml' --out ./gen`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print every accumulated warning")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(mergeCmd)

	if err := rootCmd.Execute(); err != nil {
		printError("%v", err)
		os.Exit(1)
	}
}

func printInfo(format string, args ...interface{}) {
	if !quiet {
		fmt.Fprintf(os.Stdout, format+"\n", args...)
	}
}

func printVerbose(format string, args ...interface{}) {
	if verbose && !quiet {
		fmt.Fprintf(os.Stdout, format+"\n", args...)
	}
}

func printError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
}
