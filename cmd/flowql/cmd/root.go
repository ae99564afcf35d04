// Package cmd implements the flowql command-line front end: parse,
// convert, vectorize, and diagnostics subcommands over the flowql parser
// pipeline.
package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/flowql/internal/config"
	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var configPath string

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "flowql",
	Short: "flowql parser, converter, and vectorizer",
	Long: `flowql is a front end for a Flux-like pipeline query language:
a recursive-descent parser, a semantic converter that lowers the surface
AST into a type-slotted semantic graph, and a prototype vectorization
pass over that graph.`,
	Version:           Version,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "flowql.yaml", "path to config file")
}

func loadConfig(*cobra.Command, []string) error {
	loaded, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg = loaded
	return nil
}

func exitWithError(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+msg+"\n", args...)
	os.Exit(1)
}
