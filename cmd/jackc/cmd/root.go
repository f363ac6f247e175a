// Package cmd implements the jackc command-line driver: directory
// traversal, argument handling, and per-file I/O orchestration around the
// compiler core (spec.md §1, "treated as an external driver").
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information, set by build flags.
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "jackc",
	Short: "Jack language compiler",
	Long: `jackc compiles Jack source files to Hack VM instructions.

Jack is the small, statically-typed, object-based teaching language of the
Nand2Tetris platform. jackc performs a single pass over each .jack class:
lexing, recursive-descent parsing, and VM code generation are interleaved,
with no persistent AST and no linking across files.`,
	Version: Version,
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
}
