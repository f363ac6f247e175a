package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync/atomic"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/waldhauser/jackc/internal/compileerr"
	"github.com/waldhauser/jackc/internal/compiler"
	"github.com/waldhauser/jackc/internal/lexer"
)

var (
	outDir         string
	stopOnError    bool
	compileVerbose bool
)

var compileCmd = &cobra.Command{
	Use:   "compile [path]",
	Short: "Compile a .jack file or directory to VM instructions",
	Long: `Compile translates Jack source into Hack VM instructions.

If path is a file, that file is compiled. If path is a directory, every
.jack file directly inside it is compiled (non-recursive). With no path,
the current working directory is used.

Each file is compiled independently: there is no linking across files, and
symbol references between classes are resolved textually at VM-call sites
(spec.md §1). A driver may therefore compile multiple files in parallel;
jackc fans compilation of a directory's files out across goroutines.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCompile,
}

func init() {
	rootCmd.AddCommand(compileCmd)

	compileCmd.Flags().StringVar(&outDir, "out-dir", "", "write .vm files here instead of alongside the source")
	compileCmd.Flags().BoolVar(&stopOnError, "stop-on-error", false, "abort the whole run on the first file that fails to compile (default: continue to the remaining files)")
	compileCmd.Flags().BoolVarP(&compileVerbose, "verbose", "v", false, "verbose output")
}

func runCompile(_ *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}

	files, err := collectJackFiles(target)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no .jack files found in %q", target)
	}

	logger := log.New(os.Stderr, "jackc: ", 0)

	var failures int64
	g, ctx := errgroup.WithContext(context.Background())
	if stopOnError {
		// One file at a time, so that no file is started after a failure.
		g.SetLimit(1)
	}
	for _, file := range files {
		file := file
		g.Go(func() error {
			if ctx.Err() != nil {
				return nil
			}
			outPath, compErr := compileFile(file, outDir)
			if compErr != nil {
				reportError(logger, compErr)
				atomic.AddInt64(&failures, 1)
				if stopOnError {
					return compErr
				}
				return nil
			}
			if compileVerbose {
				logger.Printf("compiled %s -> %s", file, outPath)
			} else {
				fmt.Printf("Compiled %s -> %s\n", file, outPath)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}
	if failures > 0 {
		return fmt.Errorf("%d of %d file(s) failed to compile", failures, len(files))
	}
	return nil
}

func reportError(logger *log.Logger, err error) {
	if cerr, ok := err.(*compileerr.Error); ok {
		fmt.Fprintln(os.Stderr, cerr.Format())
		return
	}
	logger.Print(err)
}

// collectJackFiles implements the driver surface of spec.md §6: a file
// argument is compiled as-is, a directory is scanned non-recursively for
// *.jack files.
func collectJackFiles(target string) ([]string, error) {
	info, err := os.Stat(target)
	if err != nil {
		return nil, compileerr.New(compileerr.IO, target, "", lexer.Position{}, "cannot stat %q: %v", target, err)
	}

	if !info.IsDir() {
		return []string{target}, nil
	}

	entries, err := os.ReadDir(target)
	if err != nil {
		return nil, compileerr.New(compileerr.IO, target, "", lexer.Position{}, "cannot read directory %q: %v", target, err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".jack" {
			continue
		}
		files = append(files, filepath.Join(target, entry.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// compileFile opens path, compiles it, and writes the .vm output. Both the
// source and the sink are released on every exit path (spec.md §5).
func compileFile(path, outDir string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", compileerr.New(compileerr.IO, path, "", lexer.Position{}, "could not read file: %v", err)
	}

	outPath := outputPath(path, outDir)
	sink, err := os.OpenFile(outPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return outPath, compileerr.New(compileerr.IO, path, "", lexer.Position{}, "could not open %q for writing: %v", outPath, err)
	}
	defer sink.Close()

	if err := compiler.CompileSource(path, string(content), sink); err != nil {
		return outPath, err
	}
	return outPath, nil
}

func outputPath(sourcePath, outDir string) string {
	ext := filepath.Ext(sourcePath)
	stem := strings.TrimSuffix(filepath.Base(sourcePath), ext) + ".vm"
	if outDir == "" {
		return filepath.Join(filepath.Dir(sourcePath), stem)
	}
	return filepath.Join(outDir, stem)
}
