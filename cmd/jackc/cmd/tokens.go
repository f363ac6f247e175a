package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/waldhauser/jackc/internal/lexer"
)

var tokensOutDir string

var tokensCmd = &cobra.Command{
	Use:   "tokens <file.jack>",
	Short: "Dump the token stream of a .jack file as XML",
	Long: `tokens runs only the lexer and prints the resulting token stream as a
flat XML listing, one element per token. It exists for debugging and
for comparing jackc's tokenization against the classic Nand2Tetris
tokenizer output; it plays no part in VM code generation.`,
	Args: cobra.ExactArgs(1),
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
	tokensCmd.Flags().StringVar(&tokensOutDir, "out-dir", "", "write the XML here instead of stdout")
}

func runTokens(_ *cobra.Command, args []string) error {
	path := args[0]
	content, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("could not read %q: %w", path, err)
	}

	out := os.Stdout
	if tokensOutDir != "" {
		outPath := outputPath(path, tokensOutDir)
		outPath = outPath[:len(outPath)-len(".vm")] + "T.xml"
		f, err := os.OpenFile(outPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
		if err != nil {
			return fmt.Errorf("could not open %q for writing: %w", outPath, err)
		}
		defer f.Close()
		out = f
	}

	if err := lexer.WriteXML(out, string(content)); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
