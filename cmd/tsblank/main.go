// Command tsblank is a local development harness for the transform
// implemented in internal/erase. It exists so the core can be driven
// by hand from a shell without going through the C ABI boundary
// (cmd/tsblank-capi), mirroring the way the teacher's own cmd/migrate
// gives direct command-line access to its transform package.
//
// Usage:
//
//	tsblank run <file> [--path virtual.ts] [--dump]
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tsblank/tsblank/internal/erase"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "tsblank",
		Short:         "Erase TypeScript types and rewrite ES modules to CommonJS",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newRunCmd())
	return root
}

func newRunCmd() *cobra.Command {
	var (
		path string
		dump bool
	)

	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Transform a single file and print the result to stdout",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file := args[0]
			source, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("reading %s: %w", file, err)
			}

			lang := languageForFile(file)

			if dump {
				sexp, err := erase.DumpTree(source, lang)
				if err != nil {
					return fmt.Errorf("parsing %s: %w", file, err)
				}
				fmt.Println(sexp)
				return nil
			}

			if path == "" {
				path = file
			}

			out, err := erase.TransformLang(source, path, lang)
			if err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "error: %v\n", err)
				return err
			}

			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&path, "path", "", "virtual path substituted into import.meta rewrites (default: the input file path)")
	cmd.Flags().BoolVar(&dump, "dump", false, "print the S-expression parse tree instead of transforming")

	return cmd
}

// languageForFile determines the tree-sitter grammar from a file
// extension, same mapping the teacher's migrate CLI uses.
func languageForFile(path string) erase.Language {
	switch filepath.Ext(path) {
	case ".ts", ".mts":
		return erase.TypeScript
	case ".tsx":
		return erase.TSX
	default:
		return erase.JavaScript
	}
}
