package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"reform/internal/diagfmt"
	"reform/internal/driver"
	"reform/internal/options"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file",
	Short: "Print the tokens of a source file",
	Long:  `Tokenize lexes one file and prints its tokens without formatting it`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	tokenizeCmd.Flags().StringP("lang", "l", "", "force the language (C|CPP|D|CS|JAVA)")
	tokenizeCmd.Flags().StringSliceP("types", "t", nil, "file with extra type names, may repeat")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	filePath := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	langTag, err := cmd.Flags().GetString("lang")
	if err != nil {
		return fmt.Errorf("failed to get lang flag: %w", err)
	}
	typeFiles, err := cmd.Flags().GetStringSlice("types")
	if err != nil {
		return fmt.Errorf("failed to get types flag: %w", err)
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	cfg := options.Defaults()
	for _, tp := range typeFiles {
		if err := options.LoadTypes(tp, cfg); err != nil {
			return fmt.Errorf("types %s: %w", tp, err)
		}
	}

	// Выполняем токенизацию
	result, err := driver.Tokenize(filePath, parseLangFlag(langTag, os.Stderr), cfg.Types, maxDiagnostics)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	// Выводим диагностику в stderr, если есть
	if result.Bag.HasErrors() || result.Bag.HasWarnings() {
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:   useColor(cmd, os.Stderr),
			Context: 2,
		})
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), result.Tokens, result.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), result.Tokens)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
