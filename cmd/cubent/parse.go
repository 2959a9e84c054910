package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cubent/internal/diag"
	"cubent/internal/diagfmt"
	"cubent/internal/driver"
	"cubent/internal/source"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.cubent",
	Short: "Parse a cubent source file and dump the syntax tree",
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runParse(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}

	fs := source.NewFileSet()
	bag := diag.NewBag(maxDiagnostics)
	file, err := driver.ParseFile(fs, args[0], bag)
	if err != nil {
		return err
	}

	if bag.Len() > 0 {
		diagfmt.Render(os.Stderr, bag.Items(), fs, useColor(cmd, os.Stderr))
	}

	switch format {
	case "pretty":
		return diagfmt.FormatASTPretty(os.Stdout, file, fs)
	case "json":
		return diagfmt.FormatASTJSON(os.Stdout, file)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
