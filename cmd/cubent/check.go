package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cubent/internal/diagfmt"
	"cubent/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path]",
	Short: "Type-check a cubent project without emitting a pack",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "parse parallelism (0 = number of CPUs)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return err
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return err
	}

	files, _, err := resolveInputs(args)
	if err != nil {
		return err
	}

	res := driver.Compile(cmd.Context(), driver.Options{
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
	}, files)

	if res.Bag.Len() > 0 {
		diagfmt.Render(os.Stderr, res.Bag.Items(), res.FileSet, useColor(cmd, os.Stderr))
	}
	if res.Bag.HasErrors() {
		return errors.New(diagfmt.Summary(res.Bag.Items()))
	}
	if !quiet {
		fmt.Fprintf(os.Stdout, "checked %d file(s)\n", len(files))
	}
	return nil
}
