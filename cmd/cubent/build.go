package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"cubent/internal/diagfmt"
	"cubent/internal/driver"
	"cubent/internal/emit"
	"cubent/internal/mcmeta"
	"cubent/internal/project"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [path]",
	Short: "Build a cubent project into a datapack",
	Long:  "Build compiles the project's sources and writes the datapack tree, using cubent.toml when no path is given.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBuild,
}

func init() {
	buildCmd.Flags().StringP("out", "o", "", "output directory (default from cubent.toml)")
	buildCmd.Flags().StringP("description", "d", "", "pack description (default from cubent.toml)")
	buildCmd.Flags().String("mc-version", "", "target Minecraft version, or \"latest\"")
	buildCmd.Flags().Int("pack-format", 0, "explicit pack_format, overrides --mc-version")
	buildCmd.Flags().String("ui", "auto", "interactive progress (auto|on|off)")
	buildCmd.Flags().Int("jobs", 0, "parse parallelism (0 = number of CPUs)")
	buildCmd.Flags().Bool("offline", false, "never touch the network for version resolution")
}

func runBuild(cmd *cobra.Command, args []string) error {
	outFlag, err := cmd.Flags().GetString("out")
	if err != nil {
		return err
	}
	descFlag, err := cmd.Flags().GetString("description")
	if err != nil {
		return err
	}
	mcVersionFlag, err := cmd.Flags().GetString("mc-version")
	if err != nil {
		return err
	}
	packFormatFlag, err := cmd.Flags().GetInt("pack-format")
	if err != nil {
		return err
	}
	uiValue, err := cmd.Flags().GetString("ui")
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	offline, err := cmd.Flags().GetBool("offline")
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

	uiModeValue, err := readUIMode(uiValue)
	if err != nil {
		return err
	}

	files, manifest, err := resolveInputs(args)
	if err != nil {
		return err
	}

	outDir := outFlag
	if outDir == "" {
		if manifest != nil {
			outDir = manifest.OutputDir()
		} else {
			outDir = "dist"
		}
	}

	description := descFlag
	if description == "" && manifest != nil {
		description = manifest.Pack.Description
	}
	if description == "" {
		description = filepath.Base(outDir)
	}

	packFormat, err := resolvePackFormat(cmd.Context(), packFormatFlag, mcVersionFlag, manifest, offline)
	if err != nil {
		return err
	}

	opts := driver.Options{
		Jobs:           jobs,
		MaxDiagnostics: maxDiagnostics,
	}
	meta := emit.PackMeta{Description: description, PackFormat: packFormat}

	var res *driver.Result
	if shouldUseTUI(uiModeValue) && !quiet {
		res = runBuildWithUI(cmd.Context(), "cubent build", opts, files, meta, outDir)
	} else {
		res = driver.Build(cmd.Context(), opts, files, meta, outDir)
	}

	if res.Bag.Len() > 0 {
		diagfmt.Render(os.Stderr, res.Bag.Items(), res.FileSet, useColor(cmd, os.Stderr))
	}
	if res.Bag.HasErrors() {
		return errors.New(diagfmt.Summary(res.Bag.Items()))
	}
	if !quiet {
		fmt.Fprintf(os.Stdout, "built %s\n", filepath.ToSlash(outDir))
	}
	return nil
}

// resolvePackFormat picks the pack_format from, in order: the explicit
// flag, the --mc-version flag, the manifest's mc_version, and "latest".
func resolvePackFormat(ctx context.Context, packFormatFlag int, mcVersionFlag string, manifest *project.Manifest, offline bool) (int, error) {
	if packFormatFlag > 0 {
		return packFormatFlag, nil
	}

	want := mcVersionFlag
	if want == "" && manifest != nil {
		want = manifest.Build.McVersion
	}
	if want == "" {
		want = mcmeta.Latest
	}

	resolver := newResolver(offline)
	var v mcmeta.Version
	if want == mcmeta.Latest {
		v = resolver.ResolveLatest(ctx)
	} else {
		parsed, err := mcmeta.ParseVersion(want)
		if err != nil {
			return 0, err
		}
		if !resolver.KnownVersion(ctx, parsed) {
			fmt.Fprintf(os.Stderr, "warning: minecraft %s is not a known release\n", parsed)
		}
		v = parsed
	}
	return mcmeta.PackFormat(v)
}

func newResolver(offline bool) *mcmeta.Resolver {
	cache, err := mcmeta.OpenDiskCache("cubent")
	if err != nil {
		cache = nil
	}
	var client *http.Client
	if !offline {
		client = http.DefaultClient
	}
	return mcmeta.NewResolver(cache, client)
}
