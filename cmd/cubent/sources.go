package main

import (
	"fmt"
	"os"

	"cubent/internal/project"
)

// resolveInputs returns the source files to compile and the manifest when
// one governs the build. An explicit path argument bypasses manifest
// discovery.
func resolveInputs(args []string) ([]string, *project.Manifest, error) {
	if len(args) > 0 {
		path := args[0]
		st, err := os.Stat(path)
		if err != nil {
			return nil, nil, err
		}
		if !st.IsDir() {
			return []string{path}, nil, nil
		}
		files, err := project.DiscoverSources(path)
		if err != nil {
			return nil, nil, err
		}
		if len(files) == 0 {
			return nil, nil, fmt.Errorf("no %s files under %s", project.SourceExt, path)
		}
		return files, nil, nil
	}

	manifest, err := project.Find(".")
	if err != nil {
		return nil, nil, err
	}
	files, err := project.DiscoverSources(manifest.SourceDir())
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return nil, nil, fmt.Errorf("no %s files under %s", project.SourceExt, manifest.SourceDir())
	}
	return files, manifest, nil
}
