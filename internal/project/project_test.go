package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ManifestName)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write manifest: %v", err)
	}
	return path
}

func TestLoadManifest(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `
[pack]
name = "boo"
description = "a test pack"
icon = "pack.png"

[build]
source = "sources"
output = "out/boo"
mc_version = "1.21"
`)
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Pack.Name != "boo" || m.Pack.Description != "a test pack" {
		t.Fatalf("pack section: %+v", m.Pack)
	}
	if m.Build.McVersion != "1.21" {
		t.Fatalf("build section: %+v", m.Build)
	}
	if m.SourceDir() != filepath.Join(dir, "sources") {
		t.Fatalf("SourceDir: %s", m.SourceDir())
	}
	if m.OutputDir() != filepath.Join(dir, "out", "boo") {
		t.Fatalf("OutputDir: %s", m.OutputDir())
	}
}

func TestLoadRequiresName(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[pack]\ndescription = \"anonymous\"\n")
	if _, err := Load(path); err == nil {
		t.Fatal("missing pack.name must fail")
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[pack]\nname = \"x\"\ncolour = \"red\"\n")
	if _, err := Load(path); err == nil {
		t.Fatal("unknown keys must fail")
	}
}

func TestDefaultsApplied(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, "[pack]\nname = \"boo\"\n")
	m, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if m.Build.Source != "src" {
		t.Fatalf("default source: %q", m.Build.Source)
	}
	if m.Build.Output != filepath.Join("dist", "boo") {
		t.Fatalf("default output: %q", m.Build.Output)
	}
}

func TestFindWalksUp(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, "[pack]\nname = \"boo\"\n")
	nested := filepath.Join(root, "src", "deep")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	m, err := Find(nested)
	if err != nil {
		t.Fatalf("Find: %v", err)
	}
	if m.Pack.Name != "boo" {
		t.Fatalf("found wrong manifest: %+v", m)
	}
}

func TestFindNotFound(t *testing.T) {
	_, err := Find(t.TempDir())
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("want ErrNotExist, got %v", err)
	}
}

func TestWriteToRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ManifestName)
	m := Default("boo")
	if err := m.WriteTo(path); err != nil {
		t.Fatalf("first write: %v", err)
	}
	if err := m.WriteTo(path); err == nil {
		t.Fatal("second write must refuse to overwrite")
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("written manifest must load back: %v", err)
	}
	if loaded.Pack.Name != "boo" || loaded.Build.McVersion != "latest" {
		t.Fatalf("round trip: %+v", loaded)
	}
}

func TestDiscoverSourcesSorted(t *testing.T) {
	dir := t.TempDir()
	mk := func(rel string) {
		path := filepath.Join(dir, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("namespace n { }"), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	mk("zz.cubent")
	mk("aa.cubent")
	mk("sub/mid.cubent")
	mk("notes.txt")
	mk(".hidden/secret.cubent")

	files, err := DiscoverSources(dir)
	if err != nil {
		t.Fatalf("DiscoverSources: %v", err)
	}
	if len(files) != 3 {
		t.Fatalf("file count: %v", files)
	}
	if filepath.Base(files[0]) != "aa.cubent" {
		t.Fatalf("not sorted: %v", files)
	}
	for _, f := range files {
		if filepath.Base(filepath.Dir(f)) == ".hidden" {
			t.Fatalf("hidden dir not skipped: %s", f)
		}
	}
}
