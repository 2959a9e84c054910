// Package emit serializes a lowered program into a datapack directory tree.
// The tree is written into a fresh temporary directory next to the target
// and swapped in atomically, so a failed build never leaves a half-written
// pack behind.
package emit

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"cubent/internal/ir"
)

// PackMeta carries the pack.mcmeta fields.
type PackMeta struct {
	Description string
	PackFormat  int
}

type packMcmeta struct {
	Pack packSection `json:"pack"`
}

type packSection struct {
	PackFormat  int    `json:"pack_format"`
	Description string `json:"description"`
}

type tagFile struct {
	Values []string `json:"values"`
}

// Write builds the full pack under outDir. Identical programs produce
// byte-identical trees.
func Write(prog *ir.Program, meta PackMeta, outDir string) error {
	parent := filepath.Dir(outDir)
	if err := os.MkdirAll(parent, 0o755); err != nil {
		return fmt.Errorf("create output parent: %w", err)
	}

	tmp, err := os.MkdirTemp(parent, ".cubent-build-*")
	if err != nil {
		return fmt.Errorf("create staging dir: %w", err)
	}
	defer os.RemoveAll(tmp)

	if err := writeTree(prog, meta, tmp); err != nil {
		return err
	}
	return swapIn(tmp, outDir)
}

func writeTree(prog *ir.Program, meta PackMeta, root string) error {
	if err := writeMcmeta(meta, filepath.Join(root, "pack.mcmeta")); err != nil {
		return err
	}
	for _, fn := range prog.Functions {
		if err := writeFunction(fn, root); err != nil {
			return err
		}
	}
	return writeTags(prog, root)
}

func writeMcmeta(meta PackMeta, path string) error {
	payload := packMcmeta{Pack: packSection{
		PackFormat:  meta.PackFormat,
		Description: meta.Description,
	}}
	data, err := json.MarshalIndent(payload, "", "    ")
	if err != nil {
		return fmt.Errorf("encode pack.mcmeta: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write pack.mcmeta: %w", err)
	}
	return nil
}

func writeFunction(fn *ir.Function, root string) error {
	rel := filepath.Join("data", fn.Path.Namespace, "functions",
		filepath.FromSlash(fn.Path.Name)+".mcfunction")
	path := filepath.Join(root, rel)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(rel), err)
	}

	var b strings.Builder
	for _, cmd := range fn.Commands {
		b.WriteString(cmd)
		b.WriteByte('\n')
	}
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	return nil
}

// writeTags registers hook functions in the vanilla load and tick tags.
// Tags are written only when at least one function hooks the event.
func writeTags(prog *ir.Program, root string) error {
	load := hookLocations(prog, ir.HookLoad)
	tick := hookLocations(prog, ir.HookTick)

	if len(load) == 0 && len(tick) == 0 {
		return nil
	}
	dir := filepath.Join(root, "data", "minecraft", "tags", "functions")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create tag dir: %w", err)
	}
	if len(load) > 0 {
		if err := writeTag(filepath.Join(dir, "load.json"), load); err != nil {
			return err
		}
	}
	if len(tick) > 0 {
		if err := writeTag(filepath.Join(dir, "tick.json"), tick); err != nil {
			return err
		}
	}
	return nil
}

func hookLocations(prog *ir.Program, hook ir.Hook) []string {
	var out []string
	for _, fn := range prog.Functions {
		if fn.Hook == hook {
			out = append(out, fn.Path.Location())
		}
	}
	sort.Strings(out)
	return out
}

func writeTag(path string, values []string) error {
	data, err := json.MarshalIndent(tagFile{Values: values}, "", "    ")
	if err != nil {
		return fmt.Errorf("encode tag: %w", err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

// swapIn replaces outDir with the staged tree. The old tree is moved aside
// first so the destination is never observed half-replaced.
func swapIn(staged, outDir string) error {
	old := outDir + ".old"
	if err := os.RemoveAll(old); err != nil {
		return fmt.Errorf("clear previous backup: %w", err)
	}

	hadOld := false
	if _, err := os.Stat(outDir); err == nil {
		if err := os.Rename(outDir, old); err != nil {
			return fmt.Errorf("move old pack aside: %w", err)
		}
		hadOld = true
	}

	if err := os.Rename(staged, outDir); err != nil {
		if hadOld {
			// Best effort restore; the staged tree is kept for inspection.
			if rerr := os.Rename(old, outDir); rerr != nil {
				return fmt.Errorf("swap pack in: %w (restore also failed: %v)", err, rerr)
			}
		}
		return fmt.Errorf("swap pack in: %w", err)
	}

	if hadOld {
		if err := os.RemoveAll(old); err != nil {
			return fmt.Errorf("remove old pack: %w", err)
		}
	}
	return nil
}
