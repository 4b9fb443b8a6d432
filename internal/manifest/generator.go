package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Runtime holds the descriptor fields the harness consumes. Descriptors carry
// more (versions, compile and run commands), those are ignored here.
type Runtime struct {
	Name      string   `yaml:"name"`
	Extension string   `yaml:"extension"`
	NixPkgs   []string `yaml:"nix_pkgs"`
}

// LoadRuntime parses a single runtime descriptor file
func LoadRuntime(path string) (Runtime, error) {
	var rt Runtime
	data, err := os.ReadFile(path)
	if err != nil {
		return rt, fmt.Errorf("read descriptor: %w", err)
	}
	if err := yaml.Unmarshal(data, &rt); err != nil {
		return rt, fmt.Errorf("parse descriptor %s: %w", filepath.Base(path), err)
	}
	return rt, nil
}

// marker is the substitution point in the manifest template
const marker = "%s"

// packageIndent aligns spliced package names with the template's list block
const packageIndent = "\n    "

// Generator merges runtime descriptors into an environment manifest
type Generator struct {
	TemplatePath string
	RuntimesDir  string
	OutputPath   string
}

// Generate reads the template, splices every descriptor's package list in at
// the marker and writes the merged manifest.
func (g *Generator) Generate() error {
	template, err := os.ReadFile(g.TemplatePath)
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}

	content := string(template)
	pos := strings.Index(content, marker)
	if pos < 0 {
		return fmt.Errorf("template %s has no %s marker", g.TemplatePath, marker)
	}

	pkgs, err := g.collectPackages()
	if err != nil {
		return err
	}

	merged := content[:pos] + strings.Join(pkgs, packageIndent) + content[pos+len(marker):]
	if err := os.WriteFile(g.OutputPath, []byte(merged), 0644); err != nil {
		return fmt.Errorf("write manifest: %w", err)
	}
	return nil
}

// collectPackages gathers nix package names from every descriptor in the
// runtimes directory, in file name order.
func (g *Generator) collectPackages() ([]string, error) {
	entries, err := os.ReadDir(g.RuntimesDir)
	if err != nil {
		return nil, fmt.Errorf("read runtimes dir: %w", err)
	}

	var pkgs []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := filepath.Ext(entry.Name())
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		rt, err := LoadRuntime(filepath.Join(g.RuntimesDir, entry.Name()))
		if err != nil {
			return nil, err
		}
		pkgs = append(pkgs, rt.NixPkgs...)
	}
	return pkgs, nil
}
