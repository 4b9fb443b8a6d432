package manifest

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const testTemplate = `{ pkgs ? import <nixpkgs> {} }:
pkgs.mkShell {
  buildInputs = with pkgs; [
    %s
  ];
}
`

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func newTestRuntimesDir(t *testing.T) string {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "runtimes")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	return dir
}

func TestLoadRuntime(t *testing.T) {
	dir := newTestRuntimesDir(t)
	path := filepath.Join(dir, "go.yaml")
	writeFile(t, path, `name: go
versions:
  - 1.22
extension: go
compile:
  - go
  - build
run:
  - ./main
nix_pkgs:
  - go
  - gcc
`)

	rt, err := LoadRuntime(path)
	if err != nil {
		t.Fatalf("load runtime: %v", err)
	}
	if rt.Name != "go" {
		t.Errorf("expected name go, got %s", rt.Name)
	}
	if rt.Extension != "go" {
		t.Errorf("expected extension go, got %s", rt.Extension)
	}
	if len(rt.NixPkgs) != 2 || rt.NixPkgs[0] != "go" || rt.NixPkgs[1] != "gcc" {
		t.Errorf("expected nix_pkgs [go gcc], got %v", rt.NixPkgs)
	}
}

func TestGenerator_Generate(t *testing.T) {
	dir := newTestRuntimesDir(t)
	writeFile(t, filepath.Join(dir, "go.yaml"), "name: go\nextension: go\nnix_pkgs:\n  - go\n  - gcc\n")
	writeFile(t, filepath.Join(dir, "python.yaml"), "name: python\nextension: py\nnix_pkgs:\n  - python312\n")
	writeFile(t, filepath.Join(dir, "notes.txt"), "not a descriptor")
	writeFile(t, filepath.Join(dir, "template.nix"), testTemplate)

	g := &Generator{
		TemplatePath: filepath.Join(dir, "template.nix"),
		RuntimesDir:  dir,
		OutputPath:   filepath.Join(dir, "default.nix"),
	}
	if err := g.Generate(); err != nil {
		t.Fatalf("generate: %v", err)
	}

	out, err := os.ReadFile(g.OutputPath)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	content := string(out)

	// Descriptors are read in file name order: go.yaml before python.yaml
	want := "    go\n    gcc\n    python312\n"
	if !strings.Contains(content, want) {
		t.Errorf("expected package block\n%q\ngot\n%q", want, content)
	}
	if strings.Contains(content, "%s") {
		t.Errorf("expected marker to be replaced, got\n%s", content)
	}
	if !strings.HasPrefix(content, "{ pkgs ? import <nixpkgs> {} }:") {
		t.Errorf("expected template prefix to be preserved, got\n%s", content)
	}
}

func TestGenerator_MissingMarker(t *testing.T) {
	dir := newTestRuntimesDir(t)
	writeFile(t, filepath.Join(dir, "template.nix"), "{ pkgs }: pkgs.mkShell {}\n")

	g := &Generator{
		TemplatePath: filepath.Join(dir, "template.nix"),
		RuntimesDir:  dir,
		OutputPath:   filepath.Join(dir, "default.nix"),
	}
	err := g.Generate()
	if err == nil {
		t.Fatal("expected error for a template without a marker")
	}
	if !strings.Contains(err.Error(), "marker") {
		t.Errorf("expected marker error, got %v", err)
	}
}

func TestGenerator_BadDescriptor(t *testing.T) {
	dir := newTestRuntimesDir(t)
	writeFile(t, filepath.Join(dir, "template.nix"), testTemplate)
	writeFile(t, filepath.Join(dir, "broken.yaml"), "name: [unclosed\n")

	g := &Generator{
		TemplatePath: filepath.Join(dir, "template.nix"),
		RuntimesDir:  dir,
		OutputPath:   filepath.Join(dir, "default.nix"),
	}
	err := g.Generate()
	if err == nil {
		t.Fatal("expected error for a broken descriptor")
	}
	if !strings.Contains(err.Error(), "broken.yaml") {
		t.Errorf("expected error naming the descriptor, got %v", err)
	}
}

func TestGenerator_EmptyRuntimesDir(t *testing.T) {
	dir := newTestRuntimesDir(t)
	writeFile(t, filepath.Join(dir, "template.nix"), testTemplate)

	g := &Generator{
		TemplatePath: filepath.Join(dir, "template.nix"),
		RuntimesDir:  dir,
		OutputPath:   filepath.Join(dir, "default.nix"),
	}
	if err := g.Generate(); err != nil {
		t.Fatalf("generate: %v", err)
	}

	out, err := os.ReadFile(g.OutputPath)
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	if strings.Contains(string(out), "%s") {
		t.Errorf("expected marker replaced even with no descriptors, got\n%s", out)
	}
}
