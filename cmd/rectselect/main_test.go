package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/RectSelect/internal/project"
)

// resetFlags clears the package-level flag values so tests do not leak
// settings into each other.
func resetFlags() {
	flagMaxNodes = 0
	flagPDF = ""
	flagDXF = ""
	flagLabels = ""
	flagSave = ""
}

func TestRunSolveSaveProject(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	resetFlags()

	dir := t.TempDir()
	input := filepath.Join(dir, "rects.txt")
	if err := os.WriteFile(input, []byte("2\n0 0 2 2\n3 0 5 2\n"), 0644); err != nil {
		t.Fatal(err)
	}
	savePath := filepath.Join(dir, "run.json")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{input, "--save", savePath})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("solve failed: %v", err)
	}

	if !strings.Contains(out.String(), "Rectangles selected: 2") {
		t.Errorf("report missing selection count:\n%s", out.String())
	}

	p, err := project.LoadProject(savePath)
	if err != nil {
		t.Fatalf("saved project unreadable: %v", err)
	}
	if p.Name != "rects" {
		t.Errorf("project name = %q, want rects", p.Name)
	}
	if len(p.Rects) != 2 {
		t.Fatalf("saved project has %d rects, want 2", len(p.Rects))
	}
	if p.Rects[1].XL != 3 || p.Rects[1].XR != 5 {
		t.Errorf("rect 1 = (%d,%d)-(%d,%d)", p.Rects[1].XL, p.Rects[1].YB, p.Rects[1].XR, p.Rects[1].YT)
	}
	if p.Result == nil || p.Result.Count != 2 {
		t.Errorf("saved result not preserved: %+v", p.Result)
	}

	cfg, err := project.LoadAppConfig(project.DefaultConfigPath())
	if err != nil {
		t.Fatalf("config unreadable after save: %v", err)
	}
	if len(cfg.RecentProjects) != 1 || cfg.RecentProjects[0] != savePath {
		t.Errorf("recent projects = %v, want [%s]", cfg.RecentProjects, savePath)
	}
}

func TestRunSolveStdin(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	resetFlags()

	input := filepath.Join(t.TempDir(), "stdin.txt")
	if err := os.WriteFile(input, []byte("1\n0 0 4 4\n"), 0644); err != nil {
		t.Fatal(err)
	}
	f, err := os.Open(input)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	oldStdin := os.Stdin
	os.Stdin = f
	defer func() { os.Stdin = oldStdin }()

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{})
	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("solve failed: %v", err)
	}
	if !strings.Contains(out.String(), "Rect 0: (0,0)-(4,4)") {
		t.Errorf("report missing rectangle line:\n%s", out.String())
	}
}
