package adapter

import (
	"os"
	"path/filepath"
	"testing"

	m "perlver.dev/pkg/perlver/internal/model"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	return path
}

func baseNames(paths []m.Path) []string {
	names := make([]string, 0, len(paths))
	for _, p := range paths {
		names = append(names, filepath.Base(string(p)))
	}

	return names
}

func TestFindPerlFiles_Recursive(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "script.pl", "print 1;\n")
	writeFile(t, dir, "lib/Mod.pm", "1;\n")
	writeFile(t, dir, "t/basic.t", "ok(1);\n")
	writeFile(t, dir, "app.psgi", "my $app;\n")
	writeFile(t, dir, "notes.txt", "not perl\n")
	writeFile(t, dir, "lib/deep/Deeper.pm", "1;\n")

	a := NewLocalSourceFSAdapter()

	files, err := a.FindPerlFiles([]m.Path{m.Path(dir + "/...")}, nil)
	if err != nil {
		t.Fatalf("FindPerlFiles: %v", err)
	}

	if len(files) != 5 {
		t.Fatalf("files = %v, want 5 perl files", baseNames(files))
	}

	for i := 1; i < len(files); i++ {
		if files[i-1] >= files[i] {
			t.Errorf("results not sorted: %s before %s", files[i-1], files[i])
		}
	}
}

func TestFindPerlFiles_NonRecursive(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "top.pl", "print 1;\n")
	writeFile(t, dir, "lib/Nested.pm", "1;\n")

	a := NewLocalSourceFSAdapter()

	files, err := a.FindPerlFiles([]m.Path{m.Path(dir)}, nil)
	if err != nil {
		t.Fatalf("FindPerlFiles: %v", err)
	}

	if len(files) != 1 || filepath.Base(string(files[0])) != "top.pl" {
		t.Errorf("files = %v, want only top.pl", baseNames(files))
	}
}

func TestFindPerlFiles_Exclude(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "keep.pl", "print 1;\n")
	writeFile(t, dir, "t/skip.t", "ok(1);\n")
	writeFile(t, dir, "lib/Skip.pm", "1;\n")

	a := NewLocalSourceFSAdapter()

	files, err := a.FindPerlFiles([]m.Path{m.Path(dir + "/...")}, []string{"*.t", "lib/**"})
	if err != nil {
		t.Fatalf("FindPerlFiles: %v", err)
	}

	if len(files) != 1 || filepath.Base(string(files[0])) != "keep.pl" {
		t.Errorf("files = %v, want only keep.pl", baseNames(files))
	}
}

func TestFindPerlFiles_SkipsHiddenAndVendorDirs(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "keep.pl", "print 1;\n")
	writeFile(t, dir, ".git/hook.pl", "print 1;\n")
	writeFile(t, dir, "blib/Build.pm", "1;\n")
	writeFile(t, dir, "vendor/Dep.pm", "1;\n")

	a := NewLocalSourceFSAdapter()

	files, err := a.FindPerlFiles([]m.Path{m.Path(dir + "/...")}, nil)
	if err != nil {
		t.Fatalf("FindPerlFiles: %v", err)
	}

	if len(files) != 1 || filepath.Base(string(files[0])) != "keep.pl" {
		t.Errorf("files = %v, want only keep.pl", baseNames(files))
	}
}

func TestFindPerlFiles_ShebangScript(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "perltool", "#!/usr/bin/perl\nprint 1;\n")
	writeFile(t, dir, "shtool", "#!/bin/sh\necho 1\n")
	writeFile(t, dir, "plain", "no shebang here\n")

	a := NewLocalSourceFSAdapter()

	files, err := a.FindPerlFiles([]m.Path{m.Path(dir + "/...")}, nil)
	if err != nil {
		t.Fatalf("FindPerlFiles: %v", err)
	}

	if len(files) != 1 || filepath.Base(string(files[0])) != "perltool" {
		t.Errorf("files = %v, want only perltool", baseNames(files))
	}
}

func TestFindPerlFiles_SingleFileRoot(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "one.pl", "print 1;\n")

	a := NewLocalSourceFSAdapter()

	files, err := a.FindPerlFiles([]m.Path{m.Path(path)}, nil)
	if err != nil {
		t.Fatalf("FindPerlFiles: %v", err)
	}

	if len(files) != 1 || string(files[0]) != path {
		t.Errorf("files = %v, want the file itself", files)
	}
}

func TestFindPerlFiles_MissingRoot(t *testing.T) {
	a := NewLocalSourceFSAdapter()

	if _, err := a.FindPerlFiles([]m.Path{"does/not/exist"}, nil); err == nil {
		t.Error("expected error for missing root")
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "one.pl", "print 1;\n")

	a := NewLocalSourceFSAdapter()

	content, err := a.ReadFile(m.Path(path))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}

	if string(content) != "print 1;\n" {
		t.Errorf("content = %q", content)
	}

	if _, err := a.ReadFile("does/not/exist.pl"); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFindPerlFiles_DeduplicatesOverlappingRoots(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "one.pl", "print 1;\n")

	a := NewLocalSourceFSAdapter()

	files, err := a.FindPerlFiles([]m.Path{m.Path(dir + "/..."), m.Path(dir + "/...")}, nil)
	if err != nil {
		t.Fatalf("FindPerlFiles: %v", err)
	}

	if len(files) != 1 {
		t.Errorf("files = %v, want deduplicated single entry", files)
	}
}
