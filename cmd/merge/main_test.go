package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/df07/go-smallpt/pkg/core"
	"github.com/df07/go-smallpt/pkg/film"
	"github.com/df07/go-smallpt/pkg/loaders"
	"github.com/df07/go-smallpt/pkg/renderer"
)

func writePartial(t *testing.T, dir, name string, width, height, samples int, value core.Vec3) string {
	t.Helper()
	buf := film.NewBuffer(width, height)
	buf.Samples = samples
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			buf.SetSum(x, y, value)
		}
	}
	path := filepath.Join(dir, name)
	if err := loaders.SavePartial(path, buf); err != nil {
		t.Fatalf("SavePartial failed: %v", err)
	}
	return path
}

func TestRun_MergesPartials(t *testing.T) {
	dir := t.TempDir()
	a := writePartial(t, dir, "a.part", 3, 2, 4, core.NewVec3(4, 0, 0))
	b := writePartial(t, dir, "b.part", 3, 2, 4, core.NewVec3(4, 8, 0))
	output := filepath.Join(dir, "merged.png")

	var log bytes.Buffer
	if err := run([]string{"-o", output, a, b}, renderer.NewWriterLogger(&log), io.Discard); err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !strings.Contains(log.String(), "Merged 8 samples") {
		t.Errorf("Expected merged sample count in log, got %q", log.String())
	}

	img, err := loaders.LoadImage(output)
	if err != nil {
		t.Fatalf("LoadImage failed: %v", err)
	}
	// Mean radiance is (1, 1, 0)
	if got := img.At(2, 1); got != core.NewVec3(1, 1, 0) {
		t.Errorf("Expected (1,1,0), got %v", got)
	}
}

func TestRun_DimensionMismatch(t *testing.T) {
	dir := t.TempDir()
	a := writePartial(t, dir, "a.part", 10, 10, 4, core.Vec3{})
	b := writePartial(t, dir, "b.part", 20, 10, 4, core.Vec3{})
	output := filepath.Join(dir, "merged.png")

	err := run([]string{"-o", output, a, b}, renderer.NopLogger{}, io.Discard)
	if !errors.Is(err, film.ErrDimensionMismatch) {
		t.Fatalf("Expected ErrDimensionMismatch, got %v", err)
	}
	if !strings.Contains(err.Error(), b) || !strings.Contains(err.Error(), a) {
		t.Errorf("Expected both file names in error, got %v", err)
	}
	if _, statErr := os.Stat(output); !os.IsNotExist(statErr) {
		t.Error("No image should be written when dimensions differ")
	}
}

func TestMergeFiles_MismatchStopsAtOffendingFile(t *testing.T) {
	dir := t.TempDir()
	a := writePartial(t, dir, "a.part", 4, 4, 4, core.Vec3{})
	b := writePartial(t, dir, "b.part", 4, 5, 4, core.Vec3{})
	missing := filepath.Join(dir, "missing.part")

	// The mismatch is reported before the unreadable third file is opened
	_, err := mergeFiles([]string{a, b, missing}, renderer.NopLogger{})
	if !errors.Is(err, film.ErrDimensionMismatch) {
		t.Fatalf("Expected ErrDimensionMismatch, got %v", err)
	}
	if !strings.Contains(err.Error(), "b.part is 4x5") {
		t.Errorf("Expected mismatching file and size in error, got %v", err)
	}
}

func TestRun_BadFileAborts(t *testing.T) {
	dir := t.TempDir()
	good := writePartial(t, dir, "good.part", 2, 2, 4, core.Vec3{})
	bad := filepath.Join(dir, "bad.part")
	if err := os.WriteFile(bad, []byte("2 2 4\n0 0 0\n"), 0644); err != nil {
		t.Fatalf("Failed to write bad partial: %v", err)
	}

	err := run([]string{"-o", filepath.Join(dir, "out.png"), good, bad}, renderer.NopLogger{}, io.Discard)
	var formatErr *loaders.FormatError
	if !errors.As(err, &formatErr) {
		t.Fatalf("Expected *loaders.FormatError, got %v", err)
	}
	if formatErr.File != bad {
		t.Errorf("Expected error for %s, got %s", bad, formatErr.File)
	}
}

func TestRun_NoFiles(t *testing.T) {
	if err := run(nil, renderer.NopLogger{}, io.Discard); err == nil {
		t.Error("Expected error when no files are given")
	}
}
