package io

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/OFFIS-RIT/storyboard/backend/pkg/loader"
)

func TestGetFileBytes_Caches(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.json")
	if err := os.WriteFile(path, []byte(`{"characters":[{"name":"Ana"}]}`), 0o600); err != nil {
		t.Fatal(err)
	}

	l := NewIOProjectFileLoader()
	file := loader.ProjectFile{FilePath: path, Loader: l}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := l.GetFileBytes(context.Background(), file); err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	if err := os.Remove(path); err != nil {
		t.Fatal(err)
	}
	project, err := file.Load(context.Background())
	if err != nil {
		t.Fatalf("cached load failed: %v", err)
	}
	if len(project.Characters) != 1 || project.Characters[0].Name != "Ana" {
		t.Fatalf("unexpected project %+v", project)
	}
	if l.reads != 1 {
		t.Fatalf("expected a single disk read, got %d", l.reads)
	}
}

func TestGetFileBytes_Missing(t *testing.T) {
	l := NewIOProjectFileLoader()
	file := loader.ProjectFile{FilePath: filepath.Join(t.TempDir(), "missing.json"), Loader: l}

	if _, err := file.Load(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.json")
	if err := os.WriteFile(path, []byte(`{"scenes": [`), 0o600); err != nil {
		t.Fatal(err)
	}
	file := loader.ProjectFile{FilePath: path, Loader: NewIOProjectFileLoader()}

	if _, err := file.Load(context.Background()); err == nil {
		t.Fatal("expected decode error")
	}
}
