package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/xindygo/xindy/config"
)

func TestLoadReadsNearestConfigFile(t *testing.T) {
	dir := t.TempDir()
	sub := filepath.Join(dir, "project", "styles")

	if err := os.MkdirAll(sub, 0o755); err != nil {
		t.Fatal(err)
	}

	yaml := "searchpath: /opt/xindy/styles\ncodepage: latin1\nmoduledir: /opt/xindy/modules\n"
	if err := os.WriteFile(filepath.Join(dir, "project", ".xindy.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := config.Load(sub)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := &config.Config{
		SearchPath: []string{"/opt/xindy/styles"},
		Codepage:   "latin1",
		ModuleDir:  "/opt/xindy/modules",
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadWithoutConfigFileIsEnvOnly(t *testing.T) {
	dir := t.TempDir()

	got, err := config.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := &config.Config{}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSplitsSearchPathOnListSeparator(t *testing.T) {
	dir := t.TempDir()

	yaml := "searchpath: " + filepath.Join("a") + string(os.PathListSeparator) + filepath.Join("b") + "\n"
	if err := os.WriteFile(filepath.Join(dir, ".xindy.yaml"), []byte(yaml), 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := config.Load(dir)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	want := []string{"a", "b"}

	if diff := cmp.Diff(want, got.SearchPath); diff != "" {
		t.Errorf("SearchPath mismatch (-want +got):\n%s", diff)
	}
}
