package beat

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoadCatalogEmptyPathUsesDefaults(t *testing.T) {
	catalog, err := LoadCatalog("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(catalog.Sounds) == 0 || len(catalog.Styles) == 0 || len(catalog.Moods) == 0 {
		t.Fatal("expected populated default catalog")
	}
}

func TestLoadCatalogFromYAML(t *testing.T) {
	content := `
sounds:
  - name: chime
    instrument: tubular_bell
styles:
  - genre: ambient
    style: drone
moods:
  - name: calm
    intensity: soft
`
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}

	catalog, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(catalog.Sounds) != 1 || catalog.Sounds[0].Instrument != "tubular_bell" {
		t.Fatalf("unexpected sounds %+v", catalog.Sounds)
	}
	if catalog.Styles[0].Style != "drone" {
		t.Fatalf("unexpected styles %+v", catalog.Styles)
	}
}

func TestLoadCatalogRejectsEmptySounds(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(path, []byte("styles: []\n"), 0o600); err != nil {
		t.Fatalf("failed to write catalog: %v", err)
	}
	if _, err := LoadCatalog(path); err == nil {
		t.Fatal("expected error for catalog without sounds")
	}
}

func TestRenderIsDeterministicWithoutCache(t *testing.T) {
	renderer := NewCachedRenderer(nil, "https://beats.example.com", time.Minute)
	cond := PatientCondition{Severity: "moderate", PreferredSound: "drum"}
	pattern := Pattern{Name: "drum-swing-calm", Instrument: "snare"}

	first, err := renderer.Render(context.Background(), "gait_trainer", 75, cond, pattern)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := renderer.Render(context.Background(), "gait_trainer", 75, cond, pattern)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first != second {
		t.Fatalf("expected deterministic reference, got %q and %q", first, second)
	}
	if !strings.Contains(first, "drum-swing-calm") || !strings.Contains(first, "75bpm") {
		t.Fatalf("unexpected reference %q", first)
	}
}
