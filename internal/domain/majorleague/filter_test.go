package majorleague

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFromFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "major_leagues.json")
	payload := `[
		{"id": 39, "name": "Premier League", "country": "England"},
		{"id": 140, "name": "La Liga", "country": "Spain"}
	]`
	if err := os.WriteFile(path, []byte(payload), 0o600); err != nil {
		t.Fatalf("write fixture file: %v", err)
	}

	filter, err := LoadFromFile(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !filter.Contains(39) || !filter.Contains(140) {
		t.Fatal("expected listed leagues to be contained")
	}
	if filter.Contains(999) {
		t.Fatal("expected unlisted league to be excluded")
	}

	ids := filter.IDs()
	if len(ids) != 2 || ids[0] != 39 || ids[1] != 140 {
		t.Fatalf("ids = %v, want [39 140] in file order", ids)
	}
}

func TestLoadFromFileRejectsEmptyList(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "major_leagues.json")
	if err := os.WriteFile(path, []byte("[]"), 0o600); err != nil {
		t.Fatalf("write fixture file: %v", err)
	}

	if _, err := LoadFromFile(path); err == nil {
		t.Fatal("expected error for empty league list")
	}
}

func TestLoadFromFileMissingFile(t *testing.T) {
	t.Parallel()

	if _, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
