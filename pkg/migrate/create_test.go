package migrate

import (
	"os"
	"strings"
	"testing"
)

func TestNewMigrationFilePassesValidation(t *testing.T) {
	dir := t.TempDir()

	path, err := NewMigrationFile(dir, "Add sodium column!")
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !strings.HasSuffix(path, "_add_sodium_column.sql") {
		t.Fatalf("unexpected filename %q", path)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read created file: %v", err)
	}
	if !strings.Contains(string(b), "-- +goose Up") || !strings.Contains(string(b), "-- +goose Down") {
		t.Fatalf("missing goose markers in %q", string(b))
	}

	if err := ValidateDir(dir); err != nil {
		t.Fatalf("created migration failed validation: %v", err)
	}
}

func TestNewMigrationFileRejectsEmptyName(t *testing.T) {
	if _, err := NewMigrationFile(t.TempDir(), "!!!"); err == nil {
		t.Fatal("expected error for name with no usable characters")
	}
}

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Add nutrients":        "add_nutrients",
		"  drop  old  index  ": "drop_old_index",
		"v2-catalog":           "v2_catalog",
	}
	for in, want := range cases {
		if got := slugify(in); got != want {
			t.Fatalf("slugify(%q) = %q, want %q", in, got, want)
		}
	}
}
