package persistence

import (
	"context"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"go.uber.org/zap"
)

func TestBundledMigrations(t *testing.T) {
	t.Parallel()
	names, err := MigrationNames(Migrations())
	if err != nil {
		t.Fatal(err)
	}
	if len(names) == 0 || names[0] != "001_ticket_cache.sql" {
		t.Fatalf("names = %v", names)
	}
	body, err := fs.ReadFile(Migrations(), names[0])
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(body), "ticket_cache") {
		t.Fatalf("unexpected migration body: %s", body)
	}
}

func TestMigrationNamesSorted(t *testing.T) {
	t.Parallel()
	fsys := fstest.MapFS{
		"010_b.sql":   {Data: []byte("SELECT 1;")},
		"002_a.sql":   {Data: []byte("SELECT 1;")},
		"sub/003.sql": {Data: []byte("SELECT 1;")},
	}
	names, err := MigrationNames(fsys)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(names, ",") != "002_a.sql,010_b.sql" {
		t.Fatalf("names = %v", names)
	}
}

func TestRunMigrationsWithoutPool(t *testing.T) {
	t.Parallel()
	if err := RunMigrations(context.Background(), nil, Migrations(), zap.NewNop()); err != nil {
		t.Fatalf("RunMigrations(nil pool) = %v", err)
	}
}
