package migration

import (
	"database/sql"
	"path/filepath"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func testDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestApplyAndValidate(t *testing.T) {
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte(`CREATE TABLE a (id TEXT PRIMARY KEY);`)},
		"002_more.sql": {Data: []byte(`CREATE TABLE b (id TEXT PRIMARY KEY);`)},
		"README.md":    {Data: []byte(`not a migration`)},
	}

	db := testDB(t)
	runner := NewRunner(db, fsys)

	applied, err := runner.Apply()
	if err != nil {
		t.Fatalf("failed to apply migrations: %v", err)
	}
	if applied != 2 {
		t.Errorf("expected 2 migrations applied, got %d", applied)
	}

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("failed to read version: %v", err)
	}
	if version != 2 {
		t.Errorf("expected version 2, got %d", version)
	}

	if err := runner.ValidateVersion(); err != nil {
		t.Errorf("expected an up-to-date schema to validate, got %v", err)
	}

	// A second apply is a no-op.
	applied, err = runner.Apply()
	if err != nil {
		t.Fatalf("failed to re-apply migrations: %v", err)
	}
	if applied != 0 {
		t.Errorf("expected 0 migrations on re-apply, got %d", applied)
	}
}

func TestValidateVersion_Outdated(t *testing.T) {
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte(`CREATE TABLE a (id TEXT PRIMARY KEY);`)},
		"002_more.sql": {Data: []byte(`CREATE TABLE b (id TEXT PRIMARY KEY);`)},
	}

	db := testDB(t)
	runner := NewRunner(db, fstest.MapFS{"001_init.sql": fsys["001_init.sql"]})
	if _, err := runner.Apply(); err != nil {
		t.Fatalf("failed to apply first migration: %v", err)
	}

	if err := NewRunner(db, fsys).ValidateVersion(); err == nil {
		t.Error("expected an outdated schema to fail validation")
	}
}

func TestReadMigrations_RejectsBadFilenames(t *testing.T) {
	cases := []fstest.MapFS{
		{"init.sql": {Data: []byte(`SELECT 1;`)}},
		{"abc_init.sql": {Data: []byte(`SELECT 1;`)}},
		{
			"001_a.sql": {Data: []byte(`SELECT 1;`)},
			"001_b.sql": {Data: []byte(`SELECT 1;`)},
		},
	}
	db := testDB(t)
	for i, fsys := range cases {
		if _, err := NewRunner(db, fsys).ReadMigrations(); err == nil {
			t.Errorf("case %d: expected an error", i)
		}
	}
}

func TestApply_RollsBackFailedMigration(t *testing.T) {
	fsys := fstest.MapFS{
		"001_init.sql": {Data: []byte(`CREATE TABLE a (id TEXT PRIMARY KEY);`)},
		"002_bad.sql":  {Data: []byte(`THIS IS NOT SQL;`)},
	}

	db := testDB(t)
	runner := NewRunner(db, fsys)

	if _, err := runner.Apply(); err == nil {
		t.Fatal("expected the bad migration to fail")
	}

	version, err := runner.CurrentVersion()
	if err != nil {
		t.Fatalf("failed to read version: %v", err)
	}
	if version != 1 {
		t.Errorf("expected the version to stay at 1 after the failure, got %d", version)
	}
}
