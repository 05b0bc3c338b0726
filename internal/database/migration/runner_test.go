package migration

import (
	"testing"
	"testing/fstest"

	"freelance-match/migrations"
)

func TestLoad_OrdersAndChecksums(t *testing.T) {
	fsys := fstest.MapFS{
		"V2__second.sql": {Data: []byte("CREATE TABLE b (id INT);")},
		"V1__first.sql":  {Data: []byte("  CREATE TABLE a (id INT);\n")},
		"README.md":      {Data: []byte("ignored")},
	}

	migs, err := Load(fsys)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) != 2 {
		t.Fatalf("expected 2 migrations, got %d", len(migs))
	}
	if migs[0].Version != 1 || migs[0].Name != "first" || migs[1].Version != 2 {
		t.Fatalf("unexpected order: %+v", migs)
	}
	if migs[0].SQL != "CREATE TABLE a (id INT);" {
		t.Fatalf("expected trimmed sql, got %q", migs[0].SQL)
	}
	if len(migs[0].Checksum) != 64 {
		t.Fatalf("expected sha256 hex checksum, got %q", migs[0].Checksum)
	}
}

func TestLoad_RejectsDuplicatesAndEmpty(t *testing.T) {
	dup := fstest.MapFS{
		"V1__a.sql":  {Data: []byte("SELECT 1;")},
		"V01__b.sql": {Data: []byte("SELECT 2;")},
	}
	if _, err := Load(dup); err == nil {
		t.Fatalf("expected duplicate version error")
	}

	empty := fstest.MapFS{"V1__a.sql": {Data: []byte("  ")}}
	if _, err := Load(empty); err == nil {
		t.Fatalf("expected empty file error")
	}
}

func TestLoad_EmbeddedMigrations(t *testing.T) {
	migs, err := Load(migrations.FS)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(migs) < 2 {
		t.Fatalf("expected users and kv_store migrations, got %d", len(migs))
	}
}
