package cache

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
)

func openTemp(t *testing.T) *Cache {
	t.Helper()
	c, err := Open(context.Background(), filepath.Join(t.TempDir(), ".lolc"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestKeyIsDeterministic(t *testing.T) {
	a := Key("code", "c", "cc", []string{"-O2"})
	if a != Key("code", "c", "cc", []string{"-O2"}) {
		t.Fatal("same inputs gave different keys")
	}
	if len(a) != 16 {
		t.Errorf("key length = %d", len(a))
	}
	for _, other := range []string{
		Key("code2", "c", "cc", []string{"-O2"}),
		Key("code", "asm", "cc", []string{"-O2"}),
		Key("code", "c", "clang", []string{"-O2"}),
		Key("code", "c", "cc", []string{"-O0"}),
		Key("code", "c", "cc", nil),
	} {
		if other == a {
			t.Errorf("key collision for differing inputs: %s", other)
		}
	}
}

func TestStoreLookupRestore(t *testing.T) {
	c := openTemp(t)
	ctx := context.Background()
	dir := t.TempDir()
	artifact := filepath.Join(dir, "prog")
	if err := os.WriteFile(artifact, []byte("binary"), 0o755); err != nil {
		t.Fatal(err)
	}

	key := Key("src", "c", "cc", nil)
	if _, ok, err := c.Lookup(ctx, key); err != nil || ok {
		t.Fatalf("lookup before store: ok=%v err=%v", ok, err)
	}

	stored, err := c.Store(ctx, key, "c", artifact)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := uuid.Parse(stored.BuildID); err != nil {
		t.Errorf("build id %q is not a uuid", stored.BuildID)
	}

	e, ok, err := c.Lookup(ctx, key)
	if err != nil || !ok {
		t.Fatalf("lookup after store: ok=%v err=%v", ok, err)
	}
	if e.BuildID != stored.BuildID || e.Size != 6 || e.Target != "c" {
		t.Errorf("entry = %+v", e)
	}

	out := filepath.Join(dir, "restored")
	if err := c.Restore(e, out); err != nil {
		t.Fatal(err)
	}
	data, err := os.ReadFile(out)
	if err != nil || string(data) != "binary" {
		t.Fatalf("restored %q, %v", data, err)
	}
	info, _ := os.Stat(out)
	if info.Mode().Perm()&0o100 == 0 {
		t.Error("restored artifact lost its executable bit")
	}

	entries, err := c.Entries(ctx)
	if err != nil || len(entries) != 1 {
		t.Fatalf("entries = %v, %v", entries, err)
	}
}

func TestMissingFileIsAMiss(t *testing.T) {
	c := openTemp(t)
	ctx := context.Background()
	artifact := filepath.Join(t.TempDir(), "prog")
	os.WriteFile(artifact, []byte("x"), 0o644)

	key := Key("src", "asm", "", nil)
	if _, err := c.Store(ctx, key, "asm", artifact); err != nil {
		t.Fatal(err)
	}
	os.Remove(c.artifactPath(key))

	if _, ok, err := c.Lookup(ctx, key); err != nil || ok {
		t.Fatalf("ok=%v err=%v, want miss", ok, err)
	}
	entries, _ := c.Entries(ctx)
	if len(entries) != 0 {
		t.Errorf("stale row kept: %v", entries)
	}
}

func TestClean(t *testing.T) {
	c, err := Open(context.Background(), filepath.Join(t.TempDir(), ".lolc"))
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Clean(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(c.Dir()); !os.IsNotExist(err) {
		t.Error("cache dir still exists")
	}
}
