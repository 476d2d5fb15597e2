package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func openBackends(t *testing.T) map[string]KV {
	t.Helper()
	backends := map[string]KV{}
	for _, name := range []string{BackendFile, BackendSQLite} {
		kv, err := Open(name, t.TempDir())
		if err != nil {
			t.Fatalf("Open(%s): %v", name, err)
		}
		t.Cleanup(func() { kv.Close() })
		backends[name] = kv
	}
	return backends
}

func TestKVGetSet(t *testing.T) {
	for name, kv := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			if _, ok, err := kv.Get("tasks"); err != nil || ok {
				t.Fatalf("Get on empty store: ok=%v err=%v", ok, err)
			}

			if err := kv.Set("tasks", []byte(`[1]`)); err != nil {
				t.Fatalf("Set: %v", err)
			}
			if err := kv.Set("tasks", []byte(`[2]`)); err != nil {
				t.Fatalf("Set overwrite: %v", err)
			}
			if err := kv.Set("other", []byte(`x`)); err != nil {
				t.Fatalf("Set other: %v", err)
			}

			got, ok, err := kv.Get("tasks")
			if err != nil || !ok {
				t.Fatalf("Get: ok=%v err=%v", ok, err)
			}
			if string(got) != `[2]` {
				t.Errorf("Get = %q, want [2]", got)
			}
		})
	}
}

func TestKVRejectsBadKeys(t *testing.T) {
	for name, kv := range openBackends(t) {
		t.Run(name, func(t *testing.T) {
			for _, key := range []string{"", "../escape", "a/b", ".hidden"} {
				if err := kv.Set(key, []byte("x")); err == nil {
					t.Errorf("Set(%q) expected error", key)
				}
				if _, _, err := kv.Get(key); err == nil {
					t.Errorf("Get(%q) expected error", key)
				}
			}
		})
	}
}

func TestFileKVLayout(t *testing.T) {
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	if err != nil {
		t.Fatalf("NewFileKV: %v", err)
	}

	if err := kv.Set("tasks", []byte(`[]`)); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "tasks.json"))
	if err != nil {
		t.Fatalf("slot file not written: %v", err)
	}
	if string(data) != `[]` {
		t.Errorf("slot file = %q", data)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.HasSuffix(e.Name(), ".tmp") {
			t.Errorf("temporary file left behind: %s", e.Name())
		}
	}
}

func TestFileKVWriteFailure(t *testing.T) {
	if os.Getuid() == 0 {
		t.Skip("permission checks do not apply to root")
	}
	dir := t.TempDir()
	kv, err := NewFileKV(dir)
	if err != nil {
		t.Fatalf("NewFileKV: %v", err)
	}
	if err := os.Chmod(dir, 0555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(dir, 0755) })

	if err := kv.Set("tasks", []byte(`[]`)); err == nil {
		t.Error("expected write error in read-only dir")
	}
}

func TestOpen(t *testing.T) {
	t.Run("unknown backend", func(t *testing.T) {
		_, err := Open("redis", t.TempDir())
		if err == nil || !strings.Contains(err.Error(), "unknown storage backend") {
			t.Errorf("expected unknown backend error, got %v", err)
		}
	})

	t.Run("empty backend means file", func(t *testing.T) {
		kv, err := Open("", t.TempDir())
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if _, ok := kv.(*FileKV); !ok {
			t.Errorf("expected *FileKV, got %T", kv)
		}
	})

	t.Run("sqlite creates database file", func(t *testing.T) {
		dir := t.TempDir()
		kv, err := Open("SQLite", dir)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		defer kv.Close()
		if _, err := os.Stat(SQLitePath(dir)); err != nil {
			t.Errorf("database file missing: %v", err)
		}
	})

	t.Run("sqlite persists across reopen", func(t *testing.T) {
		dir := t.TempDir()
		kv, err := Open(BackendSQLite, dir)
		if err != nil {
			t.Fatalf("Open: %v", err)
		}
		if err := kv.Set("tasks", []byte(`["kept"]`)); err != nil {
			t.Fatalf("Set: %v", err)
		}
		kv.Close()

		kv, err = Open(BackendSQLite, dir)
		if err != nil {
			t.Fatalf("reopen: %v", err)
		}
		defer kv.Close()
		got, ok, err := kv.Get("tasks")
		if err != nil || !ok || string(got) != `["kept"]` {
			t.Errorf("Get after reopen = %q ok=%v err=%v", got, ok, err)
		}
	})
}
