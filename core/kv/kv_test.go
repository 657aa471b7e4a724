package kv

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

type record struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TestMemoryStore_Basics(t *testing.T) {
	s := NewMemoryStore()
	if _, ok := s.Get("missing"); ok {
		t.Error("Get on empty store should report absent")
	}
	s.Set("k", "v")
	if v, ok := s.Get("k"); !ok || v != "v" {
		t.Errorf("Get = %q, %v", v, ok)
	}
	if err := s.Remove("k"); err != nil {
		t.Errorf("Remove: %v", err)
	}
	if _, ok := s.Get("k"); ok {
		t.Error("key survives Remove")
	}
	if err := s.Remove("k"); err != nil {
		t.Errorf("removing absent key: %v", err)
	}
}

func TestFileStore_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}

	if err := s.Set("phuler:cart:anon-1", `[{"id":1}]`); err != nil {
		t.Fatalf("Set: %v", err)
	}
	v, ok := s.Get("phuler:cart:anon-1")
	if !ok || v != `[{"id":1}]` {
		t.Errorf("Get = %q, %v", v, ok)
	}

	// a second store over the same directory sees the data
	reopened, err := NewFileStore(dir)
	if err != nil {
		t.Fatalf("NewFileStore: %v", err)
	}
	if v, ok := reopened.Get("phuler:cart:anon-1"); !ok || v != `[{"id":1}]` {
		t.Errorf("reopened Get = %q, %v", v, ok)
	}

	if err := s.Remove("phuler:cart:anon-1"); err != nil {
		t.Errorf("Remove: %v", err)
	}
	if _, ok := s.Get("phuler:cart:anon-1"); ok {
		t.Error("key survives Remove")
	}
	if err := s.Remove("phuler:cart:anon-1"); err != nil {
		t.Errorf("removing absent key: %v", err)
	}
}

func TestFileStore_SanitizesKeys(t *testing.T) {
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := s.Set("../escape/attempt:1", "x"); err != nil {
		t.Fatalf("Set: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("files in dir = %d, want 1", len(entries))
	}
	name := entries[0].Name()
	if filepath.Dir(filepath.Join(dir, name)) != dir {
		t.Errorf("file %q escaped store directory", name)
	}
}

func TestLoadCollection_AbsentKeyLeavesDestEmpty(t *testing.T) {
	var dest []record
	LoadCollection(NewMemoryStore(), "missing", &dest)
	if len(dest) != 0 {
		t.Errorf("dest = %v, want empty", dest)
	}
}

func TestLoadCollection_CorruptRecordLeavesDestEmpty(t *testing.T) {
	s := NewMemoryStore()
	s.Set("k", "{{{")

	var dest []record
	LoadCollection(s, "k", &dest)
	if len(dest) != 0 {
		t.Errorf("dest = %v, want empty for corrupt payload", dest)
	}
}

func TestSaveThenLoadCollection(t *testing.T) {
	s := NewMemoryStore()
	in := []record{{ID: 1, Name: "Lotus"}, {ID: 2, Name: "Fern"}}

	if err := SaveCollection(s, "k", in); err != nil {
		t.Fatalf("SaveCollection: %v", err)
	}
	var out []record
	LoadCollection(s, "k", &out)
	if diff := cmp.Diff(in, out); diff != "" {
		t.Errorf("collection round-trip (-want +got):\n%s", diff)
	}
}
