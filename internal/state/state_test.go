package state

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFile_MissingIsEmpty(t *testing.T) {
	f, err := Open(filepath.Join(t.TempDir(), "nope", "state.toml"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok := f.GetBool("editor.editMode"); ok {
		t.Fatal("expected absent key")
	}
}

func TestFile_RoundTripThroughDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "state.toml")
	f, err := Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := f.SetBool("editor.editMode", true); err != nil {
		t.Fatalf("SetBool: %v", err)
	}

	again, err := Open(path)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	v, ok := again.GetBool("editor.editMode")
	if !ok || !v {
		t.Fatalf("GetBool=(%v,%v), want (true,true)", v, ok)
	}
}

func TestFile_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.toml")
	if err := os.WriteFile(path, []byte("flags = [unterminated"), 0644); err != nil {
		t.Fatal(err)
	}
	_, err := Open(path)
	if err == nil || !strings.Contains(err.Error(), "decoding state") {
		t.Fatalf("err=%v, want decoding error", err)
	}
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	if _, ok := m.GetBool("k"); ok {
		t.Fatal("expected absent key")
	}
	if err := m.SetBool("k", true); err != nil {
		t.Fatal(err)
	}
	if v, ok := m.GetBool("k"); !ok || !v {
		t.Fatalf("GetBool=(%v,%v)", v, ok)
	}
}
