package clipboard

import (
	"errors"
	"testing"
)

func TestManager_InternalRegister(t *testing.T) {
	m := NewManager(false)
	if err := m.Copy("hello"); err != nil {
		t.Fatal(err)
	}
	got, err := m.Paste()
	if err != nil || got != "hello" {
		t.Fatalf("Paste()=(%q,%v), want (\"hello\",nil)", got, err)
	}
}

func TestManager_SystemReadFallsBack(t *testing.T) {
	m := &Manager{
		useSystem: true,
		readAll:   func() (string, error) { return "", errors.New("no xclip") },
		writeAll:  func(string) error { return nil },
	}
	_ = m.Copy("kept")
	got, err := m.Paste()
	if err != nil || got != "kept" {
		t.Fatalf("Paste()=(%q,%v), want register fallback", got, err)
	}
}

func TestManager_SystemWriteError(t *testing.T) {
	m := &Manager{
		useSystem: true,
		readAll:   func() (string, error) { return "", nil },
		writeAll:  func(string) error { return errors.New("denied") },
	}
	if err := m.Copy("x"); err == nil {
		t.Fatal("expected write error")
	}
}
