package plugin

import (
	"errors"
	"testing"
)

type recordingPlugin struct {
	name    string
	initErr error
	log     *[]string
}

func (p *recordingPlugin) Name() string { return p.name }

func (p *recordingPlugin) Initialize(EditorAPI) error {
	*p.log = append(*p.log, "init:"+p.name)
	return p.initErr
}

func (p *recordingPlugin) Shutdown() error {
	*p.log = append(*p.log, "stop:"+p.name)
	return nil
}

func TestRegisterRejectsDuplicatesAndEmptyNames(t *testing.T) {
	var log []string
	m := NewManager()
	if err := m.Register(&recordingPlugin{name: "a", log: &log}); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := m.Register(&recordingPlugin{name: "a", log: &log}); err == nil {
		t.Fatalf("duplicate name should fail")
	}
	if err := m.Register(&recordingPlugin{name: "", log: &log}); err == nil {
		t.Fatalf("empty name should fail")
	}
}

func TestLifecycleOrderAndFailedInit(t *testing.T) {
	var log []string
	m := NewManager()
	m.Register(&recordingPlugin{name: "first", log: &log})
	m.Register(&recordingPlugin{name: "broken", log: &log, initErr: errors.New("nope")})
	m.Register(&recordingPlugin{name: "last", log: &log})

	m.InitializePlugins(NewFakeAPI(""))
	if got := m.Active(); len(got) != 2 || got[0] != "first" || got[1] != "last" {
		t.Fatalf("active=%v, want [first last]", got)
	}

	m.ShutdownPlugins()
	want := []string{"init:first", "init:broken", "init:last", "stop:last", "stop:first"}
	if len(log) != len(want) {
		t.Fatalf("log=%v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("log=%v, want %v", log, want)
		}
	}

	m.ShutdownPlugins()
	if len(log) != len(want) {
		t.Fatalf("second shutdown should be a no-op, log=%v", log)
	}
}

func TestGetPlugin(t *testing.T) {
	var log []string
	m := NewManager()
	m.Register(&recordingPlugin{name: "x", log: &log})
	if _, ok := m.GetPlugin("x"); !ok {
		t.Fatalf("GetPlugin(x) not found")
	}
	if _, ok := m.GetPlugin("y"); ok {
		t.Fatalf("GetPlugin(y) should not exist")
	}
}
