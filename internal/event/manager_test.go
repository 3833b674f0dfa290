package event

import "testing"

func TestManager_DispatchReachesSubscribers(t *testing.T) {
	m := NewManager()
	var got []string
	m.Subscribe(TypeModeChanged, func(e Event) bool {
		got = append(got, "a")
		return false
	})
	m.Subscribe(TypeModeChanged, func(e Event) bool {
		got = append(got, "b")
		return false
	})
	m.Subscribe(TypeAppQuit, func(e Event) bool {
		got = append(got, "quit")
		return false
	})

	m.Dispatch(TypeModeChanged, ModeChangedData{Edit: true})
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("handlers called=%v, want [a b]", got)
	}
}

func TestManager_Unsubscribe(t *testing.T) {
	m := NewManager()
	calls := 0
	id := m.Subscribe(TypeEditorToggleEditModeTrigger, func(Event) bool {
		calls++
		return true
	})
	m.Dispatch(TypeEditorToggleEditModeTrigger, nil)
	m.Unsubscribe(id)
	m.Dispatch(TypeEditorToggleEditModeTrigger, nil)

	if calls != 1 {
		t.Fatalf("calls=%d, want 1", calls)
	}
	if n := m.HandlerCount(TypeEditorToggleEditModeTrigger); n != 0 {
		t.Fatalf("HandlerCount=%d, want 0", n)
	}
	m.Unsubscribe(id) // second call is harmless
}

func TestManager_UnsubscribeDuringDispatch(t *testing.T) {
	m := NewManager()
	calls := 0
	var id SubscriptionID
	id = m.Subscribe(TypeCursorMoved, func(Event) bool {
		calls++
		m.Unsubscribe(id)
		return false
	})
	m.Dispatch(TypeCursorMoved, nil)
	m.Dispatch(TypeCursorMoved, nil)
	if calls != 1 {
		t.Fatalf("calls=%d, want 1", calls)
	}
}

func TestManager_QueueDrain(t *testing.T) {
	m := NewManager()
	var order []string
	m.Subscribe(TypeStatusMessage, func(e Event) bool {
		order = append(order, e.Data.(StatusMessageData).Text)
		return false
	})

	m.Queue(TypeStatusMessage, StatusMessageData{Text: "one"})
	m.Queue(TypeStatusMessage, StatusMessageData{Text: "two"})
	if len(order) != 0 {
		t.Fatal("queued events must not dispatch before DrainQueue")
	}
	if n := m.DrainQueue(); n != 2 {
		t.Fatalf("DrainQueue()=%d, want 2", n)
	}
	if len(order) != 2 || order[0] != "one" || order[1] != "two" {
		t.Fatalf("order=%v", order)
	}
	if n := m.DrainQueue(); n != 0 {
		t.Fatalf("second DrainQueue()=%d, want 0", n)
	}
}
