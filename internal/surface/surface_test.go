package surface

import (
	"testing"

	"github.com/bethropolis/tidemark/internal/types"
)

func TestRef_GetAfterClear(t *testing.T) {
	f := &Fake{Value: "abc"}
	r := NewRef(f)
	if _, ok := r.Get(); !ok {
		t.Fatal("expected live surface after NewRef")
	}
	r.Clear()
	if _, ok := r.Get(); ok {
		t.Fatal("expected no surface after Clear")
	}
	if _, ok := r.Cursor(); ok {
		t.Fatal("Cursor should report false after Clear")
	}
}

func TestRef_NilIsEmpty(t *testing.T) {
	var r *Ref
	if _, ok := r.Get(); ok {
		t.Fatal("nil Ref should not report a surface")
	}
}

func TestRef_Cursor(t *testing.T) {
	f := &Fake{Value: "hello", Start: 1, End: 3, Dir: types.DirectionForward}
	got, ok := NewRef(f).Cursor()
	if !ok {
		t.Fatal("expected cursor")
	}
	if got.Start != 1 || got.End != 3 || !got.IsForwardSelection || got.IsSelection {
		t.Fatalf("Cursor()=%+v", got)
	}
}
