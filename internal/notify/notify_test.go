package notify

import (
	"reflect"
	"testing"

	"github.com/reavox/reavox/internal/focus"
)

func TestNewEmitter_UnsupportedPlatform(t *testing.T) {
	// Temporarily clear the backend func to simulate an unsupported platform.
	orig := NewEmitterFunc
	NewEmitterFunc = nil
	defer func() { NewEmitterFunc = orig }()

	_, err := NewEmitter(0)
	if err == nil {
		t.Fatal("expected error when no backend is registered")
	}
	if err != ErrUnsupported {
		t.Errorf("expected ErrUnsupported, got: %v", err)
	}
}

func TestNewEmitter_UsesRegisteredBackend(t *testing.T) {
	orig := NewEmitterFunc
	defer func() { NewEmitterFunc = orig }()

	rec := NewRecorder(0)
	NewEmitterFunc = func(hwnd uintptr) (Emitter, error) {
		return rec, nil
	}

	em, err := NewEmitter(42)
	if err != nil {
		t.Fatalf("NewEmitter: %v", err)
	}
	em.Announce(focus.Description{Name: "Drums"})
	if got := rec.Texts(); len(got) != 1 || got[0] != "Drums" {
		t.Errorf("recorded = %v, want [Drums]", got)
	}
}

func TestNull_DropsAnnouncements(t *testing.T) {
	var n Null
	n.Announce(focus.Description{Name: "Drums"})
}

func TestRecorder_OrderAndTexts(t *testing.T) {
	rec := NewRecorder(0)
	rec.Announce(focus.Description{Role: "track", Name: "Drums"})
	rec.Announce(focus.Description{Role: "track", Name: "Bass", Detail: "muted"})
	rec.Announce(focus.Description{Role: "ruler", Name: "bar 3"})

	want := []string{"Drums", "Bass muted", "bar 3"}
	if got := rec.Texts(); !reflect.DeepEqual(got, want) {
		t.Errorf("Texts() = %v, want %v", got, want)
	}

	all := rec.All()
	if len(all) != 3 {
		t.Fatalf("All() returned %d entries, want 3", len(all))
	}
	for i, a := range all {
		if a.Seq != i+1 {
			t.Errorf("entry %d has seq %d, want %d", i, a.Seq, i+1)
		}
	}
	if all[1].Role != "track" || all[2].Role != "ruler" {
		t.Errorf("roles = %q, %q; want track, ruler", all[1].Role, all[2].Role)
	}
}

func TestRecorder_Limit(t *testing.T) {
	rec := NewRecorder(2)
	rec.Announce(focus.Description{Name: "one"})
	rec.Announce(focus.Description{Name: "two"})
	rec.Announce(focus.Description{Name: "three"})

	want := []string{"two", "three"}
	if got := rec.Texts(); !reflect.DeepEqual(got, want) {
		t.Errorf("Texts() = %v, want %v", got, want)
	}
	if last, ok := rec.Last(); !ok || last.Text != "three" || last.Seq != 3 {
		t.Errorf("Last() = %+v, %v; want seq 3 %q", last, ok, "three")
	}
}

func TestRecorder_Clear(t *testing.T) {
	rec := NewRecorder(0)
	rec.Announce(focus.Description{Name: "one"})
	rec.Clear()
	if rec.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", rec.Len())
	}
	rec.Announce(focus.Description{Name: "two"})
	if last, _ := rec.Last(); last.Seq != 2 {
		t.Errorf("seq after Clear = %d, want 2", last.Seq)
	}
}

func TestMulti_FansOutInOrder(t *testing.T) {
	a := NewRecorder(0)
	b := NewRecorder(0)
	m := Multi(a, nil, b)

	m.Announce(focus.Description{Name: "Drums"})
	m.Announce(focus.Description{Name: "Bass"})

	want := []string{"Drums", "Bass"}
	if got := a.Texts(); !reflect.DeepEqual(got, want) {
		t.Errorf("first sink = %v, want %v", got, want)
	}
	if got := b.Texts(); !reflect.DeepEqual(got, want) {
		t.Errorf("second sink = %v, want %v", got, want)
	}
}

func TestEmitterFunc_Adapts(t *testing.T) {
	var got []string
	f := EmitterFunc(func(d focus.Description) { got = append(got, d.Text()) })
	f.Announce(focus.Description{Name: "Drums"})
	if len(got) != 1 || got[0] != "Drums" {
		t.Errorf("got %v, want [Drums]", got)
	}
}
