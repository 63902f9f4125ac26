package pininput

import "testing"

func TestTypeAutoAdvance(t *testing.T) {
	var got string
	fired := 0
	f := New(func(code string) {
		got = code
		fired++
	})

	for _, ch := range "2468" {
		if !f.Type(ch) {
			t.Fatalf("Type(%q) rejected", ch)
		}
	}

	if fired != 1 {
		t.Fatalf("completion fired %d times, want 1", fired)
	}
	if got != "2468" {
		t.Fatalf("completion code = %q, want %q", got, "2468")
	}
	if f.Focus() != Slots-1 {
		t.Fatalf("focus = %d after fill, want %d", f.Focus(), Slots-1)
	}
}

func TestTypeRejectsNonDigits(t *testing.T) {
	f := New(nil)

	for _, ch := range []rune{'a', ' ', '-', '*', 'ก'} {
		if f.Type(ch) {
			t.Fatalf("Type(%q) accepted, want rejected", ch)
		}
	}
	if f.Value() != "" {
		t.Fatalf("value = %q after rejected keys, want empty", f.Value())
	}
	if f.Focus() != 0 {
		t.Fatalf("focus moved to %d on rejected keys", f.Focus())
	}
}

func TestBackspace(t *testing.T) {
	t.Run("on first empty slot is a no-op", func(t *testing.T) {
		f := New(nil)
		f.Backspace()
		if f.Focus() != 0 || f.Value() != "" {
			t.Fatalf("focus=%d value=%q, want 0 and empty", f.Focus(), f.Value())
		}
	})

	t.Run("clears the focused digit first", func(t *testing.T) {
		f := New(nil)
		f.Type('1')
		f.Type('2') // focus advanced to the empty third slot
		f.Backspace()
		if f.Value() != "12" {
			t.Fatalf("value = %q, want %q", f.Value(), "12")
		}
		if f.Focus() != 1 {
			t.Fatalf("focus = %d, want 1", f.Focus())
		}
		f.Backspace()
		if f.Value() != "1" {
			t.Fatalf("value = %q after clearing slot, want %q", f.Value(), "1")
		}
		if f.Focus() != 1 {
			t.Fatalf("focus = %d, want to stay on cleared slot", f.Focus())
		}
	})

	t.Run("empty slot moves focus back without altering neighbours", func(t *testing.T) {
		f := New(nil)
		f.Type('9')
		f.Backspace() // slot 1 is empty: move to slot 0
		if f.Focus() != 0 {
			t.Fatalf("focus = %d, want 0", f.Focus())
		}
		if f.Value() != "9" {
			t.Fatalf("value = %q, slot 0 should be untouched", f.Value())
		}
	})
}

func TestCompletionRearmsAfterClear(t *testing.T) {
	fired := 0
	f := New(func(string) { fired++ })

	for _, ch := range "1111" {
		f.Type(ch)
	}
	f.Backspace()
	f.Type('2')

	if fired != 2 {
		t.Fatalf("completion fired %d times, want 2 (refill after clear)", fired)
	}
}

func TestClear(t *testing.T) {
	f := New(nil)
	for _, ch := range "1234" {
		f.Type(ch)
	}
	f.Clear()
	if f.Value() != "" || f.Focus() != 0 || f.Filled() {
		t.Fatalf("Clear left value=%q focus=%d filled=%v", f.Value(), f.Focus(), f.Filled())
	}
}
