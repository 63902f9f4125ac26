// Package pininput models the four-slot numeric entry field used by the
// OTP and MPIN screens. The model owns slot values and focus movement so
// clients only forward key events and react to the completion callback.
package pininput

// Slots is the number of digit slots in the field
const Slots = 4

// Field is a four-slot digit input with focus tracking.
// Typing a digit fills the focused slot and advances focus; backspace
// clears the focused slot, or moves focus back when the slot is empty.
// When all slots are filled the completion callback fires exactly once
// with the assembled code; clearing any slot re-arms it.
type Field struct {
	slots      [Slots]byte // 0 means empty
	focus      int
	onComplete func(code string)
	fired      bool
}

// New creates an empty field. onComplete may be nil.
func New(onComplete func(code string)) *Field {
	return &Field{onComplete: onComplete}
}

// Type handles a single key press. Non-digit characters are rejected
// silently and leave the field unchanged. Returns true if the key was
// accepted.
func (f *Field) Type(ch rune) bool {
	if ch < '0' || ch > '9' {
		return false
	}

	f.slots[f.focus] = byte(ch)
	if f.focus < Slots-1 {
		f.focus++
	}

	if f.Filled() && !f.fired {
		f.fired = true
		if f.onComplete != nil {
			f.onComplete(f.Value())
		}
	}
	return true
}

// Backspace clears the focused slot if it holds a digit; on an empty
// slot it moves focus back one position without touching the previous
// slot's value. Backspace on an empty first slot is a no-op.
func (f *Field) Backspace() {
	if f.slots[f.focus] != 0 {
		f.slots[f.focus] = 0
		f.fired = false
		return
	}
	if f.focus > 0 {
		f.focus--
	}
}

// Clear empties every slot and resets focus to the first slot
func (f *Field) Clear() {
	f.slots = [Slots]byte{}
	f.focus = 0
	f.fired = false
}

// Filled reports whether every slot holds a digit
func (f *Field) Filled() bool {
	for _, s := range f.slots {
		if s == 0 {
			return false
		}
	}
	return true
}

// Focus returns the index of the focused slot
func (f *Field) Focus() int {
	return f.focus
}

// Value returns the digits entered so far, skipping empty slots
func (f *Field) Value() string {
	out := make([]byte, 0, Slots)
	for _, s := range f.slots {
		if s != 0 {
			out = append(out, s)
		}
	}
	return string(out)
}
