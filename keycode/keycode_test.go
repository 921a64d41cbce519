package keycode

import "testing"

func TestParseKeyRoundTrip(t *testing.T) {
	for k := KeyA; k < keyCount; k++ {
		if !k.Valid() {
			continue
		}
		name := k.String()
		got, ok := ParseKey(name)
		if !ok {
			t.Fatalf("ParseKey(%q): not found", name)
		}
		if got != k {
			t.Fatalf("ParseKey(%q) = %v, want %v", name, got, k)
		}
	}
}

func TestParseKeyUnknown(t *testing.T) {
	if _, ok := ParseKey("NotAKey"); ok {
		t.Fatal("expected ParseKey to fail for an unknown name")
	}
}

func TestKeyValid(t *testing.T) {
	if KeyNone.Valid() {
		t.Fatal("KeyNone must not be Valid")
	}
	if !KeyA.Valid() {
		t.Fatal("KeyA must be Valid")
	}
	if Key(99999).Valid() {
		t.Fatal("out-of-range key must not be Valid")
	}
}

func TestParseMouseButton(t *testing.T) {
	cases := []struct {
		name string
		want MouseButton
	}{
		{"Left", MouseButtonLeft},
		{"Right", MouseButtonRight},
		{"Middle", MouseButtonMiddle},
	}
	for _, c := range cases {
		got, ok := ParseMouseButton(c.name)
		if !ok || got != c.want {
			t.Errorf("ParseMouseButton(%q) = %v, %v; want %v, true", c.name, got, ok, c.want)
		}
	}
	if _, ok := ParseMouseButton("Scroll"); ok {
		t.Fatal("expected ParseMouseButton to fail for an unknown name")
	}
}
