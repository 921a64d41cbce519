package ledcolor

import "testing"

func TestScaleZeroIsOff(t *testing.T) {
	c := RGB{200, 100, 50}
	if got := c.Scale(0); got != Off {
		t.Fatalf("Scale(0) = %+v, want Off", got)
	}
}

func TestScaleOneIsIdentity(t *testing.T) {
	c := RGB{200, 100, 50}
	if got := c.Scale(1); got != c {
		t.Fatalf("Scale(1) = %+v, want %+v", got, c)
	}
}

func TestScaleDims(t *testing.T) {
	c := RGB{200, 100, 50}
	half := c.Scale(0.5)
	if half.R >= c.R && half.G >= c.G && half.B >= c.B {
		t.Fatalf("Scale(0.5) = %+v did not dim relative to %+v", half, c)
	}
}

func TestBlendEndpoints(t *testing.T) {
	a := RGB{255, 0, 0}
	b := RGB{0, 0, 255}
	if got := a.Blend(b, 0); got != a {
		t.Fatalf("Blend(t=0) = %+v, want %+v", got, a)
	}
	if got := a.Blend(b, 1); got != b {
		t.Fatalf("Blend(t=1) = %+v, want %+v", got, b)
	}
}

func TestHueWraps(t *testing.T) {
	a := Hue(10)
	b := Hue(370)
	if a != b {
		t.Fatalf("Hue(10) = %+v, Hue(370) = %+v; expected equal after wraparound", a, b)
	}
}
