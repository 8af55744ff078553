package renderer

import (
	"image/color"
	"testing"
)

func TestHex(t *testing.T) {
	got := Hex(0xe0ffe0)
	want := color.RGBA{R: 0xe0, G: 0xff, B: 0xe0, A: 0xff}
	if got != want {
		t.Errorf("Hex(0xe0ffe0) = %v, want %v", got, want)
	}
}

func TestHueToRGB(t *testing.T) {
	tests := []struct {
		hue  uint8
		want color.RGBA
	}{
		{0, color.RGBA{0xff, 0x00, 0x00, 0xff}},
		{41, color.RGBA{0xff, 246, 0x00, 0xff}},
		{42, color.RGBA{0x00, 0xff, 0x00, 0xff}},
		{50, color.RGBA{48, 0xff, 0x00, 0xff}},
		{84, color.RGBA{0x00, 0xff, 0x00, 0xff}},
		{100, color.RGBA{0x00, 0xff, 96, 0xff}},
		{126, color.RGBA{0x00, 0x00, 0xff, 0xff}},
		{168, color.RGBA{0x00, 0x00, 0xff, 0xff}},
		{200, color.RGBA{192, 0x00, 0xff, 0xff}},
		{210, color.RGBA{0xff, 0x00, 0x00, 0xff}},
		{255, color.RGBA{0xff, 0x00, 18, 0xff}},
	}
	for _, tt := range tests {
		if got := HueToRGB(tt.hue); got != tt.want {
			t.Errorf("HueToRGB(%d) = %v, want %v", tt.hue, got, tt.want)
		}
	}
}

func TestHueToRGBOpaque(t *testing.T) {
	for h := 0; h < 256; h++ {
		if c := HueToRGB(uint8(h)); c.A != 0xff {
			t.Fatalf("HueToRGB(%d) alpha %d", h, c.A)
		}
	}
}

func TestBlend(t *testing.T) {
	a := Hex(0x000000)
	b := Hex(0xffffff)

	if got := Blend(a, b, 0); got != a {
		t.Errorf("Blend t=0 = %v", got)
	}
	if got := Blend(a, b, 1); got != b {
		t.Errorf("Blend t=1 = %v", got)
	}
	if got := Blend(a, b, 0.5); got.R != 128 {
		t.Errorf("Blend t=0.5 R = %d, want 128", got.R)
	}
	if got := Blend(a, b, 3); got != b {
		t.Errorf("Blend clamps t: %v", got)
	}
}

func TestActivation(t *testing.T) {
	if Activation(0) != Field {
		t.Error("zero activation should be the field color")
	}
	neg, pos := Activation(-1), Activation(1)
	if neg.R <= neg.G {
		t.Errorf("negative activation not red: %v", neg)
	}
	if pos.G <= pos.R {
		t.Errorf("positive activation not green: %v", pos)
	}
}
