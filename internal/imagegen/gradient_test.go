package imagegen

import (
	"bytes"
	"image/jpeg"
	"reflect"
	"testing"
)

func TestGradient(t *testing.T) {
	var buf bytes.Buffer
	if err := Gradient(&buf, "A Title That Wraps Over Multiple Lines", "golang", 2); err != nil {
		t.Fatalf("Gradient: %v", err)
	}

	img, err := jpeg.Decode(&buf)
	if err != nil {
		t.Fatalf("output not a decodable JPEG: %v", err)
	}
	bounds := img.Bounds()
	if bounds.Dx() != imgWidth || bounds.Dy() != imgHeight {
		t.Errorf("dimensions: got %dx%d, want %dx%d", bounds.Dx(), bounds.Dy(), imgWidth, imgHeight)
	}
}

func TestGradient_Deterministic(t *testing.T) {
	var a, b bytes.Buffer
	if err := Gradient(&a, "Title", "tag", 3); err != nil {
		t.Fatalf("Gradient: %v", err)
	}
	if err := Gradient(&b, "Title", "tag", 3); err != nil {
		t.Fatalf("Gradient: %v", err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("same inputs produced different images")
	}
}

func TestGradient_PaletteIndexWraps(t *testing.T) {
	for idx := 0; idx < len(palettes)*2; idx++ {
		var buf bytes.Buffer
		if err := Gradient(&buf, "t", "g", idx); err != nil {
			t.Fatalf("Gradient(idx=%d): %v", idx, err)
		}
	}
}

func TestWrap(t *testing.T) {
	cases := []struct {
		in   string
		max  int
		want []string
	}{
		{"", 10, nil},
		{"one", 10, []string{"one"}},
		{"alpha beta gamma", 11, []string{"alpha beta", "gamma"}},
		{"supercalifragilistic", 5, []string{"supercalifragilistic"}},
	}
	for _, tc := range cases {
		if got := wrap(tc.in, tc.max); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("wrap(%q, %d): got %v, want %v", tc.in, tc.max, got, tc.want)
		}
	}
}
