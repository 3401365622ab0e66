package utils

import "testing"

func TestNormalizeBarcodeStripsFormatting(t *testing.T) {
	got, err := NormalizeBarcode(" 8 90180-001894 ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "890180001894" {
		t.Fatalf("normalized = %q, want 890180001894", got)
	}
}

func TestNormalizeBarcodeLengthBounds(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"12345678", true},        // EAN-8 lower bound
		{"12345678901234", true},  // GTIN-14 upper bound
		{"1234567", false},        // too short
		{"123456789012345", false}, // too long
		{"abc", false},
		{"", false},
	}
	for _, c := range cases {
		_, err := NormalizeBarcode(c.in)
		if c.ok && err != nil {
			t.Fatalf("NormalizeBarcode(%q) unexpected error: %v", c.in, err)
		}
		if !c.ok && err == nil {
			t.Fatalf("NormalizeBarcode(%q) expected error, got none", c.in)
		}
	}
}
