// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package font

import (
	"math"
	"testing"
)

func TestPSName(t *testing.T) {
	tests := []struct {
		font Font
		want string
	}{
		{Default, "Helvetica"},
		{New("sans", StyleItalic, WeightBold), "Helvetica-BoldOblique"},
		{New("serif", StyleNormal, 0), "Times-Roman"},
		{New("serif", StyleItalic, 0), "Times-Italic"},
		{New("Times", StyleNormal, WeightBold), "Times-Bold"},
		{New("serif", StyleOblique, WeightBold), "Times-BoldItalic"},
		{New("monospace", StyleNormal, WeightMedium), "Courier"},
		{New("Courier New", StyleOblique, 0), "Courier-Oblique"},
		{New("Zapf Chancery", StyleNormal, 0), "ZapfChancery"},
	}
	for _, tt := range tests {
		if got := tt.font.PSName(); got != tt.want {
			t.Errorf("%v.PSName() = %q, want %q", tt.font, got, tt.want)
		}
	}
}

func TestNewDefaults(t *testing.T) {
	if got := New("", StyleNormal, 0); got != Default {
		t.Errorf("New with zero fields = %v, want %v", got, Default)
	}
}

func TestDefaultMetrics(t *testing.T) {
	m := DefaultMetrics()
	if m != DefaultMetrics() {
		t.Error("DefaultMetrics returned different instances")
	}

	asc, desc := m.Ascent(1), m.Descent(1)
	if asc <= 0.5 || asc >= 1.2 {
		t.Errorf("Ascent(1) = %v, want a plausible ascent", asc)
	}
	if desc <= 0 || desc >= 0.5 {
		t.Errorf("Descent(1) = %v, want a plausible descent", desc)
	}
	if got := m.Ascent(2); math.Abs(got-2*asc) > 1e-9 {
		t.Errorf("Ascent(2) = %v, want %v", got, 2*asc)
	}
}

func TestStringWidth(t *testing.T) {
	m := DefaultMetrics()

	if w := m.StringWidth("", 1); w != 0 {
		t.Errorf("width of empty string = %v", w)
	}
	if w := m.StringWidth("abc", 0); w != 0 {
		t.Errorf("width at zero height = %v", w)
	}

	one := m.StringWidth("M", 1)
	if one <= 0 {
		t.Fatalf("StringWidth(M) = %v, want > 0", one)
	}
	if two := m.StringWidth("MM", 1); math.Abs(two-2*one) > 1e-6 {
		t.Errorf("StringWidth(MM) = %v, want %v", two, 2*one)
	}
	if big := m.StringWidth("M", 3); math.Abs(big-3*one) > 1e-6 {
		t.Errorf("StringWidth at height 3 = %v, want %v", big, 3*one)
	}
	if m.StringWidth("iii", 1) >= m.StringWidth("WWW", 1) {
		t.Error("narrow glyphs measured wider than wide glyphs")
	}
}

func TestNewMetricsRejectsGarbage(t *testing.T) {
	if _, err := NewMetrics([]byte("not a font")); err == nil {
		t.Error("NewMetrics accepted invalid data")
	}
}
