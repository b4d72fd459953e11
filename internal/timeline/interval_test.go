package timeline

import (
	"math"
	"testing"
)

func TestOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Interval
		want bool
	}{
		{"disjoint", Interval{0, 5}, Interval{10, 15}, false},
		{"touching", Interval{0, 5}, Interval{5, 10}, false},
		{"partial", Interval{0, 5}, Interval{3, 8}, true},
		{"contained", Interval{0, 10}, Interval{2, 4}, true},
		{"identical", Interval{1, 2}, Interval{1, 2}, true},
		{"reversed args", Interval{3, 8}, Interval{0, 5}, true},
	}
	for _, tt := range tests {
		if got := Overlaps(tt.a, tt.b); got != tt.want {
			t.Errorf("%s: Overlaps(%v, %v) = %v, want %v", tt.name, tt.a, tt.b, got, tt.want)
		}
	}
}

func TestClamp(t *testing.T) {
	bounds := Interval{10, 20}

	tests := []struct {
		name   string
		iv     Interval
		want   Interval
		wantOK bool
	}{
		{"inside", Interval{12, 18}, Interval{12, 18}, true},
		{"overhangs left", Interval{5, 15}, Interval{10, 15}, true},
		{"overhangs right", Interval{15, 25}, Interval{15, 20}, true},
		{"covers bounds", Interval{0, 30}, Interval{10, 20}, true},
		{"entirely left", Interval{0, 5}, Interval{}, false},
		{"entirely right", Interval{25, 30}, Interval{}, false},
		{"touches left edge", Interval{5, 10}, Interval{}, false},
		{"zero length", Interval{15, 15}, Interval{}, false},
	}
	for _, tt := range tests {
		got, ok := Clamp(tt.iv, bounds)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("%s: Clamp(%v, %v) = %v, %v, want %v, %v",
				tt.name, tt.iv, bounds, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestSubtract(t *testing.T) {
	tests := []struct {
		name string
		span Interval
		cuts []Cut
		want []KeepInterval
	}{
		{
			"no cuts",
			Interval{0, 30},
			nil,
			[]KeepInterval{{0, 30}},
		},
		{
			"two interior cuts",
			Interval{0, 30},
			[]Cut{{10, 12}, {20, 23}},
			[]KeepInterval{{0, 10}, {12, 20}, {23, 30}},
		},
		{
			"unsorted cuts",
			Interval{0, 30},
			[]Cut{{20, 23}, {10, 12}},
			[]KeepInterval{{0, 10}, {12, 20}, {23, 30}},
		},
		{
			"overlapping cuts",
			Interval{0, 30},
			[]Cut{{5, 15}, {10, 20}},
			[]KeepInterval{{0, 5}, {20, 30}},
		},
		{
			"cut swallowed by earlier cut",
			Interval{0, 30},
			[]Cut{{5, 20}, {8, 10}},
			[]KeepInterval{{0, 5}, {20, 30}},
		},
		{
			"cut overhangs span start",
			Interval{0, 30},
			[]Cut{{-5, 10}},
			[]KeepInterval{{10, 30}},
		},
		{
			"cut overhangs span end",
			Interval{0, 30},
			[]Cut{{25, 40}},
			[]KeepInterval{{0, 25}},
		},
		{
			"cut outside span",
			Interval{0, 30},
			[]Cut{{40, 50}},
			[]KeepInterval{{0, 30}},
		},
		{
			"cut covers span",
			Interval{0, 30},
			[]Cut{{-1, 31}},
			nil,
		},
		{
			"empty span",
			Interval{10, 10},
			[]Cut{{0, 5}},
			nil,
		},
	}

	for _, tt := range tests {
		got := Subtract(tt.span, tt.cuts)
		if len(got) != len(tt.want) {
			t.Errorf("%s: Subtract returned %d intervals, want %d (%v)", tt.name, len(got), len(tt.want), got)
			continue
		}
		for i := range got {
			if got[i] != tt.want[i] {
				t.Errorf("%s: interval %d = %v, want %v", tt.name, i, got[i], tt.want[i])
			}
		}
	}
}

func TestSubtractConservation(t *testing.T) {
	span := Interval{0, 30}
	cuts := []Cut{{10, 12}, {20, 23}}

	kept := 0.0
	for _, k := range Subtract(span, cuts) {
		kept += k.End - k.Start
	}

	if math.Abs(kept-25) > 1e-9 {
		t.Errorf("kept duration = %f, want 25", kept)
	}
}

func TestSubtractDoesNotMutateCuts(t *testing.T) {
	cuts := []Cut{{20, 23}, {10, 12}}
	Subtract(Interval{0, 30}, cuts)

	if cuts[0] != (Cut{20, 23}) || cuts[1] != (Cut{10, 12}) {
		t.Errorf("input cuts mutated: %v", cuts)
	}
}
