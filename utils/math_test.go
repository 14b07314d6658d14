package utils

import "testing"

func TestUtils_MinMax(t *testing.T) {
	if got := Min(3, 7); got != 3 {
		t.Errorf("Min(3, 7) = %d, expected 3", got)
	}
	if got := Min(7, 3); got != 3 {
		t.Errorf("Min(7, 3) = %d, expected 3", got)
	}
	if got := Max(3, 7); got != 7 {
		t.Errorf("Max(3, 7) = %d, expected 7", got)
	}
	if got := Max(2.5, 1.5); got != 2.5 {
		t.Errorf("Max(2.5, 1.5) = %v, expected 2.5", got)
	}
}

func TestUtils_Abs(t *testing.T) {
	if got := Abs(-4); got != 4 {
		t.Errorf("Abs(-4) = %d, expected 4", got)
	}
	if got := Abs(4); got != 4 {
		t.Errorf("Abs(4) = %d, expected 4", got)
	}
	if got := Abs(0); got != 0 {
		t.Errorf("Abs(0) = %d, expected 0", got)
	}
}
