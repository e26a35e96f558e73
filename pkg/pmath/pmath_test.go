package pmath

import "testing"

func TestCeilToPowerOf2(t *testing.T) {
	cases := [][2]int{
		{0, 2}, {1, 2}, {2, 2}, {3, 4}, {4, 4}, {5, 8},
		{1023, 1024}, {1024, 1024}, {1025, 2048},
	}
	for _, c := range cases {
		if got := CeilToPowerOf2(c[0]); got != c[1] {
			t.Fatalf("CeilToPowerOf2(%d) = %d, want %d", c[0], got, c[1])
		}
	}
}

func TestFloorToPowerOf2(t *testing.T) {
	cases := [][2]int{
		{1, 2}, {2, 2}, {3, 2}, {4, 4}, {7, 4}, {1025, 1024},
	}
	for _, c := range cases {
		if got := FloorToPowerOf2(c[0]); got != c[1] {
			t.Fatalf("FloorToPowerOf2(%d) = %d, want %d", c[0], got, c[1])
		}
	}
}

func TestCeilTo(t *testing.T) {
	if got := CeilTo(13, 8); got != 16 {
		t.Fatalf("CeilTo(13, 8) = %d", got)
	}
	if got := CeilTo(16, 8); got != 16 {
		t.Fatalf("CeilTo(16, 8) = %d", got)
	}
	if got := CeilTo(0, 8); got != 0 {
		t.Fatalf("CeilTo(0, 8) = %d", got)
	}
}

func TestPowerOf2Index(t *testing.T) {
	if got := PowerOf2Index(1024); got != 10 {
		t.Fatalf("PowerOf2Index(1024) = %d", got)
	}
	if got := PowerOf2Index(1000); got != 10 {
		t.Fatalf("PowerOf2Index(1000) = %d", got)
	}
}
