package core

import (
	"errors"
	"testing"
	"time"
)

func TestNewMonthWindowBounds(t *testing.T) {
	cases := []struct {
		month     int
		wantStart time.Time
		wantEnd   time.Time
	}{
		{1, time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2022, 2, 1, 0, 0, 0, 0, time.UTC)},
		{6, time.Date(2022, 6, 1, 0, 0, 0, 0, time.UTC), time.Date(2022, 7, 1, 0, 0, 0, 0, time.UTC)},
		{12, time.Date(2022, 12, 1, 0, 0, 0, 0, time.UTC), time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)},
	}
	for _, tc := range cases {
		w, err := NewMonthWindow(2022, tc.month)
		if err != nil {
			t.Fatalf("month %d: unexpected error %v", tc.month, err)
		}
		if !w.Start.Equal(tc.wantStart) || !w.End.Equal(tc.wantEnd) {
			t.Fatalf("month %d: got [%v, %v), want [%v, %v)", tc.month, w.Start, w.End, tc.wantStart, tc.wantEnd)
		}
	}
}

func TestNewMonthWindowRejectsOutOfRange(t *testing.T) {
	for _, month := range []int{0, 13, -1, 100} {
		_, err := NewMonthWindow(2022, month)
		if !errors.Is(err, ErrInvalidParameter) {
			t.Fatalf("month %d: expected ErrInvalidParameter, got %v", month, err)
		}
	}
}

func TestMonthWindowContains(t *testing.T) {
	w, err := NewMonthWindow(2022, 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cases := []struct {
		ts   time.Time
		want bool
	}{
		{time.Date(2022, 3, 1, 0, 0, 0, 0, time.UTC), true}, // inclusive start
		{time.Date(2022, 3, 31, 23, 59, 59, 0, time.UTC), true},
		{time.Date(2022, 4, 1, 0, 0, 0, 0, time.UTC), false}, // exclusive end
		{time.Date(2022, 2, 28, 12, 0, 0, 0, time.UTC), false},
		{time.Date(2021, 3, 15, 0, 0, 0, 0, time.UTC), false}, // other year never matches
		{time.Time{}, false}, // zero time
	}
	for i, tc := range cases {
		if got := w.Contains(tc.ts); got != tc.want {
			t.Fatalf("case %d (%v): got %v, want %v", i, tc.ts, got, tc.want)
		}
	}
}
