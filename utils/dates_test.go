package utils

import (
	"testing"
	"time"
)

func TestBeginningOfDay(t *testing.T) {
	in := time.Date(2024, 6, 8, 17, 45, 12, 999, time.UTC)
	got := BeginningOfDay(in)
	want := time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("BeginningOfDay() = %v, want %v", got, want)
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			name:  "same day different hours",
			start: time.Date(2024, 6, 8, 1, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 6, 8, 23, 0, 0, 0, time.UTC),
			want:  0,
		},
		{
			name:  "two days apart across day boundary",
			start: time.Date(2024, 6, 8, 23, 59, 0, 0, time.UTC),
			end:   time.Date(2024, 6, 10, 0, 1, 0, 0, time.UTC),
			want:  2,
		},
		{
			name:  "negative when end precedes start",
			start: time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 6, 8, 0, 0, 0, 0, time.UTC),
			want:  -2,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.start, tt.end); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{name: "valid", in: "2024-06-10"},
		{name: "wrong layout", in: "10/06/2024", wantErr: true},
		{name: "not a date", in: "soon", wantErr: true},
		{name: "empty", in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDate(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if err == nil && FormatDate(got) != tt.in {
				t.Errorf("round trip = %q, want %q", FormatDate(got), tt.in)
			}
		})
	}
}
