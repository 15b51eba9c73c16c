package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    int
		wantErr bool
	}{
		{
			name: "monday",
			raw:  "1",
			want: 1,
		},
		{
			name: "sunday",
			raw:  "7",
			want: 7,
		},
		{
			name: "surrounding whitespace trimmed",
			raw:  " 4 ",
			want: 4,
		},
		{
			name:    "empty string rejected",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "whitespace only rejected",
			raw:     "   ",
			wantErr: true,
		},
		{
			name:    "non-numeric rejected",
			raw:     "mon",
			wantErr: true,
		},
		{
			name:    "zero out of range",
			raw:     "0",
			wantErr: true,
		},
		{
			name:    "eight out of range",
			raw:     "8",
			wantErr: true,
		},
		{
			name:    "nine out of range",
			raw:     "9",
			wantErr: true,
		},
		{
			name:    "negative out of range",
			raw:     "-1",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			day, err := ParseWeekday(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidWeekday))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, day)
		})
	}
}

func TestCorrectWeekday(t *testing.T) {
	tests := []struct {
		name     string
		dep      string
		arr      string
		reported int
		want     int
	}{
		{
			name:     "overnight flight shifts weekday back",
			dep:      "21:25",
			arr:      "05:10",
			reported: 3,
			want:     2,
		},
		{
			name:     "same-day flight unchanged",
			dep:      "08:00",
			arr:      "10:00",
			reported: 3,
			want:     3,
		},
		{
			name:     "monday wraps to sunday",
			dep:      "23:50",
			arr:      "06:30",
			reported: 1,
			want:     7,
		},
		{
			name:     "equal times treated as same day",
			dep:      "12:00",
			arr:      "12:00",
			reported: 5,
			want:     5,
		},
		{
			name:     "compact clock format",
			dep:      "2125",
			arr:      "0510",
			reported: 3,
			want:     2,
		},
		{
			name:     "missing departure time fails open",
			dep:      "",
			arr:      "05:10",
			reported: 3,
			want:     3,
		},
		{
			name:     "missing arrival time fails open",
			dep:      "21:25",
			arr:      "",
			reported: 3,
			want:     3,
		},
		{
			name:     "garbage departure time fails open",
			dep:      "late",
			arr:      "05:10",
			reported: 3,
			want:     3,
		},
		{
			name:     "out-of-range hour fails open",
			dep:      "25:00",
			arr:      "05:10",
			reported: 3,
			want:     3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CorrectWeekday(tt.dep, tt.arr, tt.reported)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMergeWeekdays(t *testing.T) {
	tests := []struct {
		name     string
		existing string
		day      int
		want     string
	}{
		{
			name:     "empty set starts with the new day",
			existing: "",
			day:      4,
			want:     "4",
		},
		{
			name:     "new day appended in order",
			existing: "4",
			day:      5,
			want:     "4,5",
		},
		{
			name:     "new day inserted in order",
			existing: "1,5",
			day:      3,
			want:     "1,3,5",
		},
		{
			name:     "already present day is a no-op",
			existing: "1,3,5",
			day:      3,
			want:     "1,3,5",
		},
		{
			name:     "unsorted existing set re-serialized ascending",
			existing: "5,1",
			day:      3,
			want:     "1,3,5",
		},
		{
			name:     "duplicates in existing set collapsed",
			existing: "2,2,4",
			day:      4,
			want:     "2,4",
		},
		{
			name:     "unparseable members preserved",
			existing: "x,3",
			day:      5,
			want:     "x,3,5",
		},
		{
			name:     "blank members dropped",
			existing: "1,,3",
			day:      2,
			want:     "1,2,3",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MergeWeekdays(tt.existing, tt.day)
			assert.Equal(t, tt.want, got)
		})
	}
}

// Merging the same day twice must converge to the same stored value.
func TestMergeWeekdays_Idempotent(t *testing.T) {
	once := MergeWeekdays("2,6", 4)
	twice := MergeWeekdays(once, 4)
	assert.Equal(t, once, twice)
	assert.Equal(t, "2,4,6", twice)
}

func TestMergeWeekdays_Commutative(t *testing.T) {
	ab := MergeWeekdays(MergeWeekdays("", 6), 2)
	ba := MergeWeekdays(MergeWeekdays("", 2), 6)
	assert.Equal(t, ab, ba)
}
