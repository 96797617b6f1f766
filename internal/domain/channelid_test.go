package domain

import (
	"math"
	"testing"
)

func TestNormalizeRaw(t *testing.T) {
	cases := []struct {
		name string
		raw  RawChannelID
		want ChannelID
	}{
		{"number", NumberID(1234567890123456789), 1234567890123456789},
		{"zero value", RawChannelID{}, 0},
		{"split small", SplitID(5, 0), 5},
		{"split high word", SplitID(1, 1), 1<<32 + 1},
		{"split negative low is unsigned", SplitID(-1, 0), math.MaxUint32},
		{"split discord id", SplitID(2112454144, 287445236), 1234567890123456000},
		{"split negative low word", SplitID(-2, 1), 1<<32 + math.MaxUint32 - 1},
		{"text", TextID("1234567890123456789"), 1234567890123456789},
		{"text padded", TextID(" 42 "), 42},
		{"text above int64", TextID("18446744073709551615"), math.MaxUint64},
		{"text garbage", TextID("abc"), 0},
		{"float integral", FloatID(1e15), 1e15},
		{"float fraction", FloatID(1.5), 0},
		{"float nan", FloatID(math.NaN()), 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.raw.Normalize(); got != tc.want {
				t.Fatalf("Normalize(%+v) = %d, want %d", tc.raw, got, tc.want)
			}
		})
	}
}

func TestSplitRoundTrip(t *testing.T) {
	for _, id := range []ChannelID{0, 1, math.MaxUint32, 1 << 32, 1234567890123456789, math.MaxUint64} {
		low, high := id.Split()
		if got := SplitID(low, high).Normalize(); got != id {
			t.Errorf("split round trip of %d gave %d", id, got)
		}
	}
}

func TestNormalizeIDLoose(t *testing.T) {
	cases := []struct {
		name string
		in   any
		want ChannelID
	}{
		{"nil", nil, 0},
		{"int", 7, 7},
		{"int64", int64(1234567890123456789), 1234567890123456789},
		{"float64", float64(99), 99},
		{"string", "12", 12},
		{"bool", true, 0},
		{"split map", map[string]any{"low": int32(2), "high": int32(1)}, 1<<32 + 2},
		{"split map floats", map[string]any{"low": float64(2), "high": float64(1)}, 1<<32 + 2},
		{"map missing high", map[string]any{"low": int32(2)}, 0},
		{"map wrong type", map[string]any{"low": "x", "high": int32(1)}, 0},
		{"already canonical", ChannelID(5), 5},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NormalizeID(tc.in); got != tc.want {
				t.Fatalf("NormalizeID(%v) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}
