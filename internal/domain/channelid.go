package domain

import (
	"math"
	"strconv"
	"strings"

	"github.com/bwmarrin/snowflake"
)

// ChannelID is the canonical form of a Discord channel identifier. It is the
// join key between companies and subscriptions.
type ChannelID uint64

func (id ChannelID) String() string { return strconv.FormatUint(uint64(id), 10) }

// Split returns the signed 32-bit words of the identifier, matching the
// {low, high} shape some writers store.
func (id ChannelID) Split() (low, high int32) {
	return int32(uint32(id)), int32(uint32(id >> 32))
}

// IDKind tags the representation a RawChannelID arrived in.
type IDKind uint8

const (
	KindInvalid IDKind = iota
	KindNumber
	KindSplit
	KindText
)

func (k IDKind) String() string {
	switch k {
	case KindNumber:
		return "number"
	case KindSplit:
		return "split"
	case KindText:
		return "text"
	}
	return "invalid"
}

// RawChannelID is an identifier as read from storage: a plain number, a
// {low, high} pair of 32-bit words, or decimal text. Adapters build one and
// call Normalize before handing data to the rest of the program.
type RawChannelID struct {
	Kind IDKind
	Num  int64
	Low  int32
	High int32
	Text string
}

func NumberID(n int64) RawChannelID {
	return RawChannelID{Kind: KindNumber, Num: n}
}

func SplitID(low, high int32) RawChannelID {
	return RawChannelID{Kind: KindSplit, Low: low, High: high}
}

func TextID(s string) RawChannelID {
	return RawChannelID{Kind: KindText, Text: s}
}

// FloatID accepts a double-encoded number. Non-integral or out of range
// values yield an invalid identifier.
func FloatID(f float64) RawChannelID {
	if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return RawChannelID{}
	}
	return NumberID(int64(f))
}

// Normalize never fails; anything it cannot interpret becomes 0.
func (r RawChannelID) Normalize() ChannelID {
	switch r.Kind {
	case KindNumber:
		return ChannelID(uint64(r.Num))
	case KindSplit:
		return ChannelID(uint64(uint32(r.High))<<32 | uint64(uint32(r.Low)))
	case KindText:
		return parseChannelID(r.Text)
	}
	return 0
}

// NormalizeID is Normalize for loosely typed values such as decoded JSON or
// generic maps. Maps are read as {low, high} pairs.
func NormalizeID(v any) ChannelID {
	switch v := v.(type) {
	case ChannelID:
		return v
	case RawChannelID:
		return v.Normalize()
	case int:
		return NumberID(int64(v)).Normalize()
	case int32:
		return NumberID(int64(v)).Normalize()
	case int64:
		return NumberID(v).Normalize()
	case uint32:
		return ChannelID(v)
	case uint64:
		return ChannelID(v)
	case float64:
		return FloatID(v).Normalize()
	case string:
		return parseChannelID(v)
	case map[string]any:
		low, okLow := word(v["low"])
		high, okHigh := word(v["high"])
		if !okLow || !okHigh {
			return 0
		}
		return SplitID(low, high).Normalize()
	}
	return 0
}

func word(v any) (int32, bool) {
	switch v := v.(type) {
	case int32:
		return v, true
	case int:
		return word(int64(v))
	case int64:
		return int32(v), v >= math.MinInt32 && v <= math.MaxUint32
	case float64:
		if v != math.Trunc(v) || v < math.MinInt32 || v > math.MaxUint32 {
			return 0, false
		}
		return int32(int64(v)), true
	}
	return 0, false
}

func parseChannelID(s string) ChannelID {
	s = strings.TrimSpace(s)
	if id, err := snowflake.ParseString(s); err == nil {
		return ChannelID(uint64(id.Int64()))
	}
	// snowflakes are signed; above MaxInt64 only an unsigned parse succeeds
	if u, err := strconv.ParseUint(s, 10, 64); err == nil {
		return ChannelID(u)
	}
	return 0
}
