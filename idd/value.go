package idd

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the cases of a parsed field [Value].
type Kind int

const (
	KindMissing Kind = iota
	KindText
	KindInteger
	KindReal
	KindSentinel
)

func (k Kind) String() string {
	switch k {
	case KindMissing:
		return "missing"
	case KindText:
		return "text"
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindSentinel:
		return "sentinel"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// SentinelToken is a reserved keyword the engine accepts in place of a
// number, meaning "compute this automatically".
type SentinelToken string

const (
	Autocalculate SentinelToken = "autocalculate"
	Autosize      SentinelToken = "autosize"
)

// Value is a parsed field value: a closed union over the kinds a field can
// hold. The zero Value is Missing.
type Value struct {
	kind     Kind
	text     string
	integer  int64
	real     float64
	sentinel SentinelToken
}

func MissingValue() Value                   { return Value{} }
func TextValue(s string) Value              { return Value{kind: KindText, text: s} }
func IntegerValue(i int64) Value            { return Value{kind: KindInteger, integer: i} }
func RealValue(f float64) Value             { return Value{kind: KindReal, real: f} }
func SentinelValue(tok SentinelToken) Value { return Value{kind: KindSentinel, sentinel: tok} }

// Kind reports which case the value holds.
func (v Value) Kind() Kind { return v.kind }

// IsMissing reports whether the value is the no-value case.
func (v Value) IsMissing() bool { return v.kind == KindMissing }

// Text returns the string payload of a KindText value.
func (v Value) Text() string { return v.text }

// Int returns the payload of a KindInteger value.
func (v Value) Int() int64 { return v.integer }

// Real returns the payload of a KindReal value.
func (v Value) Real() float64 { return v.real }

// Sentinel returns the token of a KindSentinel value.
func (v Value) Sentinel() SentinelToken { return v.sentinel }

func (v Value) String() string {
	switch v.kind {
	case KindMissing:
		return "<missing>"
	case KindText:
		return v.text
	case KindInteger:
		return strconv.FormatInt(v.integer, 10)
	case KindReal:
		return strconv.FormatFloat(v.real, 'g', -1, 64)
	case KindSentinel:
		return string(v.sentinel)
	default:
		return fmt.Sprintf("<invalid kind %d>", int(v.kind))
	}
}

// ToNum coerces a non-empty string to a numeric Value. The reserved
// sentinel tokens pass through as tokens, never numbers; the comparison is
// case-insensitive even though normalized input is already lower-cased.
// Otherwise an integer parse is attempted, then a float parse; if both
// fail the token is a hard parse error.
func ToNum(raw string) (Value, error) {
	if strings.EqualFold(raw, string(Autocalculate)) {
		return SentinelValue(Autocalculate), nil
	}
	if strings.EqualFold(raw, string(Autosize)) {
		return SentinelValue(Autosize), nil
	}
	if i, err := strconv.ParseInt(raw, 10, 64); err == nil {
		return IntegerValue(i), nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return Value{}, fmt.Errorf("parse numeric field: %w", err)
	}
	return RealValue(f), nil
}
