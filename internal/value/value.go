// Package value holds the closed set of value kinds that flow from JSON
// extraction into SQL literal formatting.
package value

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"time"
)

type Kind uint8

const (
	KindNull Kind = iota
	KindNumber
	KindBoolean
	KindTemporal
	KindString
	KindCompound // nested JSON object or array, kept as raw JSON text
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindNumber:
		return "number"
	case KindBoolean:
		return "boolean"
	case KindTemporal:
		return "temporal"
	case KindString:
		return "string"
	case KindCompound:
		return "compound"
	default:
		return "unknown"
	}
}

type TemporalKind uint8

const (
	DateTime TemporalKind = iota
	Date
	TimeOfDay
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04:05.999999999"
)

type Value struct {
	kind     Kind
	text     string
	boolean  bool
	instant  time.Time
	temporal TemporalKind
}

func Null() Value { return Value{kind: KindNull} }

// Number builds a numeric value from its decimal text. The text is kept as-is so
// that large integers and high precision decimals survive untouched.
func Number(text string) Value { return Value{kind: KindNumber, text: text} }

func Int(i int64) Value { return Number(strconv.FormatInt(i, 10)) }

func Float(f float64) Value { return Number(strconv.FormatFloat(f, 'f', -1, 64)) }

func Bool(b bool) Value { return Value{kind: KindBoolean, boolean: b} }

func String(s string) Value { return Value{kind: KindString, text: s} }

func Compound(raw string) Value { return Value{kind: KindCompound, text: raw} }

func Temporal(t time.Time, kind TemporalKind) Value {
	return Value{kind: KindTemporal, instant: t, temporal: kind}
}

// FromAny converts a decoded Go value into a Value.
func FromAny(v any) Value {
	switch x := v.(type) {
	case nil:
		return Null()
	case Value:
		return x
	case bool:
		return Bool(x)
	case string:
		return String(x)
	case json.Number:
		return Number(x.String())
	case int:
		return Int(int64(x))
	case int8:
		return Int(int64(x))
	case int16:
		return Int(int64(x))
	case int32:
		return Int(int64(x))
	case int64:
		return Int(x)
	case uint:
		return Number(strconv.FormatUint(uint64(x), 10))
	case uint8:
		return Number(strconv.FormatUint(uint64(x), 10))
	case uint16:
		return Number(strconv.FormatUint(uint64(x), 10))
	case uint32:
		return Number(strconv.FormatUint(uint64(x), 10))
	case uint64:
		return Number(strconv.FormatUint(x, 10))
	case float32:
		return floatValue(float64(x))
	case float64:
		return floatValue(x)
	case time.Time:
		return Temporal(x, DateTime)
	case *time.Time:
		if x == nil {
			return Null()
		}
		return Temporal(*x, DateTime)
	case fmt.Stringer:
		return String(x.String())
	default:
		raw, err := json.Marshal(x)
		if err != nil {
			return String(fmt.Sprintf("%v", x))
		}
		return Compound(string(raw))
	}
}

func floatValue(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		// not representable as a SQL numeric literal
		return String(strconv.FormatFloat(f, 'f', -1, 64))
	}
	return Float(f)
}

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) Bool() bool { return v.boolean }

func (v Value) Time() time.Time { return v.instant }

func (v Value) TemporalKind() TemporalKind { return v.temporal }

// Text is the plain text representation of the value: decimal text for
// numbers, true/false for booleans, ISO-8601 for temporals and raw JSON for
// compound values. Null renders as the empty string.
func (v Value) Text() string {
	switch v.kind {
	case KindNull:
		return ""
	case KindBoolean:
		return strconv.FormatBool(v.boolean)
	case KindTemporal:
		return v.ISO8601()
	default:
		return v.text
	}
}

// ISO8601 renders a temporal value; other kinds return their Text.
func (v Value) ISO8601() string {
	if v.kind != KindTemporal {
		return v.Text()
	}
	switch v.temporal {
	case Date:
		return v.instant.Format(dateLayout)
	case TimeOfDay:
		return v.instant.Format(timeLayout)
	default:
		return v.instant.Format(dateLayout + "T" + timeLayout)
	}
}

// Interface returns a JSON friendly Go value.
func (v Value) Interface() any {
	switch v.kind {
	case KindNull:
		return nil
	case KindNumber:
		return json.Number(v.text)
	case KindBoolean:
		return v.boolean
	case KindCompound:
		return json.RawMessage(v.text)
	default:
		return v.Text()
	}
}

func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

func (v Value) String() string {
	if v.kind == KindNull {
		return "null"
	}
	return v.Text()
}
