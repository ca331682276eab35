// Package jsonpath resolves dot/bracket path expressions such as
// user.addresses[0].city against raw JSON text.
package jsonpath

import (
	"strconv"
	"strings"

	"github.com/Rana718/jsonsql/internal/value"
	"github.com/tidwall/gjson"
)

// Extract evaluates path against json. The boolean is false when the value is
// absent: malformed JSON, a missing key, an out of range index or a blank path.
// A JSON null that is present resolves to value.Null() with ok set.
func Extract(json, path string) (value.Value, bool) {
	res, ok := lookup(json, path)
	if !ok {
		return value.Value{}, false
	}
	return fromResult(res), true
}

func ExtractString(json, path string) (string, bool) {
	v, ok := Extract(json, path)
	if !ok || v.IsNull() {
		return "", false
	}
	return v.Text(), true
}

func Exists(json, path string) bool {
	_, ok := lookup(json, path)
	return ok
}

func lookup(json, path string) (gjson.Result, bool) {
	if strings.TrimSpace(path) == "" || !gjson.Valid(json) {
		return gjson.Result{}, false
	}
	segments, ok := Split(path)
	if !ok {
		return gjson.Result{}, false
	}

	res := gjson.Parse(json)
	for _, seg := range segments {
		if res, ok = step(res, seg); !ok {
			return gjson.Result{}, false
		}
	}
	return res, true
}

// step resolves one segment. Indexes only apply to arrays and field names only
// to objects; when an object repeats a key the last occurrence wins.
func step(res gjson.Result, seg Segment) (gjson.Result, bool) {
	if seg.Index >= 0 {
		if !res.IsArray() {
			return gjson.Result{}, false
		}
		items := res.Array()
		if seg.Index >= len(items) {
			return gjson.Result{}, false
		}
		return items[seg.Index], true
	}

	if !res.IsObject() {
		return gjson.Result{}, false
	}
	var (
		found gjson.Result
		ok    bool
	)
	res.ForEach(func(key, val gjson.Result) bool {
		if key.String() == seg.Field {
			found, ok = val, true
		}
		return true
	})
	return found, ok
}

func fromResult(res gjson.Result) value.Value {
	switch res.Type {
	case gjson.Null:
		return value.Null()
	case gjson.True:
		return value.Bool(true)
	case gjson.False:
		return value.Bool(false)
	case gjson.Number:
		return value.Number(res.Raw)
	case gjson.String:
		return value.String(res.Str)
	default:
		return value.Compound(res.Raw)
	}
}

// Segment is one step of a parsed path: either a field name or, when Index is
// not negative, an array index.
type Segment struct {
	Field string
	Index int
}

// Split normalizes the optional $ root marker away and breaks the path into
// segments. Bracketed quoted names (['a.b']) are accepted as field names.
func Split(path string) ([]Segment, bool) {
	p := strings.TrimSpace(path)
	if p == "" {
		return nil, false
	}
	switch {
	case strings.HasPrefix(p, "$"):
	case strings.HasPrefix(p, "["):
		p = "$" + p
	default:
		p = "$." + p
	}
	p = strings.TrimPrefix(p, "$")

	var segments []Segment
	for len(p) > 0 {
		switch p[0] {
		case '.':
			p = p[1:]
			end := strings.IndexAny(p, ".[")
			if end < 0 {
				end = len(p)
			}
			name := p[:end]
			if name == "" {
				return nil, false
			}
			segments = append(segments, Segment{Field: name, Index: -1})
			p = p[end:]
		case '[':
			end := closingBracket(p)
			if end < 0 {
				return nil, false
			}
			inner := strings.TrimSpace(p[1:end])
			p = p[end+1:]
			if name, quoted := unquote(inner); quoted {
				segments = append(segments, Segment{Field: name, Index: -1})
				continue
			}
			idx, err := strconv.Atoi(inner)
			if err != nil || idx < 0 {
				return nil, false
			}
			segments = append(segments, Segment{Index: idx})
		default:
			return nil, false
		}
	}
	return segments, true
}

func closingBracket(p string) int {
	if len(p) > 1 && (p[1] == '\'' || p[1] == '"') {
		q := p[1]
		end := strings.IndexByte(p[2:], q)
		if end < 0 {
			return -1
		}
		rest := p[2+end+1:]
		rb := strings.IndexByte(rest, ']')
		if rb < 0 {
			return -1
		}
		return 2 + end + 1 + rb
	}
	return strings.IndexByte(p, ']')
}

func unquote(s string) (string, bool) {
	if len(s) >= 2 && (s[0] == '\'' || s[0] == '"') && s[len(s)-1] == s[0] {
		return s[1 : len(s)-1], true
	}
	return "", false
}
