package cpn

import (
	"errors"
	"strings"
	"time"
)

// TokenType is a color tag. The set of tags is closed: values outside the
// enumeration below never come out of TypeOf or ParseTokenType.
type TokenType string

var (
	Float     = TokenType("float")
	Int       = TokenType("integer")
	Str       = TokenType("string")
	Bool      = TokenType("boolean")
	Obj       = TokenType("object")
	Sig       = TokenType("signal")
	TimeStamp = TokenType("time")
)

func (t TokenType) IsPrimitive() bool {
	return t == Float || t == Int || t == Str || t == Bool || t == Sig || t == TimeStamp
}

// IsValid reports whether value is an acceptable payload for this tag.
func (t TokenType) IsValid(value interface{}) bool {
	switch t {
	case Float:
		switch value.(type) {
		case float64, float32:
			return true
		}
		return false
	case Int:
		switch value.(type) {
		case int, int32, int64:
			return true
		}
		return false
	case Str:
		_, ok := value.(string)
		return ok
	case Bool:
		_, ok := value.(bool)
		return ok
	case Obj:
		_, ok := value.(map[string]interface{})
		return ok
	case TimeStamp:
		_, ok := value.(time.Time)
		return ok
	case Sig:
		return true
	}
	return false
}

// TypeOf maps a host value to its color tag. Floating-point values always map
// to Float; there is no generic number tag.
func TypeOf(value interface{}) (TokenType, bool) {
	switch value.(type) {
	case float64, float32:
		return Float, true
	case int, int32, int64:
		return Int, true
	case string:
		return Str, true
	case bool:
		return Bool, true
	case map[string]interface{}:
		return Obj, true
	case time.Time:
		return TimeStamp, true
	case nil:
		return Sig, true
	}
	return "", false
}

var ErrInvalidTokenType = errors.New("invalid token type")

func ParseTokenType(s string) (TokenType, error) {
	switch s {
	case "float":
		return Float, nil
	case "integer", "int":
		return Int, nil
	case "string":
		return Str, nil
	case "boolean", "bool":
		return Bool, nil
	case "object":
		return Obj, nil
	case "signal":
		return Sig, nil
	case "time":
		return TimeStamp, nil
	default:
		return "", ErrInvalidTokenType
	}
}

// ColorSet is an ordered, duplicate-free set of color tags. The zero value is
// the empty set. A ColorSet is immutable; Without returns a new set.
type ColorSet struct {
	tags []TokenType
}

// NewColorSet builds a set from tags, keeping first-occurrence order and
// dropping duplicates.
func NewColorSet(tags ...TokenType) ColorSet {
	out := make([]TokenType, 0, len(tags))
	seen := make(map[TokenType]struct{}, len(tags))
	for _, tag := range tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return ColorSet{tags: out}
}

// Tags returns the tags in declaration order.
func (s ColorSet) Tags() []TokenType {
	out := make([]TokenType, len(s.tags))
	copy(out, s.tags)
	return out
}

func (s ColorSet) Len() int { return len(s.tags) }

func (s ColorSet) Empty() bool { return len(s.tags) == 0 }

func (s ColorSet) Contains(tag TokenType) bool {
	for _, t := range s.tags {
		if t == tag {
			return true
		}
	}
	return false
}

// Without returns the set difference s \ tags, preserving declaration order.
func (s ColorSet) Without(tags ...TokenType) ColorSet {
	drop := make(map[TokenType]struct{}, len(tags))
	for _, tag := range tags {
		drop[tag] = struct{}{}
	}
	out := make([]TokenType, 0, len(s.tags))
	for _, tag := range s.tags {
		if _, ok := drop[tag]; ok {
			continue
		}
		out = append(out, tag)
	}
	return ColorSet{tags: out}
}

func (s ColorSet) String() string {
	parts := make([]string, len(s.tags))
	for i, tag := range s.tags {
		parts[i] = string(tag)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
