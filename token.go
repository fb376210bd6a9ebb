package cpn

import (
	"fmt"

	"github.com/google/uuid"
)

// ID returns a fresh unique identifier.
func ID() string {
	return uuid.New().String()
}

// TokenSchema names a color. Every token carries a schema, and places group
// their tokens by the schema's type tag.
type TokenSchema struct {
	// ID is the unique identifier of the token schema.
	ID string `json:"_id"`
	// Name is the name of the token schema.
	Name string `json:"name"`
	// Type is the color tag of the token schema.
	Type TokenType `json:"type"`
}

func NewTokenSchema(name string) *TokenSchema {
	return &TokenSchema{
		ID:   ID(),
		Name: name,
		Type: Sig,
	}
}

func (t *TokenSchema) WithType(ty TokenType) *TokenSchema {
	t.Type = ty
	return t
}

func (t *TokenSchema) String() string {
	return t.Name
}

type InvalidTokenValueError struct {
	TokenSchema *TokenSchema
	Value       interface{}
}

func (e *InvalidTokenValueError) Error() string {
	return fmt.Sprintf("invalid value for token %s: %v", e.TokenSchema.Name, e.Value)
}

// NewToken creates a token from the schema. The value must satisfy the
// schema's type tag.
func (t *TokenSchema) NewToken(value interface{}) (*Token, error) {
	if !t.Type.IsValid(value) {
		return nil, &InvalidTokenValueError{TokenSchema: t, Value: value}
	}
	return &Token{
		ID:     ID(),
		Schema: t,
		Value:  value,
	}, nil
}

// Token is an instance of a TokenSchema. Tokens are immutable once created.
type Token struct {
	// ID is the unique identifier of the token.
	ID string `json:"_id"`
	// Schema is the schema of the token.
	Schema *TokenSchema `json:"schema"`
	// Value is the value of the token.
	Value interface{} `json:"value"`
}

// Color returns the token's color tag.
func (t *Token) Color() TokenType {
	return t.Schema.Type
}

func (t *Token) String() string {
	return fmt.Sprintf("%s(%v)", t.Schema.Name, t.Value)
}

func Signal() *TokenSchema {
	return &TokenSchema{ID: ID(), Name: "signal", Type: Sig}
}

func String() *TokenSchema {
	return &TokenSchema{ID: ID(), Name: "string", Type: Str}
}

func Float64() *TokenSchema {
	return &TokenSchema{ID: ID(), Name: "float", Type: Float}
}

func Integer() *TokenSchema {
	return &TokenSchema{ID: ID(), Name: "int", Type: Int}
}

func Boolean() *TokenSchema {
	return &TokenSchema{ID: ID(), Name: "bool", Type: Bool}
}

func Time() *TokenSchema {
	return &TokenSchema{ID: ID(), Name: "time", Type: TimeStamp}
}

// SchemaFor returns a builtin schema for the given tag.
func SchemaFor(tag TokenType) *TokenSchema {
	switch tag {
	case Float:
		return Float64()
	case Int:
		return Integer()
	case Str:
		return String()
	case Bool:
		return Boolean()
	case TimeStamp:
		return Time()
	case Obj:
		return NewTokenSchema("object").WithType(Obj)
	default:
		return Signal()
	}
}
