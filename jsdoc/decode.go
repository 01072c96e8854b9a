package jsdoc

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
)

// Decode reads one Comment in the JSON form emitted by doctrine-style annotation parsers:
//
//	{"description": "", "tags": [{"title": "param", "name": "a", "type": {"type": "NameExpression", "name": "number"}}]}
func Decode(r io.Reader) (Comment, error) {
	var c Comment
	if err := json.NewDecoder(r).Decode(&c); err != nil {
		return Comment{}, fmt.Errorf("decode comment: %w", err)
	}
	return c, nil
}

type rawTag struct {
	Title       string          `json:"title"`
	Name        *string         `json:"name"`
	Description *string         `json:"description"`
	Type        json.RawMessage `json:"type"`
}

func (t *Tag) UnmarshalJSON(data []byte) error {
	var raw rawTag
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	t.Title = raw.Title
	if raw.Name != nil {
		t.Name = *raw.Name
	}
	if raw.Description != nil {
		t.Description = *raw.Description
	}
	expr, err := DecodeTypeExpr(raw.Type)
	if err != nil {
		return fmt.Errorf("tag @%s: %w", raw.Title, err)
	}
	t.Type = expr
	return nil
}

type rawExpr struct {
	Type         string            `json:"type"`
	Name         string            `json:"name"`
	Key          string            `json:"key"`
	Prefix       bool              `json:"prefix"`
	Elements     []json.RawMessage `json:"elements"`
	Fields       []json.RawMessage `json:"fields"`
	Params       []json.RawMessage `json:"params"`
	Applications []json.RawMessage `json:"applications"`
	Value        json.RawMessage   `json:"value"`
	Result       json.RawMessage   `json:"result"`
	This         json.RawMessage   `json:"this"`
	New          json.RawMessage   `json:"new"`
	Expression   json.RawMessage   `json:"expression"`
}

func isNull(data json.RawMessage) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}

// DecodeTypeExpr decodes a single type expression node. An absent or null node decodes
// to a nil TypeExpr, and a node with an unknown discriminator decodes to an
// *UnrecognisedExpr rather than an error
func DecodeTypeExpr(data json.RawMessage) (TypeExpr, error) {
	if isNull(data) {
		return nil, nil
	}
	var raw rawExpr
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	switch ExprKind(raw.Type) {
	case KindName:
		return &NameExpression{Name: raw.Name}, nil
	case KindUnion:
		elems, err := decodeList(raw.Elements)
		return &UnionType{Elements: elems}, err
	case KindArray:
		elems, err := decodeList(raw.Elements)
		return &ArrayType{Elements: elems}, err
	case KindRecord:
		fields := make([]*FieldType, 0, len(raw.Fields))
		for _, f := range raw.Fields {
			decoded, err := DecodeTypeExpr(f)
			if err != nil {
				return nil, err
			}
			field, ok := decoded.(*FieldType)
			if !ok {
				return nil, fmt.Errorf("record field is a %s, not a %s", kindOf(decoded), KindField)
			}
			fields = append(fields, field)
		}
		return &RecordType{Fields: fields}, nil
	case KindField:
		value, err := DecodeTypeExpr(raw.Value)
		return &FieldType{Key: raw.Key, Value: value}, err
	case KindFunction:
		params, err := decodeList(raw.Params)
		if err != nil {
			return nil, err
		}
		fn := &FunctionType{Params: params}
		if fn.Result, err = DecodeTypeExpr(raw.Result); err != nil {
			return nil, err
		}
		if fn.This, err = DecodeTypeExpr(raw.This); err != nil {
			return nil, err
		}
		if fn.New, err = DecodeTypeExpr(raw.New); err != nil {
			return nil, err
		}
		return fn, nil
	case KindUndefined:
		return &UndefinedLiteral{}, nil
	case KindNull:
		return &NullLiteral{}, nil
	case KindVoid:
		return &VoidLiteral{}, nil
	case KindAll:
		return &AllLiteral{}, nil
	case KindUnknown:
		return &UnknownLiteral{}, nil
	case KindNullable, KindNonNullable, KindOptional, KindRest:
		inner, err := DecodeTypeExpr(raw.Expression)
		if err != nil {
			return nil, err
		}
		return wrap(ExprKind(raw.Type), inner, raw.Prefix), nil
	case KindApplication:
		base, err := DecodeTypeExpr(raw.Expression)
		if err != nil {
			return nil, err
		}
		apps, err := decodeList(raw.Applications)
		return &TypeApplication{Expression: base, Applications: apps}, err
	default:
		return &UnrecognisedExpr{RawKind: raw.Type, Raw: bytes.Clone(data)}, nil
	}
}

func wrap(kind ExprKind, inner TypeExpr, prefix bool) TypeExpr {
	switch kind {
	case KindNullable:
		return &NullableType{Expression: inner, Prefix: prefix}
	case KindNonNullable:
		return &NonNullableType{Expression: inner, Prefix: prefix}
	case KindOptional:
		return &OptionalType{Expression: inner}
	case KindRest:
		return &RestType{Expression: inner}
	default:
		panic(fmt.Sprintf("wrap: not a wrapping kind: %s", kind))
	}
}

func decodeList(raws []json.RawMessage) ([]TypeExpr, error) {
	exprs := make([]TypeExpr, 0, len(raws))
	for _, r := range raws {
		e, err := DecodeTypeExpr(r)
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, e)
	}
	return exprs, nil
}

func kindOf(e TypeExpr) ExprKind {
	if e == nil {
		return "null"
	}
	return e.Kind()
}
