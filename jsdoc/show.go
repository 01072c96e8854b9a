package jsdoc

import (
	"log/slog"
	"strings"
)

// ExprString renders e back into closure-style type syntax
func ExprString(e TypeExpr) string {
	sb := &strings.Builder{}
	showExpr(sb, e)
	return sb.String()
}

func showList(sb *strings.Builder, exprs []TypeExpr, sep string) {
	for i, e := range exprs {
		if i > 0 {
			sb.WriteString(sep)
		}
		showExpr(sb, e)
	}
}

func showExpr(sb *strings.Builder, e TypeExpr) {
	switch e := e.(type) {
	case nil:
		sb.WriteString("nil")
	case *NameExpression:
		sb.WriteString(e.Name)
	case *UnionType:
		sb.WriteString("(")
		showList(sb, e.Elements, "|")
		sb.WriteString(")")
	case *ArrayType:
		sb.WriteString("[")
		showList(sb, e.Elements, ", ")
		sb.WriteString("]")
	case *RecordType:
		sb.WriteString("{")
		for i, f := range e.Fields {
			if i > 0 {
				sb.WriteString(", ")
			}
			showExpr(sb, f)
		}
		sb.WriteString("}")
	case *FieldType:
		sb.WriteString(e.Key)
		if e.Value != nil {
			sb.WriteString(": ")
			showExpr(sb, e.Value)
		}
	case *FunctionType:
		sb.WriteString("function(")
		var params []TypeExpr
		if e.This != nil {
			params = append(params, &NameExpression{Name: "this:" + ExprString(e.This)})
		}
		if e.New != nil {
			params = append(params, &NameExpression{Name: "new:" + ExprString(e.New)})
		}
		showList(sb, append(params, e.Params...), ", ")
		sb.WriteString(")")
		if e.Result != nil {
			sb.WriteString(": ")
			showExpr(sb, e.Result)
		}
	case *UndefinedLiteral:
		sb.WriteString("undefined")
	case *NullLiteral:
		sb.WriteString("null")
	case *VoidLiteral:
		sb.WriteString("void")
	case *AllLiteral:
		sb.WriteString("*")
	case *UnknownLiteral:
		sb.WriteString("?")
	case *NullableType:
		if e.Prefix {
			sb.WriteString("?")
			showExpr(sb, e.Expression)
		} else {
			showExpr(sb, e.Expression)
			sb.WriteString("?")
		}
	case *NonNullableType:
		if e.Prefix {
			sb.WriteString("!")
			showExpr(sb, e.Expression)
		} else {
			showExpr(sb, e.Expression)
			sb.WriteString("!")
		}
	case *OptionalType:
		showExpr(sb, e.Expression)
		sb.WriteString("=")
	case *RestType:
		sb.WriteString("...")
		showExpr(sb, e.Expression)
	case *TypeApplication:
		showExpr(sb, e.Expression)
		sb.WriteString(".<")
		showList(sb, e.Applications, ", ")
		sb.WriteString(">")
	case *UnrecognisedExpr:
		sb.WriteString("<" + e.RawKind + ">")
	}
}

// Slog wraps a TypeExpr as a slog.LogValuer so that it only gets rendered
// when the record is actually logged
func Slog(e TypeExpr) slog.LogValuer {
	return exprLogValuer{e}
}

type exprLogValuer struct{ TypeExpr }

func (l exprLogValuer) LogValue() slog.Value {
	return slog.StringValue(ExprString(l.TypeExpr))
}
