package types

import (
	"fmt"
	"github.com/cottand/typelint/jsdoc"
	"github.com/pkg/errors"
	"slices"
	"strings"
)

// UnrecognisedExprError means the annotation parser produced a type expression this
// package was never designed to interpret. It is a defect in the input, and the
// annotation it came from should not be used at all
type UnrecognisedExprError struct {
	Kind jsdoc.ExprKind
}

func (e *UnrecognisedExprError) Error() string {
	return fmt.Sprintf("unrecognised type expression %q", string(e.Kind))
}

var (
	propertyTitles = []string{jsdoc.TitleProperty, jsdoc.TitleProp}
	paramTitles    = []string{jsdoc.TitleParam}
)

// memberSource selects sibling tags with one of titles whose name is prefix followed
// by a name without dots
type memberSource struct {
	titles []string
	prefix string
}

// memberScope lists where the members of a record are declared. When a member is
// declared twice the earlier source wins, and within a source the first tag
type memberScope []memberSource

var topLevelProperties = memberScope{{titles: propertyTitles}}

// paramMembers are the dotted params of name, then the top-level properties
func paramMembers(name string) memberScope {
	return memberScope{{titles: paramTitles, prefix: name + "."}, {titles: propertyTitles}}
}

func (s memberScope) nested(name string) memberScope {
	nested := make(memberScope, len(s))
	for i, source := range s {
		nested[i] = memberSource{titles: source.titles, prefix: source.prefix + name + "."}
	}
	return nested
}

type translator struct {
	defs *Typedefs
	// tags are the siblings record members are sourced from
	tags []jsdoc.Tag
}

// Translate returns the type a documentation comment gives to the entity it documents.
//
// The first matching rule wins:
//   - a @typedef tag registers its record shape in defs under the typedef's name,
//     and the comment itself has type Unknown
//   - a @type tag gives its type directly
//   - @param, @return or @returns tags describe a Function
//   - anything else is Unknown
//
// The only error is an *UnrecognisedExprError (wrapped, test with errors.As).
// A nil defs behaves as an empty registry that is discarded afterwards.
func Translate(c jsdoc.Comment, defs *Typedefs) (ret Type, err error) {
	if defs == nil {
		defs = NewTypedefs()
	}
	defer func() {
		if err == nil {
			logger.Debug("translated annotation", "tags", len(c.Tags), "type", ret.String())
		}
	}()
	tr := &translator{defs: defs, tags: c.Tags}

	if tag, ok := c.Find(jsdoc.TitleTypedef); ok {
		return Unknown, tr.typedef(tag)
	}
	if tag, ok := c.Find(jsdoc.TitleType); ok {
		return tr.expr(tag.Type, topLevelProperties)
	}
	if c.Has(jsdoc.TitleReturn, jsdoc.TitleReturns, jsdoc.TitleParam) {
		return tr.function()
	}
	return Unknown, nil
}

// TranslateExpr translates a single type expression that has no sibling tags,
// like the observed type of a value
func TranslateExpr(e jsdoc.TypeExpr, defs *Typedefs) (Type, error) {
	tr := &translator{defs: defs}
	return tr.expr(e, memberScope{})
}

func (tr *translator) typedef(tag jsdoc.Tag) error {
	if tag.Name == "" {
		logger.Warn("ignoring typedef without a name", "type", jsdoc.Slog(tag.Type))
		return nil
	}
	var fields []*jsdoc.FieldType
	switch e := tag.Type.(type) {
	case nil:
		// `@typedef Name` alone documents an object
	case *jsdoc.NameExpression:
		if !objectNames[e.Name] {
			logger.Debug("typedef shape is not a record, not registering", "name", tag.Name, "type", jsdoc.Slog(e))
			return nil
		}
	case *jsdoc.RecordType:
		fields = e.Fields
	default:
		logger.Debug("typedef shape is not a record, not registering", "name", tag.Name, "type", jsdoc.Slog(e))
		return nil
	}
	shape, err := tr.record(topLevelProperties, fields)
	if err != nil {
		return errors.Wrapf(err, "typedef %s", tag.Name)
	}
	tr.defs.Register(tag.Name, shape)
	return nil
}

// function builds a signature from @param and @return(s) tags. Dotted params
// document members of an earlier object param and are not arguments themselves
func (tr *translator) function() (Type, error) {
	ret := Unknown
	seenReturn := false
	var args []Type
	params := make(map[string]Type)
	required := 0
	variadic := false

	for _, tag := range tr.tags {
		switch tag.Title {
		case jsdoc.TitleReturn, jsdoc.TitleReturns:
			if seenReturn {
				continue
			}
			seenReturn = true
			t, err := tr.expr(tag.Type, topLevelProperties)
			if err != nil {
				return nil, errors.Wrap(err, "@"+tag.Title)
			}
			ret = t
		case jsdoc.TitleParam:
			if strings.Contains(tag.Name, ".") {
				continue
			}
			expr, optional, rest := unwrapParam(tag.Type)
			t, err := tr.expr(expr, paramMembers(tag.Name))
			if err != nil {
				return nil, errors.Wrapf(err, "@param %s", tag.Name)
			}
			args = append(args, t)
			if tag.Name != "" {
				params[tag.Name] = t
			}
			if !optional && !rest {
				required = len(args)
			}
			variadic = variadic || rest
		}
	}

	fn := NewFunction(ret, args, params).withRequired(required)
	if variadic {
		fn = fn.withVariadic()
	}
	return fn, nil
}

// unwrapParam strips the `=` and `...` markers that only matter to the signature
func unwrapParam(e jsdoc.TypeExpr) (inner jsdoc.TypeExpr, optional, rest bool) {
	for {
		switch wrapped := e.(type) {
		case *jsdoc.OptionalType:
			optional = true
			e = wrapped.Expression
		case *jsdoc.RestType:
			rest = true
			e = wrapped.Expression
		default:
			return e, optional, rest
		}
	}
}

// expr is the dispatch over declared-type syntax. A nil expression is Unknown
func (tr *translator) expr(e jsdoc.TypeExpr, scope memberScope) (Type, error) {
	switch e := e.(type) {
	case nil:
		return Unknown, nil
	case *jsdoc.FunctionType:
		return tr.functionExpr(e)
	case *jsdoc.RecordType:
		return tr.record(scope, e.Fields)
	case *jsdoc.UnionType:
		alternatives := &translator{defs: tr.defs}
		members := make([]Type, 0, len(e.Elements))
		for _, elem := range e.Elements {
			m, err := alternatives.expr(elem, memberScope{})
			if err != nil {
				return nil, err
			}
			members = append(members, m)
		}
		return NewUnion(members...), nil
	case *jsdoc.NameExpression:
		if objectNames[e.Name] {
			return tr.record(scope, nil)
		}
		if target, ok := tr.defs.Resolve(e.Name); ok {
			return NewAlias(e.Name, target), nil
		}
		return NewPrimitive(e.Name), nil
	case *jsdoc.UndefinedLiteral, *jsdoc.VoidLiteral:
		return Undefined, nil
	case *jsdoc.NullLiteral:
		return Null, nil
	case *jsdoc.AllLiteral, *jsdoc.UnknownLiteral:
		return Unknown, nil
	case *jsdoc.NullableType:
		inner, err := tr.expr(e.Expression, scope)
		if err != nil {
			return nil, err
		}
		return NewUnion(inner, Null), nil
	case *jsdoc.NonNullableType:
		return tr.expr(e.Expression, scope)
	case *jsdoc.OptionalType:
		return tr.expr(e.Expression, scope)
	case *jsdoc.RestType:
		return tr.expr(e.Expression, scope)
	case *jsdoc.TypeApplication:
		return tr.expr(e.Expression, scope)
	default:
		return nil, errors.WithStack(&UnrecognisedExprError{Kind: e.Kind()})
	}
}

func (tr *translator) functionExpr(e *jsdoc.FunctionType) (Type, error) {
	inner := &translator{defs: tr.defs}
	ret, err := inner.expr(e.Result, memberScope{})
	if err != nil {
		return nil, err
	}
	args := make([]Type, 0, len(e.Params))
	required := 0
	variadic := false
	for _, param := range e.Params {
		expr, optional, rest := unwrapParam(param)
		t, err := inner.expr(expr, memberScope{})
		if err != nil {
			return nil, err
		}
		args = append(args, t)
		if !optional && !rest {
			required = len(args)
		}
		variadic = variadic || rest
	}
	fn := NewFunction(ret, args, nil).withRequired(required)
	if variadic {
		fn = fn.withVariadic()
	}
	return fn, nil
}

// record collects the members of a record from the sibling tags in scope, then adds
// fields written inline in the expression for names the tags did not declare
func (tr *translator) record(scope memberScope, inline []*jsdoc.FieldType) (*Record, error) {
	r := Object
	for _, source := range scope {
		for _, tag := range tr.tags {
			if !slices.Contains(source.titles, tag.Title) {
				continue
			}
			name, ok := strings.CutPrefix(tag.Name, source.prefix)
			if !ok || name == "" || strings.Contains(name, ".") || r.Has(name) {
				continue
			}
			expr, _, _ := unwrapParam(tag.Type)
			t, err := tr.expr(expr, scope.nested(name))
			if err != nil {
				return nil, errors.Wrapf(err, "@%s %s", tag.Title, tag.Name)
			}
			r = r.With(name, t)
		}
	}
	fieldTranslator := &translator{defs: tr.defs}
	for _, field := range inline {
		if r.Has(field.Key) {
			continue
		}
		t, err := fieldTranslator.expr(field.Value, memberScope{})
		if err != nil {
			return nil, errors.Wrapf(err, "field %s", field.Key)
		}
		r = r.With(field.Key, t)
	}
	return r, nil
}
