package jsdoc

import (
	"fmt"
	"strings"
)

// ParseError reports where a textual type expression stopped making sense
type ParseError struct {
	Input  string
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("type expression %q at offset %d: %s", e.Input, e.Offset, e.Msg)
}

// ParseType reads closure-style type syntax, the language of the braces in `@param {T} name`.
//
// Supported forms: names (`string`, `ns.Point`), `*`, lone `?`, `null`, `undefined`, `void`,
// unions `A|B` with optional parentheses, records `{a: A, b}`, tuples `[A, B]`,
// functions `function(this:T, A, B=, ...C): R`, prefix and postfix `?`/`!`, trailing `=`,
// leading `...`, and applications `Array.<T>` or `Array<T>`.
func ParseType(src string) (TypeExpr, error) {
	p := &typeParser{src: src}
	e, err := p.parseTypeExpr()
	if err != nil {
		return nil, err
	}
	p.skipSpace()
	if p.pos < len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return e, nil
}

type typeParser struct {
	src string
	pos int
}

func (p *typeParser) errorf(format string, args ...any) *ParseError {
	return &ParseError{Input: p.src, Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *typeParser) skipSpace() {
	for p.pos < len(p.src) && strings.IndexByte(" \t\r\n", p.src[p.pos]) >= 0 {
		p.pos++
	}
}

func (p *typeParser) accept(token string) bool {
	p.skipSpace()
	if strings.HasPrefix(p.src[p.pos:], token) {
		p.pos += len(token)
		return true
	}
	return false
}

func (p *typeParser) expect(token string) error {
	if !p.accept(token) {
		if p.pos >= len(p.src) {
			return p.errorf("expected %q, found end of input", token)
		}
		return p.errorf("expected %q, found %q", token, p.src[p.pos:p.pos+1])
	}
	return nil
}

// atTerminator reports whether the next token ends the current type
func (p *typeParser) atTerminator() bool {
	p.skipSpace()
	return p.pos >= len(p.src) || strings.IndexByte(",)|}>]=:", p.src[p.pos]) >= 0
}

// parseTypeExpr is a union, optionally marked optional with a trailing `=`
func (p *typeParser) parseTypeExpr() (TypeExpr, error) {
	e, err := p.parseUnion()
	if err != nil {
		return nil, err
	}
	if p.accept("=") {
		return &OptionalType{Expression: e}, nil
	}
	return e, nil
}

func (p *typeParser) parseUnion() (TypeExpr, error) {
	first, err := p.parsePrefixed()
	if err != nil {
		return nil, err
	}
	elems := []TypeExpr{first}
	for p.accept("|") {
		next, err := p.parsePrefixed()
		if err != nil {
			return nil, err
		}
		elems = append(elems, next)
	}
	if len(elems) == 1 {
		return first, nil
	}
	return &UnionType{Elements: elems}, nil
}

func (p *typeParser) parsePrefixed() (TypeExpr, error) {
	switch {
	case p.accept("..."):
		inner, err := p.parsePrefixed()
		if err != nil {
			return nil, err
		}
		return &RestType{Expression: inner}, nil
	case p.accept("?"):
		if p.atTerminator() {
			return &UnknownLiteral{}, nil
		}
		inner, err := p.parsePrefixed()
		if err != nil {
			return nil, err
		}
		return &NullableType{Expression: inner, Prefix: true}, nil
	case p.accept("!"):
		inner, err := p.parsePrefixed()
		if err != nil {
			return nil, err
		}
		return &NonNullableType{Expression: inner, Prefix: true}, nil
	}
	e, err := p.parsePrimary()
	if err != nil {
		return nil, err
	}
	switch {
	case p.accept("?"):
		return &NullableType{Expression: e}, nil
	case p.accept("!"):
		return &NonNullableType{Expression: e}, nil
	}
	return e, nil
}

func isNameByte(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9' ||
		c == '_' || c == '$' || c == '#' || c == '~' || c >= 0x80
}

// scanName reads a possibly dotted name, stopping before a `.<` application
func (p *typeParser) scanName() string {
	p.skipSpace()
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if c == '.' && !strings.HasPrefix(p.src[p.pos:], ".<") && !strings.HasPrefix(p.src[p.pos:], "...") {
			p.pos++
			continue
		}
		if !isNameByte(c) {
			break
		}
		p.pos++
	}
	return p.src[start:p.pos]
}

func (p *typeParser) scanQuoted() (string, error) {
	quote := p.src[p.pos]
	end := strings.IndexByte(p.src[p.pos+1:], quote)
	if end < 0 {
		return "", p.errorf("unterminated string literal")
	}
	lit := p.src[p.pos : p.pos+end+2]
	p.pos += end + 2
	return lit, nil
}

func (p *typeParser) parsePrimary() (TypeExpr, error) {
	p.skipSpace()
	if p.pos >= len(p.src) {
		return nil, p.errorf("unexpected end of input")
	}
	switch p.src[p.pos] {
	case '*':
		p.pos++
		return &AllLiteral{}, nil
	case '(':
		p.pos++
		inner, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		return inner, p.expect(")")
	case '{':
		p.pos++
		return p.parseRecord()
	case '[':
		p.pos++
		elems, err := p.parseList("]")
		if err != nil {
			return nil, err
		}
		return &ArrayType{Elements: elems}, nil
	case '"', '\'':
		lit, err := p.scanQuoted()
		if err != nil {
			return nil, err
		}
		return &NameExpression{Name: lit}, nil
	}

	name := p.scanName()
	switch name {
	case "":
		return nil, p.errorf("unexpected %q", p.src[p.pos:p.pos+1])
	case "null":
		return &NullLiteral{}, nil
	case "undefined":
		return &UndefinedLiteral{}, nil
	case "void":
		return &VoidLiteral{}, nil
	case "function":
		if p.accept("(") {
			return p.parseFunction()
		}
	}
	var base TypeExpr = &NameExpression{Name: name}
	if p.accept(".<") || p.accept("<") {
		apps, err := p.parseList(">")
		if err != nil {
			return nil, err
		}
		return &TypeApplication{Expression: base, Applications: apps}, nil
	}
	return base, nil
}

// parseList reads comma separated type expressions up to and including closing
func (p *typeParser) parseList(closing string) ([]TypeExpr, error) {
	var elems []TypeExpr
	if p.accept(closing) {
		return elems, nil
	}
	for {
		e, err := p.parseTypeExpr()
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if p.accept(",") {
			continue
		}
		return elems, p.expect(closing)
	}
}

func (p *typeParser) parseRecord() (TypeExpr, error) {
	rec := &RecordType{}
	if p.accept("}") {
		return rec, nil
	}
	for {
		p.skipSpace()
		var key string
		if p.pos < len(p.src) && (p.src[p.pos] == '"' || p.src[p.pos] == '\'') {
			lit, err := p.scanQuoted()
			if err != nil {
				return nil, err
			}
			key = lit[1 : len(lit)-1]
		} else {
			key = p.scanName()
		}
		if key == "" {
			return nil, p.errorf("expected a field name")
		}
		field := &FieldType{Key: key}
		if p.accept(":") {
			value, err := p.parseTypeExpr()
			if err != nil {
				return nil, err
			}
			field.Value = value
		}
		rec.Fields = append(rec.Fields, field)
		if p.accept(",") {
			continue
		}
		return rec, p.expect("}")
	}
}

func (p *typeParser) parseFunction() (TypeExpr, error) {
	fn := &FunctionType{}
	if !p.accept(")") {
		for {
			if err := p.parseFunctionParam(fn); err != nil {
				return nil, err
			}
			if p.accept(",") {
				continue
			}
			if err := p.expect(")"); err != nil {
				return nil, err
			}
			break
		}
	}
	if p.accept(":") {
		result, err := p.parsePrefixed()
		if err != nil {
			return nil, err
		}
		fn.Result = result
	}
	return fn, nil
}

func (p *typeParser) parseFunctionParam(fn *FunctionType) error {
	save := p.pos
	switch word := p.scanName(); {
	case (word == "this" || word == "new") && p.accept(":"):
		t, err := p.parseTypeExpr()
		if err != nil {
			return err
		}
		if word == "this" {
			fn.This = t
		} else {
			fn.New = t
		}
		return nil
	default:
		p.pos = save
	}
	param, err := p.parseTypeExpr()
	if err != nil {
		return err
	}
	fn.Params = append(fn.Params, param)
	return nil
}
