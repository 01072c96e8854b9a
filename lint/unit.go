// Package lint checks the facts extracted from a source file against its
// documentation comments
package lint

import (
	"bytes"
	"fmt"
	"github.com/cottand/typelint/diag"
	"github.com/cottand/typelint/internal/log"
	"github.com/cottand/typelint/jsdoc"
	"github.com/cottand/typelint/rules"
	"github.com/cottand/typelint/types"
	"github.com/hashicorp/go-set/v3"
	"github.com/pkg/errors"
	"io/fs"
	"slices"
	"strings"
)

var unitLogger = log.DefaultLogger.With("section", "lint.unit")

// Settings configure how a Unit is checked
type Settings struct {
	// Rules are the names of the rules to run, see rules.All. Empty runs all of them
	Rules []string
	Mode  rules.Mode
	// Strict fails the whole unit on an annotation or observed type that cannot be
	// used, instead of reporting a diagnostic and skipping it
	Strict bool
}

func (s Settings) enabledRules() (*set.Set[string], error) {
	if len(s.Rules) == 0 {
		return set.From(rules.All), nil
	}
	known := set.From(rules.All)
	var unknown []string
	for _, r := range s.Rules {
		if !known.Contains(r) {
			unknown = append(unknown, r)
		}
	}
	if len(unknown) > 0 {
		return nil, errors.Errorf("unknown rules %s, expected some of %s",
			strings.Join(unknown, ", "), strings.Join(rules.All, ", "))
	}
	return set.From(s.Rules), nil
}

// Unit is a checked source file
type Unit struct {
	file     string
	typedefs *types.Typedefs
	// functions holds the translated annotation of every documented function
	functions map[string]types.Type
	errors    *diag.Errors

	settings Settings
	enabled  *set.Set[string]
	checker  rules.Checker
}

func (u *Unit) File() string {
	return u.file
}

func (u *Unit) Typedefs() *types.Typedefs {
	return u.typedefs
}

func (u *Unit) Errors() *diag.Errors {
	return u.errors
}

// Function returns the type documented for the function called name
func (u *Unit) Function(name string) (types.Type, bool) {
	t, ok := u.functions[name]
	return t, ok
}

// LoadUnit reads the facts file at name from fsys and checks it
func LoadUnit(fsys fs.FS, name string, settings Settings) (*Unit, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", name)
	}
	facts, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "load %s", name)
	}
	if facts.File == "" {
		facts.File = name
	}
	return Check(facts, settings)
}

// Check translates every annotation in facts and runs the enabled rules.
//
// Top-level comments are translated first, in order, so the typedefs they declare
// are visible to every function. Then functions are translated in order, and last
// their returns and the calls to them are checked.
//
// The only errors are invalid settings or, with Settings.Strict, the first
// annotation or observed type that cannot be used.
// Everything else is a diagnostic in Unit.Errors.
func Check(facts Facts, settings Settings) (*Unit, error) {
	enabled, err := settings.enabledRules()
	if err != nil {
		return nil, err
	}
	u := &Unit{
		file:      facts.File,
		typedefs:  types.NewTypedefs(),
		functions: make(map[string]types.Type),
		errors:    &diag.Errors{},
		settings:  settings,
		enabled:   enabled,
	}
	u.checker = rules.Checker{Mode: settings.Mode, Report: u.errors.Report}

	// translation phase
	for _, c := range facts.Comments {
		if _, err := u.translate(c, fmt.Sprintf("comment at line %d", c.Line)); err != nil {
			return nil, err
		}
	}
	// returns are checked against their own function's annotation, calls against
	// the last function documented under the callee's name
	signatures := make([]types.Type, len(facts.Functions))
	for i, fn := range facts.Functions {
		t, err := u.translate(fn.Annotation, fn.Name)
		if err != nil {
			return nil, err
		}
		if t == nil {
			continue
		}
		if _, documented := u.functions[fn.Name]; documented {
			unitLogger.Warn("function documented more than once, calls are checked against the last one",
				"file", u.file, "function", fn.Name, "line", fn.Line)
		}
		signatures[i] = t
		u.functions[fn.Name] = t
	}

	// rules phase
	for i, fn := range facts.Functions {
		if err := u.checkReturns(fn, signatures[i]); err != nil {
			return nil, err
		}
	}
	for _, call := range facts.Calls {
		if err := u.checkCall(call); err != nil {
			return nil, err
		}
	}
	unitLogger.Debug("checked unit", "file", u.file, "typedefs", u.typedefs.Len(), "errors", u.errors)
	return u, nil
}

func (u *Unit) ruleEnabled(rule string) bool {
	return u.enabled.Contains(rule)
}

// malformed either fails, in strict mode, or reports err and lets the caller skip
func (u *Unit) malformed(line int, subject string, err error) error {
	if u.settings.Strict {
		return errors.Wrapf(err, "%s:%d: %s", u.file, line, subject)
	}
	u.errors.Report(diag.NewMalformedAnnotation{At: diag.At(line), Subject: subject, From: err})
	return nil
}

// translate returns the type of annotation a, or nil when it could not be used
func (u *Unit) translate(a Annotation, subject string) (types.Type, error) {
	c, err := a.parse()
	if err != nil {
		return nil, u.malformed(a.Line, subject, err)
	}

	typedef, isTypedef := c.Find(jsdoc.TitleTypedef)
	var previous types.Type
	if isTypedef {
		previous, _ = u.typedefs.Resolve(typedef.Name)
	}

	t, err := types.Translate(c, u.typedefs)
	if err != nil {
		return nil, u.malformed(a.Line, subject, err)
	}

	if isTypedef && u.ruleEnabled(rules.TypedefRedefinition) {
		current, _ := u.typedefs.Resolve(typedef.Name)
		u.checker.TypedefRedefinition(typedef.Name, previous, current, a.Line)
	}
	return t, nil
}

// observe translates an observed type. An empty string or one that cannot be used
// is Unknown, so no rule fires on it
func (u *Unit) observe(src string, line int, subject string) (types.Type, error) {
	if strings.TrimSpace(src) == "" {
		return types.Unknown, nil
	}
	e, err := jsdoc.ParseType(src)
	if err != nil {
		return types.Unknown, u.malformed(line, subject, err)
	}
	t, err := types.TranslateExpr(e, u.typedefs)
	if err != nil {
		return types.Unknown, u.malformed(line, subject, err)
	}
	return t, nil
}

func (u *Unit) checkReturns(fn FunctionFacts, declared types.Type) error {
	if declared == nil || !u.ruleEnabled(rules.ReturnType) || len(fn.Returns) == 0 {
		return nil
	}
	returns := make([]rules.Return, 0, len(fn.Returns))
	for _, r := range fn.Returns {
		t, err := u.observe(r.Type, r.Line, fmt.Sprintf("return of '%s'", fn.Name))
		if err != nil {
			return err
		}
		returns = append(returns, rules.Return{Line: r.Line, Type: t})
	}
	u.checker.Returns(fn.Name, declared, returns)
	return nil
}

func (u *Unit) checkCall(c CallFacts) error {
	declared, ok := u.functions[c.Callee]
	if !ok {
		unitLogger.Debug("call to undocumented function", "callee", c.Callee, "line", c.Line)
		return nil
	}
	call := rules.Call{Callee: c.Callee, Line: c.Line, Args: make([]types.Type, 0, len(c.Args))}
	for i, arg := range c.Args {
		t, err := u.observe(arg, c.Line, fmt.Sprintf("argument %d of '%s'", i+1, c.Callee))
		if err != nil {
			return err
		}
		call.Args = append(call.Args, t)
	}
	if u.ruleEnabled(rules.CallArgumentType) {
		u.checker.CallArgumentTypes(declared, call)
	}
	if u.ruleEnabled(rules.CallArgumentCount) {
		u.checker.CallArgumentCount(declared, call)
	}
	return nil
}

// DocumentedFunctions returns the names of the functions with an annotation, sorted
func (u *Unit) DocumentedFunctions() []string {
	names := make([]string, 0, len(u.functions))
	for name := range u.functions {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
