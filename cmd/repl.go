package cmd

import (
	"fmt"
	"github.com/chzyer/readline"
	"github.com/cottand/typelint/jsdoc"
	"github.com/cottand/typelint/rules"
	"github.com/cottand/typelint/types"
	"github.com/cottand/typelint/util"
	"github.com/spf13/cobra"
	"io"
	"strings"
)

var ReplCmd = &cobra.Command{
	Use:   "repl",
	Short: "Translate and compare type expressions interactively",
	Long: `Each line is one of:
  <type>                    print the translated type
  typedef <Name> <type>     register a record typedef
  <declared> <- <observed>  check an observed type against a declared one
  .typedefs                 list the registered typedefs`,
	RunE:         runRepl,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
}

func runRepl(cmd *cobra.Command, _ []string) error {
	rl, err := readline.New("> ")
	if err != nil {
		return err
	}
	defer rl.Close()

	s := &replSession{defs: types.NewTypedefs()}
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		out, err := s.eval(line)
		if err != nil {
			_, _ = fmt.Fprintln(rl.Stderr(), err)
			continue
		}
		if out != "" {
			_, _ = fmt.Fprintln(rl.Stdout(), out)
		}
	}
}

type replSession struct {
	defs *types.Typedefs
	mode rules.Mode
}

func (s *replSession) eval(line string) (string, error) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return "", nil
	case line == ".typedefs":
		var sb strings.Builder
		for i, name := range s.defs.Names() {
			t, _ := s.defs.Resolve(name)
			if i > 0 {
				sb.WriteString("\n")
			}
			sb.WriteString(name + " = " + t.String())
		}
		return sb.String(), nil
	case line == ".exact":
		s.mode = rules.Exact
		return "mode " + s.mode.String(), nil
	case line == ".structural":
		s.mode = rules.Structural
		return "mode " + s.mode.String(), nil
	case strings.HasPrefix(line, "typedef "):
		return s.typedef(strings.TrimPrefix(line, "typedef "))
	case strings.Contains(line, "<-"):
		declaredSrc, observedSrc, _ := strings.Cut(line, "<-")
		declared, err := s.translate(declaredSrc)
		if err != nil {
			return "", fmt.Errorf("declared: %w", err)
		}
		observed, err := s.translate(observedSrc)
		if err != nil {
			return "", fmt.Errorf("observed: %w", err)
		}
		if s.mode.Compatible(declared, observed) {
			return "ok", nil
		}
		msg := fmt.Sprintf("'%v' does not accept '%v'", declared, observed)
		if missing := rules.MissingProperties(declared, observed); len(missing) > 0 {
			msg += fmt.Sprintf(" (missing %s)", strings.Join(missing, ", "))
		}
		return msg, nil
	default:
		t, err := s.translate(line)
		if err != nil {
			return "", err
		}
		return t.String(), nil
	}
}

func (s *replSession) translate(src string) (types.Type, error) {
	e, err := jsdoc.ParseType(strings.TrimSpace(src))
	if err != nil {
		return nil, err
	}
	return types.TranslateExpr(e, s.defs)
}

// typedef registers `Name <type>` the way a `@typedef {<type>} Name` annotation would
func (s *replSession) typedef(def string) (string, error) {
	name, src := util.StringTakeUntil(strings.TrimSpace(def), ' ')
	if name == "" {
		return "", fmt.Errorf("expected typedef <Name> <type>")
	}
	tag := jsdoc.Tag{Title: jsdoc.TitleTypedef, Name: name}
	if strings.TrimSpace(src) != "" {
		e, err := jsdoc.ParseType(strings.TrimSpace(src))
		if err != nil {
			return "", err
		}
		tag.Type = e
	}
	previous, _ := s.defs.Resolve(name)
	if _, err := types.Translate(jsdoc.Comment{Tags: []jsdoc.Tag{tag}}, s.defs); err != nil {
		return "", err
	}
	t, ok := s.defs.Resolve(name)
	if !ok || t == previous {
		return "", fmt.Errorf("typedef %s is not a record, not registered", name)
	}
	return name + " = " + t.String(), nil
}
