package lint

import (
	"encoding/json"
	"github.com/cottand/typelint/jsdoc"
	"github.com/pkg/errors"
	"io"
)

// Facts is what a front end extracted from one source file: its documentation
// comments, the functions they document, and the call sites and return statements
// with the types it observed there.
//
// Observed types are written in type-expression syntax, see jsdoc.ParseType
type Facts struct {
	File string `json:"file"`
	// Comments are top-level annotations, typically typedefs, in source order
	Comments  []Annotation    `json:"comments"`
	Functions []FunctionFacts `json:"functions"`
	Calls     []CallFacts     `json:"calls"`
}

// Annotation is a documentation comment either as raw text (Doc) or already parsed
// (Comment). Comment wins when both are present
type Annotation struct {
	Line    int            `json:"line"`
	Doc     string         `json:"doc,omitempty"`
	Comment *jsdoc.Comment `json:"comment,omitempty"`
}

func (a Annotation) parse() (jsdoc.Comment, error) {
	if a.Comment != nil {
		return *a.Comment, nil
	}
	if a.Doc == "" {
		return jsdoc.Comment{}, nil
	}
	return jsdoc.ParseComment(a.Doc)
}

type FunctionFacts struct {
	Name string `json:"name"`
	Annotation
	Returns []ReturnFacts `json:"returns"`
}

type ReturnFacts struct {
	Line int    `json:"line"`
	Type string `json:"type"`
}

type CallFacts struct {
	Callee string   `json:"callee"`
	Line   int      `json:"line"`
	Args   []string `json:"args"`
}

// Decode reads Facts from JSON
func Decode(r io.Reader) (Facts, error) {
	var facts Facts
	if err := json.NewDecoder(r).Decode(&facts); err != nil {
		return Facts{}, errors.Wrap(err, "decode facts")
	}
	return facts, nil
}
