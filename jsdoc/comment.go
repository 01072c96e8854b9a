// Package jsdoc holds the parsed form of documentation comments: a Comment is an
// ordered list of Tag, and each Tag may carry a declared TypeExpr.
//
// Comments normally come from an external annotation parser as JSON (see Decode),
// but ParseComment and ParseType can read the common textual forms directly.
package jsdoc

import (
	"slices"
)

const (
	TitleType     = "type"
	TitleTypedef  = "typedef"
	TitleReturn   = "return"
	TitleReturns  = "returns"
	TitleParam    = "param"
	TitleProperty = "property"
	TitleProp     = "prop"
)

// Comment is a single documentation comment already split into tags
type Comment struct {
	Description string `json:"description"`
	Tags        []Tag  `json:"tags"`
}

// Tag is a single `@title {type} name description` directive.
// Name and Type are optional depending on Title
type Tag struct {
	Title       string
	Name        string
	Description string
	// Type may be nil
	Type TypeExpr
}

// Find returns the first tag whose title is one of titles
func (c Comment) Find(titles ...string) (Tag, bool) {
	i := slices.IndexFunc(c.Tags, func(tag Tag) bool {
		return slices.Contains(titles, tag.Title)
	})
	if i < 0 {
		return Tag{}, false
	}
	return c.Tags[i], true
}

// Has reports whether any tag has one of titles
func (c Comment) Has(titles ...string) bool {
	_, ok := c.Find(titles...)
	return ok
}
