package jsdoc

import (
	"fmt"
	"strings"
)

// titleSynonyms maps alternative tag spellings onto the titles the rest of typelint knows
var titleSynonyms = map[string]string{
	"arg":      TitleParam,
	"argument": TitleParam,
}

// namedTitles are the tags followed by a name after their type
var namedTitles = map[string]bool{
	TitleParam:    true,
	TitleProperty: true,
	TitleProp:     true,
	TitleTypedef:  true,
}

// ParseComment splits a block comment such as
//
//	/**
//	 * Adds things.
//	 * @param {number} a
//	 * @param {number} [b=1]
//	 * @returns {number}
//	 */
//
// into a Comment. It only understands the `@title {type} name description` shape;
// inline tags and markdown in descriptions are left as text.
func ParseComment(src string) (Comment, error) {
	body := strings.TrimSpace(src)
	body = strings.TrimPrefix(body, "/**")
	body = strings.TrimSuffix(body, "*/")

	lines := strings.Split(body, "\n")
	for i, line := range lines {
		line = strings.TrimSpace(line)
		line = strings.TrimLeft(line, "*")
		lines[i] = strings.TrimPrefix(line, " ")
	}

	var c Comment
	var description []string
	var current []string
	flush := func() error {
		if current == nil {
			return nil
		}
		tag, err := parseTag(strings.Join(current, "\n"))
		if err != nil {
			return err
		}
		c.Tags = append(c.Tags, tag)
		current = nil
		return nil
	}
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "@") {
			if err := flush(); err != nil {
				return Comment{}, err
			}
			current = []string{strings.TrimSpace(line)}
			continue
		}
		if current != nil {
			current = append(current, line)
		} else {
			description = append(description, line)
		}
	}
	if err := flush(); err != nil {
		return Comment{}, err
	}
	c.Description = strings.TrimSpace(strings.Join(description, "\n"))
	return c, nil
}

// parseTag reads a single tag, text starting with '@'
func parseTag(text string) (Tag, error) {
	text = strings.TrimPrefix(text, "@")
	title, rest := splitWord(text)
	if synonym, ok := titleSynonyms[title]; ok {
		title = synonym
	}
	tag := Tag{Title: title}

	rest = strings.TrimSpace(rest)
	if strings.HasPrefix(rest, "{") {
		end := matchingBrace(rest)
		if end < 0 {
			return Tag{}, fmt.Errorf("tag @%s: unbalanced braces in %q", title, rest)
		}
		typ, err := ParseType(rest[1:end])
		if err != nil {
			return Tag{}, fmt.Errorf("tag @%s: %w", title, err)
		}
		tag.Type = typ
		rest = strings.TrimSpace(rest[end+1:])
	}

	if namedTitles[title] {
		var name string
		if strings.HasPrefix(rest, "[") {
			end := strings.IndexByte(rest, ']')
			if end < 0 {
				return Tag{}, fmt.Errorf("tag @%s: unterminated optional name in %q", title, rest)
			}
			name, _, _ = strings.Cut(rest[1:end], "=")
			rest = rest[end+1:]
			if _, already := tag.Type.(*OptionalType); !already && tag.Type != nil {
				tag.Type = &OptionalType{Expression: tag.Type}
			}
		} else {
			name, rest = splitWord(rest)
		}
		tag.Name = strings.TrimSpace(name)
	}
	tag.Description = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(rest), "- "))
	return tag, nil
}

// splitWord returns the first whitespace-delimited word of s and what follows it
func splitWord(s string) (word, rest string) {
	s = strings.TrimLeft(s, " \t\n")
	i := strings.IndexAny(s, " \t\n")
	if i < 0 {
		return s, ""
	}
	return s[:i], s[i:]
}

// matchingBrace returns the index of the '}' closing the '{' at s[0], or -1
func matchingBrace(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
