package commander

import "regexp"

// classifier reports the length of the match anchored at the start of s, or -1
// when s does not start with the class.
type classifier func(s string) int

func anchored(expr string) classifier {
	re := regexp.MustCompile(`^(?:` + expr + `)`)
	return func(s string) int {
		loc := re.FindStringIndex(s)
		if loc == nil {
			return -1
		}
		return loc[1]
	}
}

func literal(c byte) classifier {
	return func(s string) int {
		if len(s) > 0 && s[0] == c {
			return 1
		}
		return -1
	}
}

const (
	backtick = "`"
	// blank is every whitespace byte except the newline
	blank = `\t\v\f\r `
)

// a bare newline splits statements, an escaped one continues the line
var whitespace = anchored(`(?:[` + blank + `]|\\\n)+`)

var (
	keyword    = anchored(`(?:\[\[|case|do|done|elif|else|esac|fi|for|function|if|in|select|then|time|until|while)[\n` + blank + `]`)
	separator  = anchored(`;|\n|&&|\|[|&]?`)
	assignment = anchored(`\w+=`)
	curlyVar   = anchored(`\$\{[^}]*(?:$|\})`)
)

var word = anchored(`'[^']*(?:'|$)` + // '...'
	`|\$'(?:\\.|[^'])*(?:'|$)` + // $'...'
	`|(?:\\.|[^;\n` + blank + `'"(){}` + backtick + `])+`)

// quotedChunk is one step inside a double quoted literal: a run of plain
// text, the closing quote, or the opener of a command substitution.
var quotedChunk = anchored(`(?:\\.|\$\{[^}]*\}|\$(?:$|[^(])|[^"$])+|"|\$\(`)

var (
	closeParen    = literal(')')
	closeBrace    = literal('}')
	closeBacktick = literal('`')
)

// group pairs an opener with the classifier that ends its scope.
type group struct {
	open  byte
	close classifier
}

var groups = []group{
	{open: '(', close: closeParen},
	{open: '{', close: closeBrace},
	{open: '`', close: closeBacktick},
}

func groupOf(c byte) (group, bool) {
	for _, g := range groups {
		if g.open == c {
			return g, true
		}
	}
	return group{}, false
}
