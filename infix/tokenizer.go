package infix

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/jvitoroc/numgame/eval"
)

type tokenRegexps struct {
	name    tokenType
	regexps []*regexp.Regexp
}

var (
	signedNumberRegexp = regexp.MustCompile(`^-\d+(\.\d+)?`)

	leadingRegexps = []*tokenRegexps{
		{
			name:    whitespace,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^\s+`)},
		},
		{
			name:    numberLiteral,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^\d+(\.\d+)?`)},
		},
		{
			name:    leftParenthesis,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^\(`)},
		},
		{
			name:    rightParenthesis,
			regexps: []*regexp.Regexp{regexp.MustCompile(`^\)`)},
		},
	}

	invalidRegexps = &tokenRegexps{
		name:    invalid,
		regexps: []*regexp.Regexp{regexp.MustCompile(`^\S+`)},
	}
)

// operatorRegexp matches any symbol of the table, longest symbols first so
// that "**" wins over "*".
func operatorRegexp(table *eval.Table) *regexp.Regexp {
	symbols := table.Symbols()
	if len(symbols) == 0 {
		return nil
	}

	sort.SliceStable(symbols, func(i, j int) bool { return len(symbols[i]) > len(symbols[j]) })

	quoted := make([]string, len(symbols))
	for i, s := range symbols {
		quoted[i] = regexp.QuoteMeta(s)
	}

	return regexp.MustCompile(`^(?:` + strings.Join(quoted, "|") + `)`)
}

type tokenizer struct {
	expr     string
	cursor   int
	regexps  []*tokenRegexps
	previous *token
}

func newTokenizer(expr string, table *eval.Table) *tokenizer {
	rs := append([]*tokenRegexps{}, leadingRegexps...)
	if r := operatorRegexp(table); r != nil {
		rs = append(rs, &tokenRegexps{name: operator, regexps: []*regexp.Regexp{r}})
	}
	rs = append(rs, invalidRegexps)

	return &tokenizer{expr: expr, regexps: rs}
}

// getNextToken returns tokenNoop at the end of the input.
func (t *tokenizer) getNextToken() (*token, error) {
	if t.cursor >= len(t.expr) {
		return &tokenNoop, nil
	}

	s := t.expr[t.cursor:]
	column := t.cursor + 1

	var tk *token
	if t.previous.opensOperand() {
		if match := signedNumberRegexp.FindString(s); match != "" {
			tk = &token{_type: numberLiteral, strValue: match, column: column}
		}
	}

	if tk == nil {
		for _, tr := range t.regexps {
			for _, r := range tr.regexps {
				if match := r.FindString(s); match != "" {
					tk = &token{_type: tr.name, strValue: match, column: column}
					break
				}
			}
			if tk != nil {
				break
			}
		}
	}

	if tk == nil {
		return nil, fmt.Errorf("%w: couldn't decipher token at column %d", ErrSyntax, column)
	}

	t.cursor += len(tk.strValue)

	if tk._type == whitespace {
		return t.getNextToken()
	}

	if tk._type == invalid {
		return nil, fmt.Errorf("%w: unknown symbol '%s' at column %d", ErrSyntax, tk.strValue, column)
	}

	if err := tk.convertToGoType(); err != nil {
		return nil, fmt.Errorf("%w: invalid number '%s' at column %d", ErrSyntax, tk.strValue, column)
	}

	t.previous = tk
	return tk, nil
}

func (t *tokenizer) tokens() ([]token, error) {
	tokens := make([]token, 0)
	for {
		tk, err := t.getNextToken()
		if err != nil {
			return nil, err
		}

		if *tk == tokenNoop {
			return tokens, nil
		}

		tokens = append(tokens, *tk)
	}
}
