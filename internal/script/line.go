package script

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

var errUnterminatedQuote = errors.New("unterminated quote")

// ParseLine parses one REPL line:
//
//	pass <name> [args...]
//	receive <name> [label]
//	history <name>
//	clear
//
// Unquoted args are decoded as YAML scalars, so 42 is an int and true a
// bool; quoted args are always strings. ok is false for blank lines and
// lines starting with '#'.
func ParseLine(line string) (step Step, ok bool, err error) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return Step{}, false, nil
	}

	toks, err := tokenize(line)
	if err != nil {
		return Step{}, false, err
	}

	step.Op = Op(strings.ToLower(toks[0].text))
	rest := toks[1:]

	switch step.Op {
	case OpClear:
		if len(rest) != 0 {
			return Step{}, false, errors.New("usage: clear")
		}
	case OpHistory:
		if len(rest) != 1 {
			return Step{}, false, errors.New("usage: history <name>")
		}
		step.Name = rest[0].text
	case OpReceive:
		if len(rest) < 1 || len(rest) > 2 {
			return Step{}, false, errors.New("usage: receive <name> [label]")
		}
		step.Name = rest[0].text
		if len(rest) == 2 {
			step.Label = rest[1].text
		}
	case OpPass:
		if len(rest) < 1 {
			return Step{}, false, errors.New("usage: pass <name> [args...]")
		}
		step.Name = rest[0].text
		for _, tok := range rest[1:] {
			step.Args = append(step.Args, tok.value())
		}
	default:
		return Step{}, false, fmt.Errorf("unknown command %q", toks[0].text)
	}

	return step, true, nil
}

type token struct {
	text   string
	quoted bool
}

// value decodes an unquoted token as a YAML scalar. Anything that is not
// a plain scalar (flow collections, comments, parse errors) stays text.
func (t token) value() any {
	if t.quoted || strings.HasPrefix(t.text, "#") {
		return t.text
	}
	var v any
	if err := yaml.Unmarshal([]byte(t.text), &v); err != nil {
		return t.text
	}
	switch v.(type) {
	case nil, bool, int, float64, string:
		return v
	default:
		return t.text
	}
}

// tokenize splits on whitespace; single or double quotes group words.
func tokenize(line string) ([]token, error) {
	var (
		toks   []token
		cur    strings.Builder
		inTok  bool
		quoted bool
		quote  rune
	)

	flush := func() {
		if inTok {
			toks = append(toks, token{text: cur.String(), quoted: quoted})
		}
		cur.Reset()
		inTok, quoted = false, false
	}

	for _, r := range line {
		switch {
		case quote != 0:
			if r == quote {
				quote = 0
				continue
			}
			cur.WriteRune(r)
		case r == '"' || r == '\'':
			quote = r
			inTok, quoted = true, true
		case r == ' ' || r == '\t':
			flush()
		default:
			inTok = true
			cur.WriteRune(r)
		}
	}
	if quote != 0 {
		return nil, errUnterminatedQuote
	}
	flush()
	return toks, nil
}
