package factparser

import (
	"github.com/matzehuels/relviz/pkg/attr"
	"github.com/matzehuels/relviz/pkg/errors"
)

// Parse tokenizes and parses one source.
//
// Type declarations are recognised by their leading keyword and returned
// as TypeFacts. All other headers become RawFacts, classified later once
// every type is known. Returns an *errors.Error with code LEXICAL_ERROR
// or SYNTAX_ERROR on failure.
func Parse(name string, src []byte) (*File, error) {
	lines, err := NewLexer(name, src).Lines()
	if err != nil {
		return nil, err
	}

	p := &parser{file: &File{Source: name}}
	for _, line := range lines {
		if err := p.parseLine(line); err != nil {
			return nil, err
		}
	}

	for _, tf := range p.file.Types {
		if label, ok := tf.Attrs.Get(attr.LabelKey); ok {
			tf.Label = &label
			tf.Attrs.Delete(attr.LabelKey)
		}
	}
	return p.file, nil
}

type parser struct {
	file  *File
	attrs *attr.Block // block of the most recent fact header
}

func (p *parser) errorf(line int, format string, args ...any) *errors.Error {
	return errors.New(errors.ErrCodeSyntax, format, args...).
		At(errors.Pos{Source: p.file.Source, Line: line})
}

func (p *parser) pos(line int) errors.Pos {
	return errors.Pos{Source: p.file.Source, Line: line}
}

func (p *parser) parseLine(line Line) error {
	if line.Kind == LineAttr {
		return p.parseAttr(line)
	}

	segs, err := p.segments(line)
	if err != nil {
		return err
	}
	if first := segs[0]; len(first.Names) == 1 && IsTypeKeyword(first.Names[0]) {
		return p.parseType(line, first.Names[0], segs[1:])
	}

	raw := &RawFact{Segments: segs, Pos: p.pos(line.Num)}
	p.file.Raw = append(p.file.Raw, raw)
	p.attrs = &raw.Attrs
	return nil
}

// segments groups the header tokens into name lists and labels.
func (p *parser) segments(line Line) ([]Segment, error) {
	var segs []Segment
	afterComma := false

	for _, tok := range line.Tokens {
		switch tok.Kind {
		case TokenName:
			if tok.Text == "" {
				return nil, p.errorf(tok.Line, "empty name")
			}
			if afterComma {
				last := &segs[len(segs)-1]
				last.Names = append(last.Names, tok.Text)
				afterComma = false
				continue
			}
			segs = append(segs, Segment{Names: []string{tok.Text}})

		case TokenComma:
			if afterComma || len(segs) == 0 || segs[len(segs)-1].IsLabel() {
				return nil, p.errorf(tok.Line, "empty name in list")
			}
			afterComma = true

		case TokenLabel:
			switch {
			case afterComma:
				return nil, p.errorf(tok.Line, "empty name in list")
			case len(segs) == 0:
				return nil, p.errorf(tok.Line, "fact cannot start with a label")
			case segs[len(segs)-1].IsLabel():
				return nil, p.errorf(tok.Line, "two labels in a row")
			}
			text := tok.Text
			segs = append(segs, Segment{Label: &text})

		default:
			return nil, p.errorf(tok.Line, "unexpected %s in fact header", tok.Kind)
		}
	}

	if afterComma {
		return nil, p.errorf(line.Num, "name list ends with ','")
	}
	return segs, nil
}

// parseType handles "<keyword> NAME[, NAME…] [is-a PARENT[, PARENT…]]".
func (p *parser) parseType(line Line, keyword string, rest []Segment) error {
	for _, s := range rest {
		if s.IsLabel() {
			return p.errorf(line.Num, "%s declaration cannot have a label", keyword)
		}
	}

	tf := &TypeFact{Keyword: keyword, Pos: p.pos(line.Num)}
	switch {
	case len(rest) == 1:
		tf.Names = rest[0].Names
	case len(rest) == 3 && len(rest[1].Names) == 1 && connectives[rest[1].Names[0]]:
		tf.Names = rest[0].Names
		tf.Parents = rest[2].Names
	case len(rest) == 0:
		return p.errorf(line.Num, "%s declaration needs a name", keyword)
	default:
		return p.errorf(line.Num, "malformed %s declaration, want %q", keyword,
			keyword+" NAME[, NAME...] [is-a PARENT[, PARENT...]]")
	}

	p.file.Types = append(p.file.Types, tf)
	p.attrs = &tf.Attrs
	return nil
}

// parseAttr handles "<key>: <value>" under the current fact.
func (p *parser) parseAttr(line Line) error {
	if p.attrs == nil {
		return p.errorf(line.Num, "attribute line outside of a fact")
	}

	toks := line.Tokens
	switch {
	case toks[0].Kind != TokenName:
		return p.errorf(line.Num, "attribute line must start with a name, found %s", toks[0].Kind)
	case toks[0].Text == "":
		return p.errorf(line.Num, "empty attribute name")
	case len(toks) < 2 || toks[1].Kind != TokenColon:
		return p.errorf(line.Num, "expected ':' after attribute name %q", toks[0].Text)
	case len(toks) < 3:
		return p.errorf(line.Num, "attribute %q has no value", toks[0].Text)
	case toks[2].Kind != TokenName:
		return p.errorf(line.Num, "unexpected %s in value of attribute %q", toks[2].Kind, toks[0].Text)
	case len(toks) > 3:
		return p.errorf(line.Num, "unexpected %s after value of attribute %q", toks[3].Kind, toks[0].Text)
	}

	p.attrs.Set(toks[0].Text, toks[2].Text)
	return nil
}
