package types

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode"
)

// ErrEmptyType is returned by Parse for blank input.
var ErrEmptyType = errors.New("empty type")

// Parse reads a type in source syntax:
//
//	java.util.Map<K, ? extends java.util.List<java.lang.String>>
//
// Single identifiers listed in params parse as type-parameter references.
func Parse(s string, params ...string) (Type, error) {
	p := typeParser{src: s, params: params}
	p.skipSpace()
	if p.eof() {
		return Type{}, ErrEmptyType
	}
	t, err := p.parseType()
	if err != nil {
		return Type{}, err
	}
	p.skipSpace()
	if !p.eof() {
		return Type{}, p.errorf("unexpected %q", p.src[p.pos:])
	}
	return t, nil
}

// MustParse is Parse for literals known to be valid; it panics on error.
func MustParse(s string, params ...string) Type {
	t, err := Parse(s, params...)
	if err != nil {
		panic(err)
	}
	return t
}

type typeParser struct {
	src    string
	pos    int
	params []string
}

func (p *typeParser) errorf(format string, args ...any) error {
	return fmt.Errorf("type %q at %d: %s", p.src, p.pos, fmt.Sprintf(format, args...))
}

func (p *typeParser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *typeParser) skipSpace() {
	for !p.eof() && unicode.IsSpace(rune(p.src[p.pos])) {
		p.pos++
	}
}

func (p *typeParser) accept(c byte) bool {
	p.skipSpace()
	if !p.eof() && p.src[p.pos] == c {
		p.pos++
		return true
	}
	return false
}

func (p *typeParser) ident() string {
	p.skipSpace()
	start := p.pos
	for !p.eof() {
		r := rune(p.src[p.pos])
		if r == '_' || r == '$' || unicode.IsLetter(r) || (p.pos > start && unicode.IsDigit(r)) {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}

func (p *typeParser) qualifiedName() (string, error) {
	var parts []string
	for {
		id := p.ident()
		if id == "" {
			return "", p.errorf("expected identifier")
		}
		parts = append(parts, id)
		if !p.accept('.') {
			break
		}
	}
	return strings.Join(parts, "."), nil
}

func (p *typeParser) parseType() (Type, error) {
	if p.accept('?') {
		return p.parseWildcard()
	}
	name, err := p.qualifiedName()
	if err != nil {
		return Type{}, err
	}
	if name == "void" {
		return Void(), nil
	}
	if prim, ok := LookupPrimitive(name); ok {
		return MakePrimitive(prim), nil
	}
	if !p.accept('<') {
		if slices.Contains(p.params, name) {
			return MakeParam(name), nil
		}
		return MakeRaw(name), nil
	}
	var args []Type
	for {
		arg, err := p.parseType()
		if err != nil {
			return Type{}, err
		}
		if arg.Kind == KindPrimitive || arg.Kind == KindVoid {
			return Type{}, p.errorf("primitive %s used as type argument", arg)
		}
		args = append(args, arg)
		if p.accept(',') {
			continue
		}
		if p.accept('>') {
			break
		}
		return Type{}, p.errorf("expected ',' or '>'")
	}
	return Type{Kind: KindNamed, Name: name, Args: args}, nil
}

func (p *typeParser) parseWildcard() (Type, error) {
	save := p.pos
	switch p.ident() {
	case "extends":
		b, err := p.parseType()
		if err != nil {
			return Type{}, err
		}
		return MakeExtends(b), nil
	case "super":
		b, err := p.parseType()
		if err != nil {
			return Type{}, err
		}
		return MakeSuper(b), nil
	default:
		p.pos = save
		return MakeUnbounded(), nil
	}
}
