package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// CompilePattern compiles a branch glob into an anchored regular expression.
// Supported syntax: * and ? (never crossing "/"), ** (any characters),
// [...] classes (including POSIX [:name:] classes), {a,b} alternation and the extglob groups +(...), *(...),
// ?(...) and @(...).
func CompilePattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, errors.New("empty branch pattern")
	}
	p := &globParser{src: pattern}
	expr, err := p.parse("")
	if err != nil {
		return nil, fmt.Errorf("invalid branch pattern %q: %w", pattern, err)
	}
	re, err := regexp.Compile("^" + expr + "$")
	if err != nil {
		return nil, fmt.Errorf("invalid branch pattern %q: %w", pattern, err)
	}
	return re, nil
}

// MatchBranch returns the first configured branch whose pattern matches the
// given branch name. Invalid patterns never match.
func (c *Config) MatchBranch(name string) (Branch, bool) {
	for _, b := range c.Branches {
		re, err := CompilePattern(b.Name)
		if err != nil {
			continue
		}
		if re.MatchString(name) {
			return b, true
		}
	}
	return Branch{}, false
}

type globParser struct {
	src string
	pos int
}

// parse translates input until one of the stop bytes is reached at the
// current nesting level. With no stop bytes it consumes the whole input.
func (g *globParser) parse(stops string) (string, error) {
	var b strings.Builder
	for g.pos < len(g.src) {
		c := g.src[g.pos]
		if stops != "" && strings.IndexByte(stops, c) >= 0 {
			return b.String(), nil
		}
		switch {
		case strings.IndexByte("+*?@!", c) >= 0 && g.peek(1) == '(':
			if c == '!' {
				return "", fmt.Errorf("negated group at offset %d is not supported", g.pos)
			}
			g.pos += 2
			alts, err := g.alternatives('|', ')')
			if err != nil {
				return "", err
			}
			b.WriteString("(?:" + alts + ")")
			switch c {
			case '+':
				b.WriteByte('+')
			case '*':
				b.WriteByte('*')
			case '?':
				b.WriteByte('?')
			}
		case c == '*' && g.peek(1) == '*':
			b.WriteString(".*")
			g.pos += 2
		case c == '*':
			b.WriteString("[^/]*")
			g.pos++
		case c == '?':
			b.WriteString("[^/]")
			g.pos++
		case c == '[':
			class, err := g.class()
			if err != nil {
				return "", err
			}
			b.WriteString(class)
		case c == '{':
			g.pos++
			alts, err := g.alternatives(',', '}')
			if err != nil {
				return "", err
			}
			b.WriteString("(?:" + alts + ")")
		case c == '\\' && g.pos+1 < len(g.src):
			b.WriteString(regexp.QuoteMeta(string(g.src[g.pos+1])))
			g.pos += 2
		default:
			b.WriteString(regexp.QuoteMeta(string(c)))
			g.pos++
		}
	}
	if stops != "" {
		return "", fmt.Errorf("missing %q", stops[len(stops)-1])
	}
	return b.String(), nil
}

func (g *globParser) alternatives(sep, end byte) (string, error) {
	var alts []string
	for {
		alt, err := g.parse(string([]byte{sep, end}))
		if err != nil {
			return "", err
		}
		alts = append(alts, alt)
		c := g.src[g.pos]
		g.pos++
		if c == end {
			return strings.Join(alts, "|"), nil
		}
	}
}

// class translates a bracket expression. POSIX classes such as [:alpha:]
// pass through unchanged; RE2 supports the same names.
func (g *globParser) class() (string, error) {
	start := g.pos
	i := g.pos + 1
	var b strings.Builder
	b.WriteByte('[')
	if i < len(g.src) && (g.src[i] == '!' || g.src[i] == '^') {
		b.WriteByte('^')
		i++
	}
	if i < len(g.src) && g.src[i] == ']' {
		b.WriteString(`\]`)
		i++
	}
	for i < len(g.src) {
		switch {
		case g.src[i] == ']':
			g.pos = i + 1
			b.WriteByte(']')
			return b.String(), nil
		case strings.HasPrefix(g.src[i:], "[:"):
			end := strings.Index(g.src[i+2:], ":]")
			if end < 0 {
				return "", fmt.Errorf("unterminated character class at offset %d", i)
			}
			b.WriteString(g.src[i : i+2+end+2])
			i += 2 + end + 2
		case g.src[i] == '\\' && i+1 < len(g.src):
			b.WriteString(g.src[i : i+2])
			i += 2
		default:
			b.WriteByte(g.src[i])
			i++
		}
	}
	return "", fmt.Errorf("unterminated character class at offset %d", start)
}

func (g *globParser) peek(n int) byte {
	if g.pos+n < len(g.src) {
		return g.src[g.pos+n]
	}
	return 0
}
