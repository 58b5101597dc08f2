package protocol

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/pyrat-engine/pyrat/internal/coord"
)

// coordToken matches "(x,y)" tolerating inner whitespace around the comma
// and parentheses, per spec §4.4.
var coordToken = regexp.MustCompile(`^\(\s*(-?\d+)\s*,\s*(-?\d+)\s*\)$`)

func parseCoordToken(tok string) (coord.Coordinate, error) {
	m := coordToken.FindStringSubmatch(tok)
	if m == nil {
		return coord.Coordinate{}, fmt.Errorf("protocol: malformed coordinate token %q", tok)
	}
	x, err := strconv.Atoi(m[1])
	if err != nil {
		return coord.Coordinate{}, err
	}
	y, err := strconv.Atoi(m[2])
	if err != nil {
		return coord.Coordinate{}, err
	}
	return coord.Coordinate{X: x, Y: y}, nil
}

func formatCoordToken(c coord.Coordinate) string {
	return fmt.Sprintf("(%d,%d)", c.X, c.Y)
}

// parseCoordList parses a space-separated list of "(x,y)" tokens. The tokens
// themselves contain no whitespace once emitted by FormatCommand, but the
// parser tolerates inner whitespace per spec, so it first collapses the
// rest-of-line into tokens split at ") (" boundaries.
func parseCoordList(rest string) ([]coord.Coordinate, error) {
	tokens := splitParenTokens(rest)
	out := make([]coord.Coordinate, 0, len(tokens))
	for _, t := range tokens {
		c, err := parseCoordToken(t)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

// edgeToken matches "(x1,y1)-(x2,y2)".
var edgeToken = regexp.MustCompile(`^(\([^)]*\))-(\([^)]*\))$`)

func parseEdgeToken(tok string) (coord.Edge, error) {
	m := edgeToken.FindStringSubmatch(tok)
	if m == nil {
		return coord.Edge{}, fmt.Errorf("protocol: malformed edge token %q", tok)
	}
	a, err := parseCoordToken(m[1])
	if err != nil {
		return coord.Edge{}, err
	}
	b, err := parseCoordToken(m[2])
	if err != nil {
		return coord.Edge{}, err
	}
	return coord.NewEdge(a, b), nil
}

func formatEdgeToken(e coord.Edge) string {
	return formatCoordToken(e.A) + "-" + formatCoordToken(e.B)
}

func parseEdgeList(rest string) ([]coord.Edge, error) {
	tokens := splitEdgeTokens(rest)
	out := make([]coord.Edge, 0, len(tokens))
	for _, t := range tokens {
		e, err := parseEdgeToken(t)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// parseMudList parses whitespace-separated "(x1,y1)-(x2,y2):N" tokens.
func parseMudList(rest string) (map[coord.Edge]int, error) {
	tokens := strings.Fields(rest)
	out := make(map[coord.Edge]int, len(tokens))
	for _, t := range tokens {
		i := strings.LastIndexByte(t, ':')
		if i < 0 {
			return nil, fmt.Errorf("protocol: malformed mud token %q", t)
		}
		e, err := parseEdgeToken(t[:i])
		if err != nil {
			return nil, err
		}
		cost, err := strconv.Atoi(t[i+1:])
		if err != nil {
			return nil, err
		}
		out[e] = cost
	}
	return out, nil
}

// splitParenTokens splits a string of whitespace-separated "(x,y)" groups
// even when internal whitespace is present, by scanning parenthesis depth.
func splitParenTokens(s string) []string {
	var tokens []string
	var cur strings.Builder
	depth := 0
	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, strings.Join(strings.Fields(cur.String()), ""))
			cur.Reset()
		}
	}
	for _, r := range s {
		switch r {
		case '(':
			depth++
			cur.WriteRune(r)
		case ')':
			depth--
			cur.WriteRune(r)
			if depth == 0 {
				flush()
			}
		default:
			if depth > 0 {
				cur.WriteRune(r)
			}
		}
	}
	return tokens
}

// splitEdgeTokens splits "(x1,y1)-(x2,y2)" groups separated by whitespace.
func splitEdgeTokens(s string) []string {
	var tokens []string
	var cur strings.Builder
	depth := 0
	for _, r := range s {
		switch r {
		case '(':
			depth++
			cur.WriteRune(r)
		case ')':
			depth--
			cur.WriteRune(r)
		case ' ', '\t':
			if depth == 0 {
				if cur.Len() > 0 {
					tokens = append(tokens, strings.Join(strings.Fields(cur.String()), ""))
					cur.Reset()
				}
				continue
			}
			cur.WriteRune(r)
		default:
			cur.WriteRune(r)
		}
	}
	if cur.Len() > 0 {
		tokens = append(tokens, strings.Join(strings.Fields(cur.String()), ""))
	}
	return tokens
}
