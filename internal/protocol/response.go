package protocol

import (
	"strconv"
	"strings"

	"github.com/pyrat-engine/pyrat/internal/coord"
)

// ResponseKind identifies which AI->engine response a Response carries.
type ResponseKind int

const (
	RespUnknown ResponseKind = iota
	RespIDName
	RespIDAuthor
	RespOption
	RespPyratReady
	RespReadyOK
	RespPreprocessingDone
	RespMove
	RespPostprocessingDone
	RespReady
	RespInfo
)

// OptionSpec describes one declared "option" response.
type OptionSpec struct {
	Name, Type, Default, Min, Max string
	Vars                          []string
}

// InfoField is one key/value pair of an "info" response, in emission order.
type InfoField struct {
	Key, Value string
}

// Response is a parsed AI->engine line.
type Response struct {
	Kind ResponseKind

	// id name / id author
	Name string

	Option OptionSpec

	// move
	Move coord.Direction

	// info
	InfoFields []InfoField
	InfoString string
	HasString  bool
}

// ParseResponse parses a single AI->engine line. As with ParseCommand,
// malformed or unrecognized lines yield RespUnknown with a nil error.
func ParseResponse(line string) (Response, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return Response{Kind: RespUnknown}, nil
	}
	keyword := strings.ToLower(fields[0])
	args := fields[1:]

	switch keyword {
	case "id":
		return parseID(args)
	case "option":
		return parseOption(args)
	case "pyratready":
		return Response{Kind: RespPyratReady}, nil
	case "readyok":
		return Response{Kind: RespReadyOK}, nil
	case "preprocessingdone":
		return Response{Kind: RespPreprocessingDone}, nil
	case "move":
		return parseMove(args)
	case "postprocessingdone":
		return Response{Kind: RespPostprocessingDone}, nil
	case "ready":
		return Response{Kind: RespReady}, nil
	case "info":
		return parseInfo(args)
	default:
		return Response{Kind: RespUnknown}, nil
	}
}

func parseID(args []string) (Response, error) {
	if len(args) < 2 {
		return Response{Kind: RespUnknown}, nil
	}
	name := strings.Join(args[1:], " ")
	switch strings.ToLower(args[0]) {
	case "name":
		return Response{Kind: RespIDName, Name: name}, nil
	case "author":
		return Response{Kind: RespIDAuthor, Name: name}, nil
	default:
		return Response{Kind: RespUnknown}, nil
	}
}

// parseOption parses "name <n> type <t> [default ...] [min ...] [max ...] [var ...]*"
func parseOption(args []string) (Response, error) {
	spec := OptionSpec{}
	i := 0
	next := func() (string, bool) {
		if i >= len(args) {
			return "", false
		}
		v := args[i]
		i++
		return v, true
	}
	for i < len(args) {
		key, ok := next()
		if !ok {
			break
		}
		switch strings.ToLower(key) {
		case "name":
			v, ok := next()
			if !ok {
				return Response{Kind: RespUnknown}, nil
			}
			spec.Name = v
		case "type":
			v, ok := next()
			if !ok {
				return Response{Kind: RespUnknown}, nil
			}
			spec.Type = v
		case "default":
			v, ok := next()
			if !ok {
				return Response{Kind: RespUnknown}, nil
			}
			spec.Default = v
		case "min":
			v, ok := next()
			if !ok {
				return Response{Kind: RespUnknown}, nil
			}
			spec.Min = v
		case "max":
			v, ok := next()
			if !ok {
				return Response{Kind: RespUnknown}, nil
			}
			spec.Max = v
		case "var":
			v, ok := next()
			if !ok {
				return Response{Kind: RespUnknown}, nil
			}
			spec.Vars = append(spec.Vars, v)
		default:
			return Response{Kind: RespUnknown}, nil
		}
	}
	if spec.Name == "" || spec.Type == "" {
		return Response{Kind: RespUnknown}, nil
	}
	return Response{Kind: RespOption, Option: spec}, nil
}

func parseMove(args []string) (Response, error) {
	if len(args) != 1 {
		return Response{Kind: RespUnknown}, nil
	}
	// move accepts either the direction token or an integer tag.
	if n, err := strconv.Atoi(args[0]); err == nil {
		if n < int(coord.Up) || n > int(coord.Stay) {
			return Response{Kind: RespUnknown}, nil
		}
		return Response{Kind: RespMove, Move: coord.Direction(n)}, nil
	}
	d, ok := coord.ParseDirection(strings.ToUpper(args[0]))
	if !ok {
		return Response{Kind: RespUnknown}, nil
	}
	return Response{Kind: RespMove, Move: d}, nil
}

// parseInfo parses "info <k v ...> [string ...]"; a literal "string" keyword
// switches the remainder into a single free-text payload.
func parseInfo(args []string) (Response, error) {
	resp := Response{Kind: RespInfo}
	for i := 0; i < len(args); i++ {
		if strings.EqualFold(args[i], "string") {
			resp.InfoString = strings.Join(args[i+1:], " ")
			resp.HasString = true
			break
		}
		if i+1 >= len(args) {
			return Response{Kind: RespUnknown}, nil
		}
		resp.InfoFields = append(resp.InfoFields, InfoField{Key: args[i], Value: args[i+1]})
		i++
	}
	return resp, nil
}
