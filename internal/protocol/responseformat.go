package protocol

import (
	"fmt"
	"strings"
)

// FormatResponse renders a Response back to its wire line. info key order is
// preserved exactly as stored on InfoFields; a string payload, if present,
// is always emitted last (spec §4.4 formatting rules).
func FormatResponse(r Response) (string, error) {
	switch r.Kind {
	case RespIDName:
		return "id name " + r.Name, nil
	case RespIDAuthor:
		return "id author " + r.Name, nil
	case RespOption:
		return formatOption(r.Option), nil
	case RespPyratReady:
		return "pyratready", nil
	case RespReadyOK:
		return "readyok", nil
	case RespPreprocessingDone:
		return "preprocessingdone", nil
	case RespMove:
		return "move " + r.Move.String(), nil
	case RespPostprocessingDone:
		return "postprocessingdone", nil
	case RespReady:
		return "ready", nil
	case RespInfo:
		return formatInfo(r), nil
	default:
		return "", fmt.Errorf("protocol: cannot format unknown response")
	}
}

func formatOption(o OptionSpec) string {
	var b strings.Builder
	fmt.Fprintf(&b, "option name %s type %s", o.Name, o.Type)
	if o.Default != "" {
		fmt.Fprintf(&b, " default %s", o.Default)
	}
	if o.Min != "" {
		fmt.Fprintf(&b, " min %s", o.Min)
	}
	if o.Max != "" {
		fmt.Fprintf(&b, " max %s", o.Max)
	}
	for _, v := range o.Vars {
		fmt.Fprintf(&b, " var %s", v)
	}
	return b.String()
}

func formatInfo(r Response) string {
	var b strings.Builder
	b.WriteString("info")
	for _, f := range r.InfoFields {
		fmt.Fprintf(&b, " %s %s", f.Key, f.Value)
	}
	if r.HasString {
		fmt.Fprintf(&b, " string %s", r.InfoString)
	}
	return b.String()
}
