package log

import (
	"fmt"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// emit appends alternating key/value fields to ev and sends it. An Attr
// occupies a single slot. A trailing key without a value is ignored.
func emit(ev *zerolog.Event, msg string, fields []any) {
	if ev == nil {
		return
	}
	for i := 0; i < len(fields); {
		if a, ok := fields[i].(Attr); ok {
			ev = appendField(ev, a.Key, a.Value)
			i++
			continue
		}
		if i+1 >= len(fields) {
			break
		}
		ev = appendField(ev, fmt.Sprint(fields[i]), fields[i+1])
		i += 2
	}
	ev.Msg(msg)
}

func appendField(ev *zerolog.Event, key string, value any) *zerolog.Event {
	switch v := value.(type) {
	case zerolog.LogObjectMarshaler:
		return ev.Object(key, v)
	case error:
		return ev.AnErr(key, v)
	case string:
		return ev.Str(key, v)
	case []string:
		return ev.Strs(key, v)
	case int:
		return ev.Int(key, v)
	case int64:
		return ev.Int64(key, v)
	case float64:
		return ev.Float64(key, v)
	case bool:
		return ev.Bool(key, v)
	default:
		return ev.Interface(key, v)
	}
}

// withError attaches err, its structured detail when the error type knows how
// to marshal itself, and the cockroachdb stack trace.
func withError(ev *zerolog.Event, err error) *zerolog.Event {
	ev = ev.AnErr(ErrAttrKey, err)
	var m zerolog.LogObjectMarshaler
	if errors.As(err, &m) {
		ev = ev.Object("error_detail", m)
	}
	if stack := extractStacktrace(err); stack != "" {
		ev = ev.Str(StacktraceAttrKey, stack)
	}
	return ev
}

func extractStacktrace(err error) string {
	safeDetails := errors.GetSafeDetails(err).SafeDetails
	if len(safeDetails) > 0 {
		return safeDetails[0]
	}
	return ""
}
