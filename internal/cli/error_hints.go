package cli

import (
	"errors"
	"io/fs"

	"github.com/vburojevic/logreport/internal/source"
)

func hintFor(code string, err error) string {
	switch code {
	case CodeInvalidArgument:
		return hintForArgument(err)
	case CodeParse:
		return "Drop --strict (or set strict: false) to skip malformed lines and count them instead"
	case CodeSourceRead:
		return hintForSource(err)
	}
	return ""
}

func hintForArgument(err error) string {
	var argErr *ArgumentError
	if !errors.As(err, &argErr) {
		return ""
	}
	switch argErr.Name {
	case "from", "to":
		return "Use an RFC 3339 timestamp such as 2024-01-24T00:00:00+01:00, or - for no bound"
	case "format":
		return "Supported formats: markdown, adoc, text, json"
	case "match":
		return "--match takes a Go regular expression, e.g. '^GET'"
	}
	return "Run `logreport --help` for usage"
}

func hintForSource(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, source.ErrNoMatches) {
		return "Patterns are relative to the working directory; quote globs such as 'logs/**/*.log' so the shell does not expand them"
	}
	if errors.Is(err, fs.ErrPermission) {
		return "Check read permissions on the log files"
	}
	var srcErr *source.SourceError
	if errors.As(err, &srcErr) && source.IsURL(srcErr.Source) {
		return "Check the URL is reachable; raise --timeout for slow servers"
	}
	return ""
}
