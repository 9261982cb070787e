package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/vburojevic/logreport/internal/output"
	"github.com/vburojevic/logreport/internal/parser"
	"github.com/vburojevic/logreport/internal/source"
)

// Exit statuses
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// Error codes emitted with every failure
const (
	CodeInvalidArgument = "INVALID_ARGUMENT"
	CodeSourceRead      = "SOURCE_READ_FAILED"
	CodeParse           = "PARSE_FAILED"
	CodeCanceled        = "CANCELED"
	CodeRender          = "RENDER_FAILED"
	CodeInternal        = "INTERNAL"
)

// classify maps an error to its code and hint
func classify(err error) *CLIError {
	var cliErr *CLIError
	if errors.As(err, &cliErr) {
		return cliErr
	}

	c := &CLIError{Code: CodeInternal, Message: err.Error(), Err: err}

	var argErr *ArgumentError
	var parseErr *parser.ParseError
	var srcErr *source.SourceError
	switch {
	case errors.As(err, &argErr):
		c.Code = CodeInvalidArgument
	case errors.As(err, &parseErr):
		c.Code = CodeParse
	case errors.As(err, &srcErr):
		c.Code = CodeSourceRead
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		c.Code = CodeCanceled
	}
	c.Hint = hintFor(c.Code, err)
	return c
}

// ExitCode returns the process exit status for an error returned by a command
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if classify(err).Code == CodeInvalidArgument {
		return ExitUsage
	}
	return ExitFailure
}

// outputErrorCommon normalizes error emission across commands: a JSON error
// object on stdout for json output, otherwise a line on stderr.
func outputErrorCommon(globals *Globals, jsonOutput bool, err error) error {
	c := classify(err)
	if globals == nil {
		return c
	}
	if jsonOutput {
		if werr := output.NewJSONWriter(globals.Stdout).WriteError(c.Code, c.Message, c.Hint); werr != nil {
			return errors.Join(c, werr)
		}
		return c
	}
	fmt.Fprintf(globals.Stderr, "Error [%s]: %s\n", c.Code, c.Message)
	if c.Hint != "" {
		fmt.Fprintf(globals.Stderr, "Hint: %s\n", c.Hint)
	}
	return c
}
