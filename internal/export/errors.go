package export

import (
	"errors"
	"fmt"
)

// Error kinds returned by the exporters. Match them with errors.Is.
var (
	// ErrConfig indicates inconsistent caller arguments (list length mismatches, empty stem).
	ErrConfig = errors.New("config error")

	// ErrIO indicates a file that could not be opened, read or written.
	ErrIO = errors.New("io error")

	// ErrFormat indicates input that does not have the expected shape.
	ErrFormat = errors.New("format error")

	// ErrValue indicates an invalid numeric payload.
	ErrValue = errors.New("value error")
)

// Error describes an export failure with the file and line it refers to.
type Error struct {
	Kind error  // one of ErrConfig, ErrIO, ErrFormat, ErrValue
	Path string // input or output file, if known
	Line int    // 1-based line number, 0 if not applicable
	Msg  string
	Err  error // underlying cause
}

func (e *Error) Error() string {
	loc := ""
	switch {
	case e.Path != "" && e.Line > 0:
		loc = fmt.Sprintf(" (%s:%d)", e.Path, e.Line)
	case e.Path != "":
		loc = fmt.Sprintf(" (%s)", e.Path)
	}
	msg := fmt.Sprintf("%v: %s%s", e.Kind, e.Msg, loc)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Is reports whether target is the kind sentinel of e.
func (e *Error) Is(target error) bool { return target == e.Kind }

func (e *Error) Unwrap() error { return e.Err }

func configErrorf(format string, args ...any) error {
	return &Error{Kind: ErrConfig, Msg: fmt.Sprintf(format, args...)}
}

func ioError(path, msg string, err error) error {
	return &Error{Kind: ErrIO, Path: path, Msg: msg, Err: err}
}

func formatErrorf(path string, line int, format string, args ...any) error {
	return &Error{Kind: ErrFormat, Path: path, Line: line, Msg: fmt.Sprintf(format, args...)}
}

func valueErrorf(path string, line int, format string, args ...any) error {
	return &Error{Kind: ErrValue, Path: path, Line: line, Msg: fmt.Sprintf(format, args...)}
}

// IsConfigError returns true if err is a config error.
func IsConfigError(err error) bool { return errors.Is(err, ErrConfig) }

// IsIOError returns true if err is an io error.
func IsIOError(err error) bool { return errors.Is(err, ErrIO) }

// IsFormatError returns true if err is a format error.
func IsFormatError(err error) bool { return errors.Is(err, ErrFormat) }

// IsValueError returns true if err is a value error.
func IsValueError(err error) bool { return errors.Is(err, ErrValue) }
