// Package storage handles reading and writing conversion inputs and outputs.
package storage

import (
	"errors"
	"fmt"
	"os"
	"unicode/utf8"
)

// FileAccessError reports an input that could not be read or an output that
// could not be written. It aborts the conversion that hit it.
type FileAccessError struct {
	Op   string // "read", "write" or "append"
	Path string
	Err  error
}

func (e *FileAccessError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *FileAccessError) Unwrap() error {
	return e.Err
}

var errInvalidUTF8 = errors.New("not valid UTF-8")

// FileSystem reads and writes whole text files.
type FileSystem interface {
	ReadText(path string) (string, error)
	WriteText(path, text string) error
	AppendText(path, text string) error
}

// OS is the FileSystem backed by the local disk.
type OS struct{}

// ReadText reads path as UTF-8. Invalid byte sequences are an error.
func (OS) ReadText(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &FileAccessError{Op: "read", Path: path, Err: err}
	}
	if !utf8.Valid(data) {
		return "", &FileAccessError{Op: "read", Path: path, Err: errInvalidUTF8}
	}
	return string(data), nil
}

// WriteText creates or truncates path and writes text to it.
func (OS) WriteText(path, text string) error {
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return &FileAccessError{Op: "write", Path: path, Err: err}
	}
	return nil
}

// AppendText adds text to the end of path, creating it if needed. A
// non-empty file that does not end in a newline gets a blank line first.
func (OS) AppendText(path, text string) error {
	sep, err := appendSeparator(path)
	if err != nil {
		return &FileAccessError{Op: "append", Path: path, Err: err}
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return &FileAccessError{Op: "append", Path: path, Err: err}
	}
	defer f.Close()

	if _, err := f.WriteString(sep + text); err != nil {
		return &FileAccessError{Op: "append", Path: path, Err: err}
	}
	return nil
}

// appendSeparator returns what must precede appended text so the new
// entries start after a blank line.
func appendSeparator(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}
	switch {
	case len(data) == 0:
		return "", nil
	case data[len(data)-1] != '\n':
		return "\n\n", nil
	case len(data) < 2 || data[len(data)-2] != '\n':
		return "\n", nil
	}
	return "", nil
}
