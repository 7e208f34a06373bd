// Package console provides the line-based player terminal over an
// io.Reader/io.Writer pair, with optional lipgloss styling.
package console

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrClosed is returned by reads once the input is exhausted.
var ErrClosed = io.EOF

// Terminal reads player input a line at a time and writes game output.
// Write failures are sticky: the first one is kept and reported by Err, and
// later writes are skipped.
type Terminal struct {
	reader *bufio.Reader
	out    io.Writer
	styles Styles

	mu  sync.Mutex
	err error
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithStyles sets the styles used to decorate banners.
func WithStyles(s Styles) Option {
	return func(t *Terminal) { t.styles = s }
}

// New creates a Terminal reading from in and writing to out.
//
// Precondition: in and out must be non-nil.
// Postcondition: Returns a Terminal with plain styles unless overridden.
func New(in io.Reader, out io.Writer, opts ...Option) *Terminal {
	t := &Terminal{
		reader: bufio.NewReaderSize(in, 4096),
		out:    out,
		styles: PlainStyles(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Styles returns the terminal's styles.
func (t *Terminal) Styles() Styles { return t.styles }

// Say writes each line followed by a newline. Say with no lines writes an
// empty line.
func (t *Terminal) Say(lines ...string) {
	if len(lines) == 0 {
		t.write("\n")
		return
	}
	var b strings.Builder
	for _, l := range lines {
		b.WriteString(l)
		b.WriteByte('\n')
	}
	t.write(b.String())
}

// Print writes text as is, without a trailing newline.
func (t *Terminal) Print(text string) {
	t.write(text)
}

// Ask writes a blank line, the question on its own line and then the prompt,
// and reads the answer.
//
// Postcondition: Returns the answer without its line ending, or ErrClosed
// once input is exhausted.
func (t *Terminal) Ask(question, prompt string) (string, error) {
	t.write("\n" + question + "\n" + prompt)
	return t.ReadLine()
}

// ReadLine reads a single line of input. Control characters other than tab
// are dropped; \n, \r and \r\n all end a line. A final line without a line
// ending is returned normally and the following read reports ErrClosed.
//
// Postcondition: Returns the next line of text input, or an error.
func (t *Terminal) ReadLine() (string, error) {
	var line bytes.Buffer
	for {
		b, err := t.reader.ReadByte()
		if err != nil {
			if errors.Is(err, io.EOF) && line.Len() > 0 {
				return line.String(), nil
			}
			if errors.Is(err, io.EOF) {
				return "", ErrClosed
			}
			return line.String(), fmt.Errorf("reading input: %w", err)
		}

		if b == '\n' {
			break
		}
		if b == '\r' {
			next, err := t.reader.Peek(1)
			if err == nil && len(next) > 0 && next[0] == '\n' {
				_, _ = t.reader.ReadByte()
			}
			break
		}

		if b < 32 && b != '\t' {
			continue
		}

		line.WriteByte(b)
	}

	return line.String(), nil
}

// Err returns the first write error, if any.
func (t *Terminal) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

func (t *Terminal) write(s string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.err != nil {
		return
	}
	if _, err := io.WriteString(t.out, s); err != nil {
		t.err = fmt.Errorf("writing output: %w", err)
	}
}
