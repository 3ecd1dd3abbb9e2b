package shell

import (
	"bufio"
	"io"
	"strings"
)

const (
	// MaxArgs is the maximum number of tokens taken from one line, extra tokens are dropped
	MaxArgs = 8
	// MaxLine is the maximum length of a line in bytes (including the newline)
	MaxLine = 128
)

// Tokenize splits a line on spaces and tabs into at most MaxArgs tokens
func Tokenize(line string) []string {
	fields := strings.FieldsFunc(line, func(r rune) bool {
		return r == ' ' || r == '\t'
	})

	if len(fields) > MaxArgs {
		fields = fields[:MaxArgs]
	}
	return fields
}

// lineReader reads input line by line and cuts every line to MaxLine-1 bytes.
// The remainder of an overlong line is discarded.
type lineReader struct {
	r *bufio.Reader
}

func newLineReader(r io.Reader) *lineReader {
	return &lineReader{r: bufio.NewReaderSize(r, MaxLine)}
}

// ReadLine returns the next line without the trailing newline (and carriage return).
// It returns io.EOF once the input is exhausted.
func (l *lineReader) ReadLine() (string, error) {
	var (
		line    []byte
		read    bool
		discard bool
	)

	for {
		chunk, isPrefix, err := l.r.ReadLine()
		if err != nil {
			if read && err == io.EOF {
				break
			}
			return "", err
		}
		read = true

		if !discard {
			line = append(line, chunk...)
			if len(line) >= MaxLine-1 {
				line = line[:MaxLine-1]
				discard = true
			}
		}

		if !isPrefix {
			break
		}
	}

	return strings.TrimSuffix(string(line), "\r"), nil
}
