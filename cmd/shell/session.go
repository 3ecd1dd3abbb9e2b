package shell

import (
	"errors"
	"fmt"
	"io"

	"github.com/ValentinKolb/hmap/lib/store"
	"github.com/lni/dragonboat/v4/logger"
)

var log = logger.GetLogger("shell")

// Session is one interactive shell on top of a store
type Session struct {
	store  store.IStore
	in     *lineReader
	out    io.Writer
	errOut io.Writer
	prompt string
}

// NewSession creates a session reading commands from in.
// Command output and success messages go to out, error messages to errOut.
func NewSession(s store.IStore, in io.Reader, out, errOut io.Writer, prompt string) *Session {
	return &Session{
		store:  s,
		in:     newLineReader(in),
		out:    out,
		errOut: errOut,
		prompt: prompt,
	}
}

// Run reads and dispatches commands until the input ends or the user quits.
// Blank lines are ignored.
func (s *Session) Run() error {
	for {
		fmt.Fprint(s.out, s.prompt)

		line, err := s.in.ReadLine()
		if errors.Is(err, io.EOF) {
			fmt.Fprintln(s.out)
			return nil
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}

		args := Tokenize(line)
		if len(args) == 0 {
			continue
		}

		result := s.Dispatch(args)
		switch result {
		case ResultQuit:
			return nil
		case ResultSuccess:
			fmt.Fprintln(s.out, result.Message())
		default:
			fmt.Fprintln(s.errOut, result.Message())
		}
	}
}
