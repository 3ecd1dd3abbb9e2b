package shell

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/ValentinKolb/hmap/cmd/util"
)

// runSession runs the given input through a session on a fresh table
func runSession(t *testing.T, capacity int, input string) (string, string) {
	t.Helper()

	s, err := util.NewStore(capacity)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	var out, errOut bytes.Buffer
	session := NewSession(s, strings.NewReader(input), &out, &errOut, "")
	if err := session.Run(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	return out.String(), errOut.String()
}

func countLines(s, line string) int {
	n := 0
	for _, l := range strings.Split(s, "\n") {
		if l == line {
			n++
		}
	}
	return n
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		line string
		want []string
	}{
		{"", nil},
		{"   \t ", nil},
		{"-c key value", []string{"-c", "key", "value"}},
		{"\t-r\t  key  ", []string{"-r", "key"}},
		{"a b c d e f g h i j", []string{"a", "b", "c", "d", "e", "f", "g", "h"}},
	}

	for _, tt := range tests {
		got := Tokenize(tt.line)
		if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
			t.Errorf("Tokenize(%q) = %q, want %q", tt.line, got, tt.want)
		}
	}
}

func TestLineReader(t *testing.T) {
	long := strings.Repeat("x", 300)
	r := newLineReader(strings.NewReader("first\r\n" + long + "\nlast"))

	line, err := r.ReadLine()
	if err != nil || line != "first" {
		t.Errorf("expected first line, got %q, %v", line, err)
	}

	line, err = r.ReadLine()
	if err != nil || len(line) != MaxLine-1 {
		t.Errorf("expected long line cut to %d bytes, got %d, %v", MaxLine-1, len(line), err)
	}

	line, err = r.ReadLine()
	if err != nil || line != "last" {
		t.Errorf("expected last line without newline, got %q, %v", line, err)
	}

	if _, err = r.ReadLine(); err != io.EOF {
		t.Errorf("expected EOF, got %v", err)
	}
}

func TestScenario(t *testing.T) {
	input := strings.Join([]string{
		"-c a 1",
		"-c b 2",
		"-c a 99",
		"-r a",
		"-d b",
		"-r b",
		"-u a 7",
		"-r a",
	}, "\n")

	out, errOut := runSession(t, 4, input)

	if !strings.Contains(out, `{Key: "a", Value: "1"}`) {
		t.Errorf("expected first read to show value 1, got:\n%s", out)
	}
	if !strings.Contains(out, `{Key: "a", Value: "7"}`) {
		t.Errorf("expected second read to show value 7, got:\n%s", out)
	}
	if strings.Contains(out, `Value: "99"`) {
		t.Errorf("duplicate create must not overwrite, got:\n%s", out)
	}

	// 7 successful operations, reading the deleted key fails
	if n := countLines(out, ResultSuccess.Message()); n != 7 {
		t.Errorf("expected 7 successes, got %d:\n%s", n, out)
	}
	if n := countLines(errOut, ResultFailed.Message()); n != 1 {
		t.Errorf("expected 1 failure, got %d:\n%s", n, errOut)
	}
}

func TestReadPrintsRawText(t *testing.T) {
	out, _ := runSession(t, 4, "-c a\"b c\\d\n-r a\"b\n")

	want := `{Key: "a"b", Value: "c\d"}`
	if !strings.Contains(out, want) {
		t.Errorf("expected %s, got:\n%s", want, out)
	}
}

func TestMissingArguments(t *testing.T) {
	_, errOut := runSession(t, 4, "-c onlykey\n-r\n-u key\n-d\n")

	if n := countLines(errOut, ResultMissingArgs.Message()); n != 4 {
		t.Errorf("expected 4 missing argument errors, got %d:\n%s", n, errOut)
	}
}

func TestUnknownCommand(t *testing.T) {
	_, errOut := runSession(t, 4, "-x\ncreate a b\n\n   \n")

	if n := countLines(errOut, ResultUnknown.Message()); n != 2 {
		t.Errorf("expected 2 unknown command errors (blank lines ignored), got %d:\n%s", n, errOut)
	}
}

func TestUpdateAndDeleteMissing(t *testing.T) {
	out, errOut := runSession(t, 4, "-u ghost v\n-d ghost\n-r ghost\n")

	// update and read fail, delete is best effort
	if n := countLines(errOut, ResultFailed.Message()); n != 2 {
		t.Errorf("expected 2 failures, got %d:\n%s", n, errOut)
	}
	if n := countLines(out, ResultSuccess.Message()); n != 1 {
		t.Errorf("expected delete of a missing key to succeed, got:\n%s", out)
	}
}

func TestPrint(t *testing.T) {
	out, _ := runSession(t, 4, "-c a 1\n-c e 2\n-c b 3\n-p\n")

	// a and e collide in bucket 1, b is in bucket 2
	want := "[1] -> [a,1] -> [e,2]\n[2] -> [b,3]\n"
	if !strings.Contains(out, want) {
		t.Errorf("expected print output %q, got:\n%s", want, out)
	}
}

func TestPrintEmpty(t *testing.T) {
	out, _ := runSession(t, 4, "-p\n")

	if strings.Contains(out, "[") {
		t.Errorf("expected no buckets for an empty table, got:\n%s", out)
	}
	if countLines(out, ResultSuccess.Message()) != 1 {
		t.Errorf("expected print of an empty table to succeed, got:\n%s", out)
	}
}

func TestHelp(t *testing.T) {
	out, _ := runSession(t, 4, "-h\n")

	for _, c := range commandList {
		if !strings.Contains(out, c.verb) || !strings.Contains(out, c.help) {
			t.Errorf("expected help to list %s (%s), got:\n%s", c.name, c.verb, out)
		}
	}
}

func TestInfoAndMetrics(t *testing.T) {
	out, errOut := runSession(t, 4, "-c a 1\n-r a\n-i\n-m\n")

	if errOut != "" {
		t.Errorf("expected no errors, got:\n%s", errOut)
	}
	if !strings.Contains(out, `"db_type": "chain"`) {
		t.Errorf("expected info output, got:\n%s", out)
	}
	if !strings.Contains(out, `hmap_ops_total{op="read"} 1`) {
		t.Errorf("expected metrics output, got:\n%s", out)
	}
}

func TestQuit(t *testing.T) {
	out, _ := runSession(t, 4, "-c a 1\n-q\n-c b 2\n")

	if n := countLines(out, ResultSuccess.Message()); n != 1 {
		t.Errorf("expected the session to stop at -q, got:\n%s", out)
	}
}

func TestDispatchEmptyArgs(t *testing.T) {
	s, err := util.NewStore(4)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer s.Close()

	session := NewSession(s, strings.NewReader(""), io.Discard, io.Discard, "")
	if r := session.Dispatch(nil); r != ResultUnknown {
		t.Errorf("expected ResultUnknown for no tokens, got %v", r)
	}
}
