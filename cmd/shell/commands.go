package shell

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/ValentinKolb/hmap/lib/store"
)

// --------------------------------------------------------------------------
// Operations and Results
// --------------------------------------------------------------------------

// opKind identifies the table operation behind a verb
type opKind int

const (
	opCreate opKind = iota
	opRead
	opUpdate
	opDelete
	opPrint
	opInfo
	opMetrics
	opHelp
	opQuit
)

// Result is the outcome of one dispatched command
type Result int

const (
	ResultSuccess     Result = iota // the operation completed
	ResultMissingArgs               // the verb got fewer arguments than it needs
	ResultFailed                    // the table reported a failure (e.g. key not found)
	ResultUnknown                   // the verb is not in the command table
	ResultQuit                      // the session should end
)

// Message returns the line reported to the user for a result
func (r Result) Message() string {
	switch r {
	case ResultSuccess:
		return "Operation completed successfully."
	case ResultMissingArgs:
		return "Error: Missing required arguments."
	case ResultFailed:
		return "Error: Operation failed."
	case ResultUnknown:
		return "Error: Unknown command."
	default:
		return ""
	}
}

// --------------------------------------------------------------------------
// Command Table
// --------------------------------------------------------------------------

// command describes one verb of the shell
type command struct {
	name  string // name shown in the help
	verb  string // token typed by the user
	op    opKind
	argc  int // required tokens including the verb
	usage string
	help  string
}

// commandList is the command table in the order the help lists it
var commandList = []command{
	{name: "Create", verb: "-c", op: opCreate, argc: 3, usage: "[KEY] [VALUE]", help: "Create and add an entry to the table."},
	{name: "Read", verb: "-r", op: opRead, argc: 2, usage: "[KEY]", help: "Read and display the value of an entry."},
	{name: "Update", verb: "-u", op: opUpdate, argc: 3, usage: "[KEY] [VALUE]", help: "Update the value of an existing entry."},
	{name: "Delete", verb: "-d", op: opDelete, argc: 2, usage: "[KEY]", help: "Delete an entry from the table."},
	{name: "Print", verb: "-p", op: opPrint, argc: 1, help: "Print all entries grouped by bucket."},
	{name: "Info", verb: "-i", op: opInfo, argc: 1, help: "Show size and key distribution of the table."},
	{name: "Metrics", verb: "-m", op: opMetrics, argc: 1, help: "Show operation counters."},
	{name: "Help", verb: "-h", op: opHelp, argc: 1, help: "List of all commands."},
	{name: "Quit", verb: "-q", op: opQuit, argc: 1, help: "Leave the shell."},
}

// commands maps a verb to its command
var commands = func() map[string]command {
	m := make(map[string]command, len(commandList))
	for _, c := range commandList {
		m[c.verb] = c
	}
	return m
}()

// --------------------------------------------------------------------------
// Dispatch
// --------------------------------------------------------------------------

// Dispatch runs one tokenized command line against the store.
// args[0] is the verb. Output of the command itself (not the result message)
// is written to the session's output.
func (s *Session) Dispatch(args []string) Result {
	if len(args) == 0 {
		return ResultUnknown
	}

	cmd, ok := commands[args[0]]
	if !ok {
		return ResultUnknown
	}

	if len(args) < cmd.argc {
		return ResultMissingArgs
	}

	var err error
	switch cmd.op {
	case opCreate:
		_, err = s.store.Create(args[1], args[2])

	case opRead:
		entry, readErr := s.store.Read(args[1])
		if err = readErr; err == nil {
			fmt.Fprintf(s.out, "{Key: \"%s\", Value: \"%s\"}\n", entry.Key, entry.Value)
		}

	case opUpdate:
		_, err = s.store.Update(args[1], args[2])

	case opDelete:
		err = s.store.Delete(args[1])

	case opPrint:
		err = s.print()

	case opInfo:
		err = s.info()

	case opMetrics:
		err = s.store.WriteMetrics(s.out)

	case opHelp:
		s.help()

	case opQuit:
		return ResultQuit
	}

	if err != nil {
		log.Infof("%s failed: %v", cmd.name, err)
		return ResultFailed
	}
	return ResultSuccess
}

// print writes one line per non-empty bucket: [i] -> [k,v] -> [k,v]
func (s *Session) print() error {
	entries, err := s.store.List()
	if err != nil {
		return err
	}

	bucket := -1
	for e := range entries {
		if e.Bucket != bucket {
			if bucket >= 0 {
				fmt.Fprintln(s.out)
			}
			bucket = e.Bucket
			fmt.Fprintf(s.out, "[%d]", bucket)
		}
		fmt.Fprintf(s.out, " -> [%s,%s]", e.Key, e.Value)
	}
	if bucket >= 0 {
		fmt.Fprintln(s.out)
	}

	return nil
}

// info writes the table info as indented JSON
func (s *Session) info() error {
	info, err := s.store.GetDBInfo()
	if err != nil {
		return err
	}

	out, err := json.MarshalIndent(info, "", "  ")
	if err != nil {
		return store.NewError(store.RetCInternalError, err.Error())
	}

	_, err = fmt.Fprintln(s.out, string(out))
	return err
}

// help writes the command table
func (s *Session) help() {
	w := tabwriter.NewWriter(s.out, 0, 8, 2, ' ', 0)
	for _, c := range commandList {
		fmt.Fprintf(w, "%s\t%s %s\t%s\n", c.name, c.verb, c.usage, c.help)
	}
	_ = w.Flush()
}
