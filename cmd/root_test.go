package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// resetFlags restores the defaults of all flags of c and its subcommands
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.PersistentFlags().VisitAll(reset)
	c.Flags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

// execute runs the root command with the given args and stdin
func execute(t *testing.T, input string, args ...string) (string, string, error) {
	t.Helper()

	viper.Reset()
	resetFlags(RootCmd)
	t.Cleanup(func() {
		viper.Reset()
		resetFlags(RootCmd)
	})

	var out, errOut bytes.Buffer
	RootCmd.SetIn(strings.NewReader(input))
	RootCmd.SetOut(&out)
	RootCmd.SetErr(&errOut)
	RootCmd.SetArgs(args)

	err := RootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRootStartsShell(t *testing.T) {
	out, errOut, err := execute(t, "-c a 1\n-r a\n-r b\n", "--capacity", "4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"Hash Table Shell\n",
		"Help\t-h\tList of all commands.\n",
		"> ",
		`{Key: "a", Value: "1"}`,
		"Operation completed successfully.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, out)
		}
	}
	if !strings.HasSuffix(out, "Exiting.\n") {
		t.Errorf("expected output to end with Exiting. after EOF, got:\n%s", out)
	}
	if !strings.Contains(errOut, "Error: Operation failed.") {
		t.Errorf("expected the failed read on stderr, got:\n%s", errOut)
	}
}

func TestShellCommandQuit(t *testing.T) {
	out, _, err := execute(t, "-c a 1\n-q\n-c b 2\n", "shell", "--capacity", "4", "--prompt", "hmap> ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(out, "hmap> ") {
		t.Errorf("expected the custom prompt, got:\n%s", out)
	}
	if strings.Count(out, "Operation completed successfully.") != 1 {
		t.Errorf("expected the shell to stop at -q, got:\n%s", out)
	}
	if !strings.HasSuffix(out, "Exiting.\n") {
		t.Errorf("expected output to end with Exiting. after -q, got:\n%s", out)
	}
}

func TestRejectsZeroCapacity(t *testing.T) {
	_, _, err := execute(t, "", "--capacity", "0")
	if err == nil || !strings.Contains(err.Error(), "capacity must be at least 1") {
		t.Errorf("expected capacity 0 to be rejected, got %v", err)
	}
}

func TestRejectsInvalidLogLevel(t *testing.T) {
	_, _, err := execute(t, "", "--log-level", "loud")
	if err == nil {
		t.Errorf("expected an invalid log level to be rejected")
	}
}

func TestCapacityFromEnvironment(t *testing.T) {
	t.Setenv("HMAP_CAPACITY", "1")

	// with a single bucket every key shares bucket 0
	out, _, err := execute(t, "-c a 1\n-c b 2\n-p\n")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "[0] -> [a,1] -> [b,2]\n") {
		t.Errorf("expected one bucket from HMAP_CAPACITY, got:\n%s", out)
	}
}

func TestZeroCapacityFromEnvironment(t *testing.T) {
	t.Setenv("HMAP_CAPACITY", "0")

	_, _, err := execute(t, "")
	if err == nil || !strings.Contains(err.Error(), "capacity must be at least 1") {
		t.Errorf("expected HMAP_CAPACITY=0 to be rejected, got %v", err)
	}
}

func TestVersion(t *testing.T) {
	out, _, err := execute(t, "", "version")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out != "hmap v"+Version+"\n" {
		t.Errorf("unexpected version output %q", out)
	}
}
