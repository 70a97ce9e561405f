package cli

import (
	"bytes"
	"testing"
)

// executeCommand runs a command with the given args and captures output.
func executeCommand(args ...string) (string, error) {
	root := NewRootCmd()
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

// resetGlobalFlags clears the package-level flag values left behind by
// earlier commands, now and when the test ends.
func resetGlobalFlags(t *testing.T) {
	t.Helper()
	reset := func() {
		flagFormat = "text"
		flagServer = ""
		flagDB = ""
	}
	reset()
	t.Cleanup(reset)
}

func TestRootHelp(t *testing.T) {
	_, err := executeCommand("--help")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGlobalFlags(t *testing.T) {
	root := NewRootCmd()

	tests := []struct {
		name string
		def  string
	}{
		{"format", "text"},
		{"server", ""},
		{"db", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := root.PersistentFlags().Lookup(tt.name)
			if f == nil {
				t.Fatalf("expected --%s flag to exist", tt.name)
			}
			if f.DefValue != tt.def {
				t.Errorf("--%s default = %q, want %q", tt.name, f.DefValue, tt.def)
			}
		})
	}
}

func TestSubcommands(t *testing.T) {
	root := NewRootCmd()
	want := []string{"serve", "list", "show", "stats", "neighborhoods", "refresh", "status", "version"}

	for _, name := range want {
		cmd, _, err := root.Find([]string{name})
		if err != nil || cmd.Name() != name {
			t.Errorf("subcommand %q not registered", name)
		}
	}
}

func TestVersion(t *testing.T) {
	out, err := executeCommand("version")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if out != "dev\n" {
		t.Errorf("output = %q, want dev", out)
	}
}
