package cli

import (
	"strings"
	"testing"
)

func TestShowRequiresID(t *testing.T) {
	_, err := executeCommand("show")
	if err == nil {
		t.Fatal("expected error when no ID provided")
	}
}

func TestShowRejectsNonNumericID(t *testing.T) {
	_, err := executeCommand("show", "abc", "--server", "http://127.0.0.1:1")
	if err == nil {
		t.Fatal("expected error for non-numeric ID")
	}
	if !strings.Contains(err.Error(), "invalid listing ID") {
		t.Errorf("error = %q", err)
	}
}

func TestListRejectsBadType(t *testing.T) {
	_, err := executeCommand("list", "--type", "lease", "--server", "http://127.0.0.1:1")
	if err == nil || !strings.Contains(err.Error(), "invalid type") {
		t.Fatalf("error = %v, want invalid type", err)
	}
}

func TestNoArgCommandsRejectArgs(t *testing.T) {
	for _, name := range []string{"list", "stats", "neighborhoods", "refresh", "status", "serve"} {
		t.Run(name, func(t *testing.T) {
			_, err := executeCommand(name, "extra")
			if err == nil {
				t.Fatal("expected args error")
			}
		})
	}
}
