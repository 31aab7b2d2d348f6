package main

import (
	"bytes"
	"context"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/eringen/titlefill"
)

func run(t *testing.T, cmd *cobra.Command, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	if err := cmd.ExecuteContext(context.Background()); err != nil {
		t.Fatalf("%s %v: %v\n%s", cmd.Name(), args, err, out.String())
	}
	return out.String()
}

func TestOptionsAndTitleCommands(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "blog.db")
	t.Setenv("TITLEFILL_DB_PATH", dbPath)

	store, err := titlefill.NewStore(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	id, err := store.SavePost(context.Background(), titlefill.Post{Format: "quote", Published: true})
	store.Close()
	if err != nil {
		t.Fatal(err)
	}

	out := run(t, newOptionsCmd(), "show")
	if !strings.Contains(out, "title_format: (Set a Title Format)") {
		t.Errorf("show before set:\n%s", out)
	}

	run(t, newOptionsCmd(), "set", "--format", "%f <b>%n</b>")
	out = run(t, newOptionsCmd(), "show")
	if !strings.Contains(out, "%f %n") || strings.Contains(out, "<b>") {
		t.Errorf("show after set:\n%s", out)
	}

	run(t, newOptionsCmd(), "set", "--format", "Tom & Jerry's %n")
	out = run(t, newOptionsCmd(), "show")
	if !strings.Contains(out, "Tom & Jerry") || strings.Contains(out, "&amp;") {
		t.Errorf("show prints encoded entities:\n%s", out)
	}
	run(t, newOptionsCmd(), "set", "--format", "%f <b>%n</b>")

	out = run(t, newTitleCmd(), "--id", strconv.FormatInt(id, 10))
	if got := strings.TrimSpace(out); got != "Quote "+strconv.FormatInt(id, 10) {
		t.Errorf("title = %q", got)
	}

	out = run(t, newTitleCmd(), "--id", strconv.FormatInt(id, 10), "--admin")
	if got := strings.TrimSpace(out); got != "" {
		t.Errorf("admin title = %q, want empty", got)
	}

	run(t, newOptionsCmd(), "reset")
	out = run(t, newOptionsCmd(), "show")
	if !strings.Contains(out, "(Set a Title Format)") {
		t.Errorf("show after reset:\n%s", out)
	}
}
