package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xiaomi388/templater/cmd/copy"
	"github.com/xiaomi388/templater/pkg/clipboard"
	"github.com/xiaomi388/templater/pkg/persistence"
)

type testEnv struct {
	dir   string
	store string
}

func newTestEnv(t *testing.T) testEnv {
	t.Helper()
	dir := t.TempDir()
	return testEnv{dir: dir, store: filepath.Join(dir, persistence.DefaultJSONName)}
}

func (e testEnv) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(append([]string{"--config", filepath.Join(e.dir, "config.yaml"), "--store", e.store}, args...))
	err := rootCmd.Execute()
	return buf.String(), err
}

func (e testEnv) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := e.run(t, args...)
	if err != nil {
		t.Fatalf("%v: %v\n%s", args, err, out)
	}
	return out
}

func (e testEnv) descriptions(t *testing.T) []string {
	t.Helper()
	data, err := os.ReadFile(e.store)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	var records []struct {
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &records); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	out := []string{}
	for _, r := range records {
		out = append(out, r.Description)
	}
	return out
}

func TestCommandsEndToEnd(t *testing.T) {
	env := newTestEnv(t)

	if out := env.mustRun(t, "add", "Buy", "milk"); !strings.Contains(out, "Created template 0.") {
		t.Errorf("unexpected add output: %s", out)
	}
	env.mustRun(t, "add", "BUY bread")
	env.mustRun(t, "add", "Call mom")

	if out := env.mustRun(t, "add", "   "); !strings.Contains(out, "Empty template ignored.") {
		t.Errorf("blank add should be ignored: %s", out)
	}

	out := env.mustRun(t, "search", "buy")
	if !strings.Contains(out, "  0. Buy milk") || !strings.Contains(out, "  1. BUY bread") || strings.Contains(out, "Call mom") {
		t.Errorf("unexpected search output:\n%s", out)
	}
	if out := env.mustRun(t, "search", "xyz"); !strings.Contains(out, `No templates match "xyz".`) {
		t.Errorf("unexpected empty search output:\n%s", out)
	}

	env.mustRun(t, "edit", "2", "Call dad")
	if _, err := env.run(t, "edit", "3", "x"); err == nil {
		t.Errorf("editing a missing template should fail")
	}
	if _, err := env.run(t, "edit", "-1", "x"); err == nil {
		t.Errorf("editing a negative index should fail")
	}

	env.mustRun(t, "rm", "0")

	got := env.descriptions(t)
	want := []string{"BUY bread", "Call dad"}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Errorf("expected %v, got %v", want, got)
	}

	out = env.mustRun(t, "list")
	if !strings.Contains(out, "  0. BUY bread") || !strings.Contains(out, "  1. Call dad") {
		t.Errorf("unexpected list output:\n%s", out)
	}
}

func TestCopyCommand(t *testing.T) {
	env := newTestEnv(t)
	mem := &clipboard.Memory{}
	orig := copy.Copier
	copy.Copier = mem
	t.Cleanup(func() { copy.Copier = orig })

	env.mustRun(t, "add", "Dear team,")
	if out := env.mustRun(t, "copy", "0"); !strings.Contains(out, "Template copied to clipboard!") {
		t.Errorf("unexpected copy output: %s", out)
	}
	if mem.Text != "Dear team," {
		t.Errorf("unexpected clipboard text %q", mem.Text)
	}

	if _, err := env.run(t, "copy", "4"); err == nil {
		t.Errorf("copying a missing template should fail")
	}
	if _, err := env.run(t, "copy", "first"); err == nil {
		t.Errorf("copying with a non-numeric index should fail")
	}
}

func TestCorruptFileListsNothing(t *testing.T) {
	env := newTestEnv(t)
	if err := os.WriteFile(env.store, []byte(`{"not": "an array"}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	out, err := env.run(t, "list")
	if err != nil {
		t.Fatalf("list should not fail on a corrupt file: %v", err)
	}
	if strings.TrimSpace(out) != "" {
		t.Errorf("expected no templates, got:\n%s", out)
	}
}

func TestMigrateCommand(t *testing.T) {
	env := newTestEnv(t)
	env.mustRun(t, "add", "one")
	env.mustRun(t, "add", "two")

	db := filepath.Join(env.dir, persistence.DefaultSQLiteName)
	out := env.mustRun(t, "migrate", "--from", "json", "--source", env.store, "--to", "sqlite", "--dest", db)
	if !strings.Contains(out, "Successfully migrated 2 template(s) from json to sqlite.") {
		t.Errorf("unexpected migrate output: %s", out)
	}

	back := filepath.Join(env.dir, "back.json")
	env.mustRun(t, "migrate", "--from", "sqlite", "--source", db, "--to", "json", "--dest", back)

	data, err := os.ReadFile(back)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), `"description": "one"`) || !strings.Contains(string(data), `"description": "two"`) {
		t.Errorf("unexpected migrated content: %s", data)
	}
}

func TestConfigInit(t *testing.T) {
	env := newTestEnv(t)

	env.mustRun(t, "config", "init")
	if _, err := env.run(t, "config", "init"); err == nil {
		t.Errorf("second init without --force should fail")
	}
	env.mustRun(t, "config", "init", "--force")

	out := env.mustRun(t, "config", "show")
	if !strings.Contains(out, "backend: json") || !strings.Contains(out, env.store) {
		t.Errorf("unexpected config output:\n%s", out)
	}
}
