package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/relviz/pkg/errors"
	"github.com/matzehuels/relviz/pkg/observability"
)

const shopFacts = `class Customer, Order
package shop
Customer (1) has (*) Order
Customer, Order in shop
`

// cmdResult is what one command invocation produced.
type cmdResult struct {
	out    string // command output (artifacts, tables)
	status string // status lines
	logs   string
	err    error
}

// env isolates config and cache directories for a test.
type env struct {
	t        *testing.T
	dir      string
	cacheDir string
}

func newEnv(t *testing.T) *env {
	t.Helper()
	e := &env{t: t, dir: t.TempDir(), cacheDir: t.TempDir()}
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_CACHE_HOME", e.cacheDir)
	t.Cleanup(observability.Reset)
	return e
}

// file writes a file into the test directory and returns its path.
func (e *env) file(name, content string) string {
	e.t.Helper()
	path := filepath.Join(e.dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		e.t.Fatal(err)
	}
	return path
}

func (e *env) run(stdin string, args ...string) cmdResult {
	e.t.Helper()
	var out, status, logs bytes.Buffer
	withUIOutput(e.t, &status)

	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&logs)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return cmdResult{out: out.String(), status: status.String(), logs: logs.String(), err: err}
}

func TestRender_Stdin(t *testing.T) {
	e := newEnv(t)
	res := e.run(shopFacts, "render")
	if res.err != nil {
		t.Fatalf("render error: %v", res.err)
	}
	for _, want := range []string{"digraph relviz {", "subgraph clustershop", `headlabel="*"`} {
		if !strings.Contains(res.out, want) {
			t.Errorf("output lacks %s:\n%s", want, res.out)
		}
	}
	if res.status != "" {
		t.Errorf("status output mixed into stdout render: %q", res.status)
	}
}

func TestRender_FileToOutput(t *testing.T) {
	e := newEnv(t)
	facts := e.file("shop.facts", shopFacts)
	out := filepath.Join(e.dir, "shop.json")

	res := e.run("", "render", "-f", "json", "-o", out, facts)
	if res.err != nil {
		t.Fatalf("render error: %v", res.err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Contains(data, []byte(`"vertices"`)) {
		t.Errorf("output file = %s", data)
	}
	if !strings.Contains(res.status, "Rendered json") || !strings.Contains(res.status, out) {
		t.Errorf("status = %q", res.status)
	}

	again := e.run("", "render", "-f", "json", "-o", out, facts)
	if again.err != nil {
		t.Fatal(again.err)
	}
	if !strings.Contains(again.status, iconCached) {
		t.Errorf("second render status = %q, want a cache hit", again.status)
	}
}

func TestRender_UserStyle(t *testing.T) {
	e := newEnv(t)
	style := e.file("team.style", "node-type service, services is-a component\n  color: blue\n")

	res := e.run("service api\n", "render", "-s", style)
	if res.err != nil {
		t.Fatalf("render error: %v", res.err)
	}
	if !strings.Contains(res.out, `color="blue"`) || !strings.Contains(res.out, `shape="component"`) {
		t.Errorf("styled output:\n%s", res.out)
	}
}

func TestRender_ConfigFile(t *testing.T) {
	e := newEnv(t)
	cfg := e.file("config.toml", "format = \"json\"\n\n[cache]\nbackend = \"none\"\n")

	res := e.run(shopFacts, "--config", cfg, "render")
	if res.err != nil {
		t.Fatalf("render error: %v", res.err)
	}
	if !strings.HasPrefix(strings.TrimSpace(res.out), "{") {
		t.Errorf("config format ignored, output:\n%s", res.out)
	}

	res = e.run(shopFacts, "--config", cfg, "render", "-f", "dot")
	if res.err != nil {
		t.Fatal(res.err)
	}
	if !strings.HasPrefix(res.out, "digraph") {
		t.Errorf("--format should override the config file, output:\n%s", res.out)
	}
}

func TestRender_Errors(t *testing.T) {
	tests := []struct {
		name  string
		stdin string
		args  []string
		code  errors.Code
	}{
		{"missing file", "", []string{"render", "/nonexistent/model.facts"}, errors.ErrCodeFileNotFound},
		{"strict", "class A\nA uses B\n", []string{"render", "--strict"}, errors.ErrCodeUnresolvedReference},
		{"no default style", "class A\n", []string{"render", "--no-default-style"}, errors.ErrCodeUnknownType},
		{"syntax", "class\n", []string{"render"}, errors.ErrCodeSyntax},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEnv(t)
			res := e.run(tt.stdin, tt.args...)
			if got := errors.GetCode(res.err); got != tt.code {
				t.Errorf("error code = %q, want %q (%v)", got, tt.code, res.err)
			}
		})
	}
}

func TestRender_InvalidFormat(t *testing.T) {
	e := newEnv(t)
	if res := e.run(shopFacts, "render", "-f", "png"); res.err == nil {
		t.Error("render -f png should fail")
	}
}

func TestCheck(t *testing.T) {
	e := newEnv(t)
	res := e.run("class A\nA uses B\n", "check")
	if res.err != nil {
		t.Fatalf("check error: %v", res.err)
	}
	for _, want := range []string{"2 sources are valid", "vertices", "1 vertices were never declared", "relviz render"} {
		if !strings.Contains(res.status, want) {
			t.Errorf("status lacks %q:\n%s", want, res.status)
		}
	}
}

func TestTypes(t *testing.T) {
	e := newEnv(t)
	res := e.run("", "types")
	if res.err != nil {
		t.Fatalf("types error: %v", res.err)
	}
	for _, want := range []string{"generalization", "is-a", "composition > aggregation > association > relationship"} {
		if !strings.Contains(res.out, want) {
			t.Errorf("types output lacks %q:\n%s", want, res.out)
		}
	}

	res = e.run("", "types", "--kind", "cluster")
	if res.err != nil {
		t.Fatal(res.err)
	}
	if !strings.Contains(res.out, "subsystem") || strings.Contains(res.out, "classifier") {
		t.Errorf("--kind cluster output:\n%s", res.out)
	}

	if res := e.run("", "types", "--kind", "vertex"); errors.GetCode(res.err) != errors.ErrCodeInvalidInput {
		t.Errorf("unknown kind error = %v, want INVALID_INPUT", res.err)
	}
}

func TestTypes_FactFileDeclarations(t *testing.T) {
	e := newEnv(t)
	facts := e.file("model.facts", "node-type service is-a component\n  color: blue\nservice api\n")
	res := e.run("", "types", "--kind", "node", facts)
	if res.err != nil {
		t.Fatalf("types error: %v", res.err)
	}
	if !strings.Contains(res.out, "service > component > element") {
		t.Errorf("types output lacks the declared type:\n%s", res.out)
	}
}

func TestCacheCommands(t *testing.T) {
	e := newEnv(t)
	res := e.run("", "cache", "path")
	if res.err != nil {
		t.Fatal(res.err)
	}
	dir := filepath.Join(e.cacheDir, appName)
	if strings.TrimSpace(res.out) != dir {
		t.Errorf("cache path = %q, want %q", res.out, dir)
	}

	if res := e.run(shopFacts, "render"); res.err != nil {
		t.Fatal(res.err)
	}
	entries, _ := os.ReadDir(dir)
	if len(entries) == 0 {
		t.Fatal("render left the cache empty")
	}

	res = e.run("", "cache", "clear")
	if res.err != nil {
		t.Fatalf("cache clear error: %v", res.err)
	}
	entries, _ = os.ReadDir(dir)
	if len(entries) != 0 {
		t.Errorf("cache holds %d entries after clear", len(entries))
	}
}

func TestCompletion(t *testing.T) {
	e := newEnv(t)
	res := e.run("", "completion", "bash")
	if res.err != nil {
		t.Fatal(res.err)
	}
	if !strings.Contains(res.out, "relviz") {
		t.Error("bash completion does not mention relviz")
	}
	if res := e.run("", "completion", "tcsh"); res.err == nil {
		t.Error("completion tcsh should fail")
	}
}

func TestTypeBrowser(t *testing.T) {
	rows := []typeRow{
		{Name: "element", Kind: "element", Linearisation: []string{"element"}},
		{Name: "classifier", Kind: "node", Parents: []string{"element"}, Linearisation: []string{"classifier", "element"}},
		{Name: "class", Synonyms: []string{"classes"}, Kind: "node", Parents: []string{"classifier"}, Linearisation: []string{"class", "classifier", "element"}},
	}
	key := func(s string) tea.KeyMsg { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)} }
	step := func(m typeBrowser, msg tea.Msg) typeBrowser {
		next, _ := m.Update(msg)
		return next.(typeBrowser)
	}

	m := newTypeBrowser(rows)
	m = step(m, key("G"))
	if m.cursor != 2 {
		t.Fatalf("cursor after G = %d, want 2", m.cursor)
	}
	if !strings.Contains(m.View(), "class > classifier > element") {
		t.Errorf("View() lacks the linearisation:\n%s", m.View())
	}

	m = step(m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.cursor != 1 {
		t.Errorf("cursor after enter = %d, want the parent row 1", m.cursor)
	}
	m = step(m, key("k"))
	m = step(m, key("k"))
	if m.cursor != 0 {
		t.Errorf("cursor = %d, want clamped to 0", m.cursor)
	}

	if _, cmd := m.Update(key("q")); cmd == nil {
		t.Error("q should quit")
	}
}
