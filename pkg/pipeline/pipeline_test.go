package pipeline

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/relviz/pkg/cache"
	"github.com/matzehuels/relviz/pkg/errors"
	"github.com/matzehuels/relviz/pkg/style"
)

const facts = `class Customer, Order
package shop
Customer (1) has (*) Order
Customer, Order in shop
`

func sources(extra ...Source) []Source {
	return append([]Source{{Name: style.SourceName, Data: style.Default()}}, extra...)
}

func newTestRunner(t *testing.T) (*Runner, *bytes.Buffer) {
	t.Helper()
	c, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	var logs bytes.Buffer
	return NewRunner(c, nil, log.New(&logs)), &logs
}

func TestValidateFormat(t *testing.T) {
	tests := []struct {
		format  string
		wantErr bool
	}{
		{"dot", false},
		{"svg", false},
		{"json", false},
		{"png", true},
		{"SVG", true},
		{"", true},
	}
	for _, tt := range tests {
		err := ValidateFormat(tt.format)
		if (err != nil) != tt.wantErr {
			t.Errorf("ValidateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
		}
	}
}

func TestOptions_Validate(t *testing.T) {
	if err := (Options{Format: "dot"}).Validate(); err == nil {
		t.Error("Validate() should reject options without sources")
	}
	if err := (Options{Sources: sources(), Format: "dot"}).Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestStages(t *testing.T) {
	files, err := Parse(sources(Source{Name: "shop.facts", Data: []byte(facts)}))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	if len(files) != 2 || files[1].Source != "shop.facts" {
		t.Fatalf("Parse() = %d files", len(files))
	}
	reg, err := Registry(files)
	if err != nil {
		t.Fatalf("Registry() error: %v", err)
	}
	if !reg.Closed() {
		t.Error("Registry() should return a closed registry")
	}
	g, err := Build(files, reg, false)
	if err != nil {
		t.Fatalf("Build() error: %v", err)
	}
	if p, _ := g.Parent("Order"); p != "shop" {
		t.Errorf("Parent(Order) = %q, want shop", p)
	}
	s := g.Stats()
	if s.Vertices != 3 || s.Edges != 3 || s.Hidden != 2 || s.Clusters != 1 {
		t.Errorf("Stats() = %v", s)
	}
}

func TestExecute(t *testing.T) {
	r, logs := newTestRunner(t)
	ctx := context.Background()
	opts := Options{
		Sources: sources(Source{Name: "shop.facts", Data: []byte(facts)}),
		Format:  "dot",
	}

	res, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if res.CacheInfo.GraphHit || res.CacheInfo.RenderHit {
		t.Errorf("first run CacheInfo = %+v, want misses", res.CacheInfo)
	}
	dot := string(res.Output)
	for _, want := range []string{"subgraph clustershop", `taillabel="1"`, `headlabel="*"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT lacks %s:\n%s", want, dot)
		}
	}
	if len(res.RunID) != 8 {
		t.Errorf("RunID = %q, want 8 characters", res.RunID)
	}
	if !strings.Contains(logs.String(), "run="+res.RunID) {
		t.Errorf("logs are not tagged with the run ID:\n%s", logs.String())
	}

	again, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute() error: %v", err)
	}
	if !again.CacheInfo.GraphHit || !again.CacheInfo.RenderHit {
		t.Errorf("second run CacheInfo = %+v, want hits", again.CacheInfo)
	}
	if string(again.Output) != dot {
		t.Error("cached output differs from the first run")
	}
	if again.GraphHash != res.GraphHash {
		t.Error("graph hash changed between runs")
	}

	opts.Refresh = true
	fresh, err := r.Execute(ctx, opts)
	if err != nil {
		t.Fatal(err)
	}
	if fresh.CacheInfo.GraphHit || fresh.CacheInfo.RenderHit {
		t.Errorf("refreshed run CacheInfo = %+v, want misses", fresh.CacheInfo)
	}
	if string(fresh.Output) != dot {
		t.Error("refreshed output differs from the first run")
	}
}

func TestExecute_JSON(t *testing.T) {
	r, _ := newTestRunner(t)
	res, err := r.Execute(context.Background(), Options{
		Sources: sources(Source{Name: "shop.facts", Data: []byte(facts)}),
		Format:  "json",
	})
	if err != nil {
		t.Fatalf("Execute() error: %v", err)
	}
	if !bytes.Contains(res.Output, []byte(`"vertices"`)) {
		t.Errorf("JSON output = %s", res.Output)
	}
}

func TestExecute_StrictChangesKey(t *testing.T) {
	r, _ := newTestRunner(t)
	ctx := context.Background()
	opts := Options{
		Sources: sources(Source{Name: "f", Data: []byte("class A\nA uses B\n")}),
		Format:  "dot",
	}
	if _, err := r.Execute(ctx, opts); err != nil {
		t.Fatalf("Execute() error: %v", err)
	}

	opts.Strict = true
	_, err := r.Execute(ctx, opts)
	if !errors.Is(err, errors.ErrCodeUnresolvedReference) {
		t.Errorf("strict Execute() = %v, want UNRESOLVED_REFERENCE", err)
	}
}

func TestExecute_Errors(t *testing.T) {
	tests := []struct {
		name  string
		facts string
		code  errors.Code
		line  int
	}{
		{"lexical", "class \"Foo\n", errors.ErrCodeLexical, 1},
		{"syntax", "class\n", errors.ErrCodeSyntax, 1},
		{"unknown type", "class A\nwidget B\n", errors.ErrCodeUnknownType, 2},
		{"conflict", "node-type class\n", errors.ErrCodeConflictingTypeDef, 1},
		{"duplicate", "class A\ninterface A\n", errors.ErrCodeDuplicateObject, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r, _ := newTestRunner(t)
			_, err := r.Execute(context.Background(), Options{
				Sources: sources(Source{Name: "f", Data: []byte(tt.facts)}),
				Format:  "dot",
			})
			if got := errors.GetCode(err); got != tt.code {
				t.Fatalf("Execute() code = %q, want %q (%v)", got, tt.code, err)
			}
			pos := errors.GetPos(err)
			if pos.Source != "f" || pos.Line != tt.line {
				t.Errorf("error position = %v, want f:%d", pos, tt.line)
			}
		})
	}
}
