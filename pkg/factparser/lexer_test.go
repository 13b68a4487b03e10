package factparser

import (
	"slices"
	"testing"

	"github.com/matzehuels/relviz/pkg/errors"
)

func lexLines(t *testing.T, src string) []Line {
	t.Helper()
	lines, err := NewLexer("test", []byte(src)).Lines()
	if err != nil {
		t.Fatalf("Lines() error: %v", err)
	}
	return lines
}

func texts(toks []Token) []string {
	out := make([]string, len(toks))
	for i, tok := range toks {
		out[i] = tok.Text
	}
	return out
}

func TestLexer_Identifiers(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"bare", `hello`, "hello"},
		{"bare with colon", `hello:world`, "hello:world"},
		{"bare with parens inside", `f(x)`, "f(x)"},
		{"quoted", `"Hello World!"`, "Hello World!"},
		{"escaped quotes", `"Hello \"quoted\" world"`, `Hello "quoted" world`},
		{"escaped backslash", `"foo\\bar"`, `foo\bar`},
		{"empty quoted", `""`, ""},
		{"hash in quotes", `"a # b"`, "a # b"},
		{"comma in quotes", `"a, b"`, "a, b"},
		{"triple quoted", `"""some "quoted" words"""`, `some "quoted" words`},
		{"triple quoted multiline", "\"\"\"hello\nworld\"\"\"", "hello\nworld"},
		{"triple quoted escape", `"""foo\\bar"""`, `foo\bar`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lines := lexLines(t, tt.src)
			if len(lines) != 1 || len(lines[0].Tokens) != 1 {
				t.Fatalf("Lines() = %+v, want one token", lines)
			}
			tok := lines[0].Tokens[0]
			if tok.Kind != TokenName || tok.Text != tt.want {
				t.Errorf("token = %v %q, want name %q", tok.Kind, tok.Text, tt.want)
			}
		})
	}
}

func TestLexer_Labels(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{`(Hello World!)`, "Hello World!"},
		{`(some \(parenthesized\) words)`, "some (parenthesized) words"},
		{`(foo\\bar)`, `foo\bar`},
		{"(hello\nworld)", "hello\nworld"},
		{`(a # not a comment)`, "a # not a comment"},
	}
	for _, tt := range tests {
		lines := lexLines(t, "x "+tt.src)
		toks := lines[0].Tokens
		if len(toks) != 2 || toks[1].Kind != TokenLabel || toks[1].Text != tt.want {
			t.Errorf("lex %q = %+v, want label %q", tt.src, toks, tt.want)
		}
	}
}

func TestLexer_LineStructure(t *testing.T) {
	src := "# whole-line comment\r\n" +
		"person John\r\n" +
		"  age: 36 # line-end comment\r\n" +
		"\r\n" +
		"   # indented comment\n" +
		"\t\n" +
		"  name: \"John Smith\"\n" +
		"company \"Acme Corporation\", \"Some Startup\""

	lines := lexLines(t, src)
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4: %+v", len(lines), lines)
	}

	want := []struct {
		kind  LineKind
		num   int
		texts []string
	}{
		{LineFact, 2, []string{"person", "John"}},
		{LineAttr, 3, []string{"age", ":", "36"}},
		{LineAttr, 7, []string{"name", ":", "John Smith"}},
		{LineFact, 8, []string{"company", "Acme Corporation", ",", "Some Startup"}},
	}
	for i, w := range want {
		if lines[i].Kind != w.kind {
			t.Errorf("line %d Kind = %v, want %v", i, lines[i].Kind, w.kind)
		}
		if lines[i].Num != w.num {
			t.Errorf("line %d Num = %d, want %d", i, lines[i].Num, w.num)
		}
		if got := texts(lines[i].Tokens); !slices.Equal(got, w.texts) {
			t.Errorf("line %d tokens = %q, want %q", i, got, w.texts)
		}
	}
}

func TestLexer_AttributeValues(t *testing.T) {
	tests := []struct {
		src  string
		want []string
	}{
		{"x\n  hello: world\n", []string{"hello", ":", "world"}},
		{"x\n  hello: brave: new world\n", []string{"hello", ":", "brave: new world"}},
		{"x\n  hello: this world   # comment\n", []string{"hello", ":", "this world"}},
		{"x\n  hello: world# comment\n", []string{"hello", ":", "world"}},
		{"x\n  label: \\N\\n\\G\n", []string{"label", ":", `\N\n\G`}},
		{"x\n  label: \"\"\n", []string{"label", ":", ""}},
		{"x\n  \"font name\": Liberation Sans\t \n", []string{"font name", ":", "Liberation Sans"}},
		{"x\n  hello world\n", []string{"hello", "world"}},
		{"x\n  hello:\n", []string{"hello", ":"}},
	}
	for _, tt := range tests {
		lines := lexLines(t, tt.src)
		if len(lines) != 2 || lines[1].Kind != LineAttr {
			t.Fatalf("lex %q = %+v, want fact and attribute line", tt.src, lines)
		}
		if got := texts(lines[1].Tokens); !slices.Equal(got, tt.want) {
			t.Errorf("lex %q = %q, want %q", tt.src, got, tt.want)
		}
	}
}

func TestLexer_MultilineTokenKeepsStartLine(t *testing.T) {
	src := "note \"\"\"first\nsecond\"\"\"\nclass Foo\n"
	lines := lexLines(t, src)
	if len(lines) != 2 {
		t.Fatalf("got %d lines, want 2", len(lines))
	}
	if lines[0].Num != 1 || lines[1].Num != 3 {
		t.Errorf("line numbers = %d, %d, want 1, 3", lines[0].Num, lines[1].Num)
	}
}

func TestLexer_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"line break in quoted string", "x \"hello\nworld\"\n", 1},
		{"unterminated quoted string", `x "hello`, 1},
		{"unterminated triple quote", "x\ny \"\"\"hello\nworld\n", 2},
		{"unterminated label", "x (hello", 1},
		{"escape at end of input", `x "abc\`, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLexer("test", []byte(tt.src)).Lines()
			if !errors.Is(err, errors.ErrCodeLexical) {
				t.Fatalf("Lines() error = %v, want %s", err, errors.ErrCodeLexical)
			}
			if got := errors.GetPos(err); got.Line != tt.line || got.Source != "test" {
				t.Errorf("error pos = %v, want test:%d", got, tt.line)
			}
		})
	}
}
