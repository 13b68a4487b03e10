package types

import (
	"testing"
)

const diamond = `node-type A
  color: black
  shape: box
  fontsize: 8
node-type B is-a A
  color: blue
  fontsize: 10
node-type C is-a A
  color: red
  style: bold
  fontsize: 12
node-type D is-a B, C
  fontsize: 14
`

func TestResolver_Diamond(t *testing.T) {
	res := NewResolver(closed(t, diamond))

	got, err := res.Attrs("D")
	if err != nil {
		t.Fatalf("Attrs(D) error: %v", err)
	}
	want := map[string]string{
		"color":    "blue", // B precedes C
		"shape":    "box",  // only A
		"style":    "bold", // only C
		"fontsize": "14",   // D itself
	}
	if got.Len() != len(want) {
		t.Errorf("Attrs(D) = %v, want %v", got, want)
	}
	for k, v := range want {
		if g, _ := got.Get(k); g != v {
			t.Errorf("Attrs(D)[%s] = %q, want %q", k, g, v)
		}
	}
}

func TestResolver_DeclarationOrderInvariance(t *testing.T) {
	orders := []string{
		"node-type A\n  k: a\n  x: a\nnode-type B is-a A\n  k: b\nnode-type C is-a B\n",
		"node-type C is-a B\nnode-type B is-a A\n  k: b\nnode-type A\n  k: a\n  x: a\n",
		"node-type B is-a A\n  k: b\nnode-type C is-a B\nnode-type A\n  k: a\n  x: a\n",
	}
	for i, src := range orders {
		res := NewResolver(closed(t, src))
		got, err := res.Attrs("C")
		if err != nil {
			t.Fatalf("order %d: Attrs(C) error: %v", i, err)
		}
		if got.String() != "k=b, x=a" && got.String() != "x=a, k=b" {
			t.Errorf("order %d: Attrs(C) = %v, want k=b, x=a", i, got)
		}
	}
}

func TestResolver_AttrsReturnsCopy(t *testing.T) {
	res := NewResolver(closed(t, "node-type A\n  color: red\n"))
	a, _ := res.Attrs("A")
	a.Set("color", "green")

	b, _ := res.Attrs("A")
	if got, _ := b.Get("color"); got != "red" {
		t.Errorf("memoised attributes changed through a returned copy: %q", got)
	}
}

func TestResolver_Label(t *testing.T) {
	src := `element-type element
  label: \N
node-type class is-a element
node-type note is-a element
  label: ""
node-type sticky is-a note
node-type plain
node-type titled is-a class
  label: \N in \G
`
	res := NewResolver(closed(t, src))

	tests := []struct {
		name   string
		want   string
		wantOK bool
	}{
		{"element", `\N`, true},
		{"class", `\N`, true},
		{"note", "", true},
		{"sticky", "", true},
		{"plain", "", false},
		{"titled", `\N in \G`, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := res.Label(tt.name)
			if err != nil {
				t.Fatalf("Label() error: %v", err)
			}
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Label(%s) = %q, %v, want %q, %v", tt.name, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestResolver_UnknownType(t *testing.T) {
	res := NewResolver(closed(t, "node-type A\n"))
	if _, err := res.Attrs("B"); err == nil {
		t.Error("Attrs(B) should fail for an unknown type")
	}
	if _, _, err := res.Label("B"); err == nil {
		t.Error("Label(B) should fail for an unknown type")
	}
}
