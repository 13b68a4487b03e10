package render

import (
	"bytes"
	"context"
	"testing"
)

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?>` + "\n" +
		`<svg width="62pt" height="116pt" viewBox="0.00 0.00 62.00 116.00" xmlns="http://www.w3.org/2000/svg">` +
		`<g id="graph0"></g></svg>`)
	got := normalizeViewBox(in)

	want := `<svg xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink" viewBox="0 0 62.00 116.00" width="62" height="116">`
	if !bytes.Contains(got, []byte(want)) {
		t.Errorf("normalizeViewBox() = %s, want root %s", got, want)
	}
	if !bytes.HasPrefix(got, []byte(`<?xml version="1.0"?>`)) {
		t.Errorf("normalizeViewBox() dropped the prolog: %s", got)
	}
	if !bytes.HasSuffix(got, []byte(`<g id="graph0"></g></svg>`)) {
		t.Errorf("normalizeViewBox() changed the body: %s", got)
	}
}

func TestNormalizeViewBox_Unchanged(t *testing.T) {
	for _, in := range []string{
		`<svg width="10" height="10"></svg>`,
		`<svg viewBox="0 0 0 10"></svg>`,
	} {
		if got := normalizeViewBox([]byte(in)); string(got) != in {
			t.Errorf("normalizeViewBox(%s) = %s, want unchanged", in, got)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	dot := ToDOT(sampleGraph(t), Options{})
	svg, err := RenderSVG(context.Background(), dot)
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	for _, want := range []string{"<svg", "clusterpkg", "uses"} {
		if !bytes.Contains(svg, []byte(want)) {
			t.Errorf("RenderSVG() output lacks %q", want)
		}
	}
}

func TestRenderSVG_KeywordNames(t *testing.T) {
	svg, err := RenderSVG(context.Background(), ToDOT(keywordGraph(t), Options{}))
	if err != nil {
		t.Fatalf("RenderSVG() error: %v", err)
	}
	for _, want := range []string{"<title>Node</title>", "<title>Edge</title>"} {
		if !bytes.Contains(svg, []byte(want)) {
			t.Errorf("RenderSVG() output lacks %q", want)
		}
	}
}

func TestRenderSVG_InvalidDOT(t *testing.T) {
	if _, err := RenderSVG(context.Background(), "digraph {"); err == nil {
		t.Error("RenderSVG() expected an error for truncated DOT")
	}
}
