package circuitfile

import (
	"testing"

	"github.com/dbernard/digisim/core"
)

const xorDoc = `
top: XOR
composites:
  - name: NAND
    spec:
      children:
        - kind: AND
          names: [a1]
        - kind: NOT
          names: [n1]
      ports:
        - name: in1
          alias: {child: a1, port: in1}
        - name: in2
          alias: {child: a1, port: in2}
        - name: out1
          alias: {child: n1, port: out1}
      wires:
        - from: {child: a1, port: out1}
          to: {child: n1, port: in1}
  - name: XOR
    spec:
      children:
        - kind: NAND
          names: [na1]
        - kind: OR
          names: [o1]
        - kind: AND
          names: [a1]
        - kind: BRIDGE
          names: [b1, b2]
      ports:
        - name: in1
          alias: {child: b1, port: in1}
        - name: in2
          alias: {child: b2, port: in1}
        - name: out1
          alias: {child: a1, port: out1}
      wires:
        - from: {child: b1, port: out1}
          to: {child: na1, port: in1}
        - from: {child: b1, port: out1}
          to: {child: o1, port: in2}
        - from: {child: b2, port: out1}
          to: {child: na1, port: in2}
        - from: {child: b2, port: out1}
          to: {child: o1, port: in1}
        - from: {child: na1, port: out1}
          to: {child: a1, port: in1}
        - from: {child: o1, port: out1}
          to: {child: a1, port: in2}
`

func TestParseAndBuildXorDocument(t *testing.T) {
	doc, err := Parse([]byte(xorDoc))
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if doc.Top != "XOR" {
		t.Fatalf("Top = %q, want XOR", doc.Top)
	}
	if len(doc.Composites) != 2 {
		t.Fatalf("len(Composites) = %d, want 2", len(doc.Composites))
	}

	reg := core.NewRegistry()
	c, err := doc.Build(reg)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	tests := []struct{ a, b, want int }{
		{0, 0, 0}, {1, 0, 1}, {0, 1, 1}, {1, 1, 0},
	}
	for _, tt := range tests {
		out, err := core.RunDefault(c, map[string]int{"in1": tt.a, "in2": tt.b})
		if err != nil {
			t.Fatalf("Run: %v", err)
		}
		if out["out1"] != tt.want {
			t.Errorf("XOR(%d,%d) = %d, want %d", tt.a, tt.b, out["out1"], tt.want)
		}
	}
}

func TestParseRejectsMalformedYAML(t *testing.T) {
	_, err := Parse([]byte("top: [unterminated"))
	if err == nil {
		t.Fatal("expected parse error for malformed YAML")
	}
}
