package libdiff

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/signadot/roff-format/go-roff/ir"
)

func TestDiff(t *testing.T) {
	from := ir.Document{
		ir.NewTag("a", ir.Key("x", ir.FromInt(1)), ir.Key("y", ir.FromInt(2))),
		ir.NewTag("b"),
	}
	to := ir.Document{
		ir.NewTag("a", ir.Key("x", ir.FromInt(1)), ir.Key("y", ir.FromInt(3))),
		ir.NewTag("b"),
		ir.NewTag("c", ir.Key("s", ir.FromChar("hi"))),
	}
	got := Format(Diff(from, to))
	want := `  tag a
    x int 1
-   y int 2
+   y int 3
  tag b
+ tag c
+   s char "hi"
`
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("diff mismatch (-want +got):\n%s", diff)
	}
}

func TestNoChange(t *testing.T) {
	doc := ir.Document{ir.NewTag("a", ir.Key("v", ir.FromDoubles([]float64{1, 2})))}
	cs := Diff(doc, doc)
	if Changed(cs) {
		t.Errorf("unexpected changes:\n%s", Format(cs))
	}
	if len(cs) != 2 {
		t.Errorf("expected 2 entries, got %d", len(cs))
	}
}
