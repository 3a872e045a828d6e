package renderer

import "testing"

func TestSelectLayoutPriorityOrder(t *testing.T) {
	cases := []struct {
		name       string
		index      int
		total      int
		hasImage   bool
		pointCount int
		want       Layout
	}{
		{"opening slide always full image", 0, 5, false, 4, LayoutFullImageTitle},
		{"opening slide wins over image rules", 0, 5, true, 2, LayoutFullImageTitle},
		{"single slide is the opening slide", 0, 1, false, 0, LayoutFullImageTitle},
		{"final slide is a summary", 4, 5, true, 2, LayoutCleanSummary},
		{"image with few points goes dominant", 2, 5, true, 3, LayoutImageDominant},
		{"image with many points splits right on even index", 2, 5, true, 5, LayoutSplitImageRight},
		{"image with many points splits left on odd index", 3, 6, true, 5, LayoutSplitImageLeft},
		{"no image gets gradient bullets", 2, 5, false, 5, LayoutGradientBullets},
		{"no image no points still gradient bullets", 1, 5, false, 0, LayoutGradientBullets},
	}

	for _, c := range cases {
		got := SelectLayout(c.index, c.total, c.hasImage, c.pointCount)
		if got != c.want {
			t.Errorf("%s: expected %v, got %v", c.name, c.want, got)
		}
	}
}

func TestSelectLayoutIsPure(t *testing.T) {
	first := SelectLayout(3, 8, true, 6)
	second := SelectLayout(3, 8, true, 6)
	if first != second {
		t.Errorf("Expected identical layouts for identical inputs, got %v then %v", first, second)
	}
}

func TestLayoutString(t *testing.T) {
	if LayoutCleanSummary.String() != "clean-summary" {
		t.Errorf("Expected clean-summary, got %s", LayoutCleanSummary.String())
	}
	if Layout(99).String() != "unknown" {
		t.Errorf("Expected unknown for out-of-range layout, got %s", Layout(99).String())
	}
}
