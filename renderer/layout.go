package renderer

// Layout is the visual arrangement strategy applied to one content slide.
type Layout int

const (
	LayoutFullImageTitle Layout = iota
	LayoutSplitImageLeft
	LayoutSplitImageRight
	LayoutImageDominant
	LayoutGradientBullets
	LayoutCleanSummary
)

func (l Layout) String() string {
	switch l {
	case LayoutFullImageTitle:
		return "full-image-title"
	case LayoutSplitImageLeft:
		return "split-image-left"
	case LayoutSplitImageRight:
		return "split-image-right"
	case LayoutImageDominant:
		return "image-dominant-concept"
	case LayoutGradientBullets:
		return "gradient-background-bullets"
	case LayoutCleanSummary:
		return "clean-summary"
	}
	return "unknown"
}

// SelectLayout picks the layout for the content slide at index. The rules
// run in fixed priority order: the opening slide is always a full-image
// title, the final slide of a multi-slide deck is a clean summary, slides
// with an image go dominant when they carry three points or fewer and
// otherwise alternate image side by index parity, and everything else gets
// the gradient bullet treatment. Pure function: same inputs, same layout.
func SelectLayout(index, total int, hasImage bool, pointCount int) Layout {
	switch {
	case index == 0:
		return LayoutFullImageTitle
	case index == total-1 && total > 1:
		return LayoutCleanSummary
	case hasImage && pointCount <= 3:
		return LayoutImageDominant
	case hasImage && index%2 == 0:
		return LayoutSplitImageRight
	case hasImage:
		return LayoutSplitImageLeft
	default:
		return LayoutGradientBullets
	}
}
