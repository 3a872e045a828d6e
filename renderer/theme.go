package renderer

import "strings"

// BackgroundKind selects how a theme paints the slide canvas.
type BackgroundKind int

const (
	BackgroundSolid BackgroundKind = iota
	BackgroundGradient
)

// Background describes the canvas treatment. Colors are RRGGBB hex strings;
// ColorEnd is only read for gradients.
type Background struct {
	Kind     BackgroundKind
	Color    string
	ColorEnd string
}

// Theme is a named palette applied uniformly across a rendered deck.
// OverlayColor and OverlayOpacity drive the darkening scrim placed over
// image-backed slides so text stays legible.
type Theme struct {
	Name            string
	Background      Background
	TitleColor      string
	BodyColor       string
	Accent          string
	SecondaryAccent string
	BulletColor     string
	OverlayColor    string
	OverlayOpacity  float64
}

// DefaultThemeName is used whenever a requested theme is unknown.
const DefaultThemeName = "corporate-blue"

var builtinThemes = []Theme{
	{
		Name:            "corporate-blue",
		Background:      Background{Kind: BackgroundGradient, Color: "0F2D52", ColorEnd: "1E6091"},
		TitleColor:      "FFFFFF",
		BodyColor:       "DCE7F5",
		Accent:          "4CC9F0",
		SecondaryAccent: "90E0EF",
		BulletColor:     "4CC9F0",
		OverlayColor:    "061120",
		OverlayOpacity:  0.55,
	},
	{
		Name:            "midnight-violet",
		Background:      Background{Kind: BackgroundGradient, Color: "10002B", ColorEnd: "3C096C"},
		TitleColor:      "FFFFFF",
		BodyColor:       "E0CFFC",
		Accent:          "9D4EDD",
		SecondaryAccent: "C77DFF",
		BulletColor:     "C77DFF",
		OverlayColor:    "0A0118",
		OverlayOpacity:  0.6,
	},
	{
		Name:            "forest-green",
		Background:      Background{Kind: BackgroundGradient, Color: "081C15", ColorEnd: "2D6A4F"},
		TitleColor:      "FFFFFF",
		BodyColor:       "D8F3DC",
		Accent:          "95D5B2",
		SecondaryAccent: "74C69D",
		BulletColor:     "95D5B2",
		OverlayColor:    "03120C",
		OverlayOpacity:  0.55,
	},
	{
		Name:            "sunset-ember",
		Background:      Background{Kind: BackgroundGradient, Color: "9D0208", ColorEnd: "F48C06"},
		TitleColor:      "FFFFFF",
		BodyColor:       "FFEDD8",
		Accent:          "FFBA08",
		SecondaryAccent: "FAA307",
		BulletColor:     "FFBA08",
		OverlayColor:    "370617",
		OverlayOpacity:  0.5,
	},
	{
		Name:            "slate-minimal",
		Background:      Background{Kind: BackgroundSolid, Color: "F4F6F8"},
		TitleColor:      "111827",
		BodyColor:       "374151",
		Accent:          "2563EB",
		SecondaryAccent: "93C5FD",
		BulletColor:     "2563EB",
		OverlayColor:    "111827",
		OverlayOpacity:  0.55,
	},
	{
		Name:            "ocean-teal",
		Background:      Background{Kind: BackgroundGradient, Color: "042F3C", ColorEnd: "0F766E"},
		TitleColor:      "FFFFFF",
		BodyColor:       "CCFBF1",
		Accent:          "2DD4BF",
		SecondaryAccent: "5EEAD4",
		BulletColor:     "2DD4BF",
		OverlayColor:    "022229",
		OverlayOpacity:  0.55,
	},
}

var themesByName = buildThemeIndex()

func buildThemeIndex() map[string]Theme {
	idx := make(map[string]Theme, len(builtinThemes))
	for _, th := range builtinThemes {
		idx[th.Name] = th
	}
	return idx
}

// ByName resolves a theme name, falling back to the default theme for any
// unknown name. It never fails.
func ByName(name string) Theme {
	if th, ok := themesByName[strings.ToLower(strings.TrimSpace(name))]; ok {
		return th
	}
	return themesByName[DefaultThemeName]
}

// Names lists the built-in theme names in declaration order, default first.
func Names() []string {
	names := make([]string, len(builtinThemes))
	for i, th := range builtinThemes {
		names[i] = th.Name
	}
	return names
}
