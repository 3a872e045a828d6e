package renderer

import (
	"fmt"
	"strconv"

	ppt "github.com/VantageDataChat/GoPPT"
)

// The writer only supports solid shape fills, so gradients and scrims are
// painted as stacks of thin solid bands.
const (
	gradientBands = 24
	scrimBands    = 8
)

// argb prefixes an RRGGBB color with a full-opacity alpha byte.
func argb(rgb string) string {
	return "FF" + rgb
}

// argbAlpha prefixes an RRGGBB color with the alpha byte for the given
// opacity in [0,1].
func argbAlpha(rgb string, opacity float64) string {
	if opacity < 0 {
		opacity = 0
	}
	if opacity > 1 {
		opacity = 1
	}
	return fmt.Sprintf("%02X%s", int(opacity*255+0.5), rgb)
}

func parseChannel(hex string) int {
	v, err := strconv.ParseUint(hex, 16, 16)
	if err != nil {
		return 0
	}
	return int(v)
}

// blendRGB linearly interpolates two RRGGBB colors at position t in [0,1].
func blendRGB(from, to string, t float64) string {
	if len(from) != 6 || len(to) != 6 {
		return from
	}
	var out [3]int
	for i := 0; i < 3; i++ {
		a := parseChannel(from[i*2 : i*2+2])
		b := parseChannel(to[i*2 : i*2+2])
		out[i] = a + int(float64(b-a)*t+0.5)
	}
	return fmt.Sprintf("%02X%02X%02X", out[0], out[1], out[2])
}

// paintRect draws one solid rectangle.
func paintRect(slide *ppt.Slide, fill string, x, y, w, h int64) {
	rect := slide.CreateRichTextShape()
	rect.SetOffsetX(x).SetOffsetY(y)
	rect.SetWidth(w).SetHeight(h)
	rect.SetFill(solidFill(fill))
}

// paintGradient fills a region with a vertical two-color gradient.
func paintGradient(slide *ppt.Slide, from, to string, x, y, w, h int64) {
	bandH := h / gradientBands
	for i := 0; i < gradientBands; i++ {
		t := float64(i) / float64(gradientBands-1)
		by := y + int64(i)*bandH
		bh := bandH
		if i == gradientBands-1 {
			bh = y + h - by
		}
		paintRect(slide, argb(blendRGB(from, to, t)), x, by, w, bh)
	}
}

// paintThemeBackground covers the full canvas with the theme background.
func paintThemeBackground(slide *ppt.Slide, th Theme) {
	if th.Background.Kind == BackgroundGradient {
		paintGradient(slide, th.Background.Color, th.Background.ColorEnd, 0, 0, slideWidthEMU, slideHeightEMU)
		return
	}
	paintRect(slide, argb(th.Background.Color), 0, 0, slideWidthEMU, slideHeightEMU)
}

// paintScrim lays a darkening ramp over an image region, light at the top
// and strongest at the bottom, so overlaid text stays readable on any photo.
func paintScrim(slide *ppt.Slide, th Theme, x, y, w, h int64) {
	bandH := h / scrimBands
	for i := 0; i < scrimBands; i++ {
		t := float64(i) / float64(scrimBands-1)
		opacity := th.OverlayOpacity * (0.2 + 0.8*t)
		by := y + int64(i)*bandH
		bh := bandH
		if i == scrimBands-1 {
			bh = y + h - by
		}
		paintRect(slide, argbAlpha(th.OverlayColor, opacity), x, by, w, bh)
	}
}
