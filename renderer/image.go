package renderer

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"

	xdraw "golang.org/x/image/draw"
)

const (
	renderDPI   = 150
	maxImagePx  = 1600
	jpegQuality = 85
)

// decodeImage parses fetched bytes into a pixel image. JPEG, PNG and GIF are
// registered; anything else fails and the slide degrades to a non-image
// layout.
func decodeImage(data []byte) (image.Image, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// renderImageRegion crops the source to the target region's aspect ratio
// (center crop, never letterboxed), scales it to render resolution and
// re-encodes it as JPEG for embedding.
func renderImageRegion(src image.Image, wEMU, hEMU int64) ([]byte, string, error) {
	wPx := int(float64(wEMU) / emuPerInch * renderDPI)
	hPx := int(float64(hEMU) / emuPerInch * renderDPI)
	if wPx < 1 {
		wPx = 1
	}
	if hPx < 1 {
		hPx = 1
	}
	if wPx > maxImagePx {
		hPx = hPx * maxImagePx / wPx
		wPx = maxImagePx
	}
	if hPx > maxImagePx {
		wPx = wPx * maxImagePx / hPx
		hPx = maxImagePx
	}

	crop := centerCrop(src.Bounds(), float64(wEMU)/float64(hEMU))
	dst := image.NewRGBA(image.Rect(0, 0, wPx, hPx))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, crop, xdraw.Src, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, dst, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, "", fmt.Errorf("encode image: %w", err)
	}
	return buf.Bytes(), "image/jpeg", nil
}

// centerCrop returns the largest centered sub-rectangle of b matching the
// given width/height aspect ratio.
func centerCrop(b image.Rectangle, aspect float64) image.Rectangle {
	w, h := b.Dx(), b.Dy()
	if w == 0 || h == 0 {
		return b
	}
	if float64(w)/float64(h) > aspect {
		cw := int(float64(h) * aspect)
		if cw < 1 {
			cw = 1
		}
		x0 := b.Min.X + (w-cw)/2
		return image.Rect(x0, b.Min.Y, x0+cw, b.Max.Y)
	}
	ch := int(float64(w) / aspect)
	if ch < 1 {
		ch = 1
	}
	y0 := b.Min.Y + (h-ch)/2
	return image.Rect(b.Min.X, y0, b.Max.X, y0+ch)
}
