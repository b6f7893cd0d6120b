package fetchimage

import (
	"fmt"
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
)

// Fit controls how an image is scaled when rendered into a box.
type Fit int

const (
	// FitContain scales the image to fit within the box while keeping the
	// aspect ratio. This is the zero value, making it the default.
	FitContain Fit = iota
	// FitFill stretches the image to fill the box (may distort).
	FitFill
	// FitCover scales the image to cover the box while keeping the aspect
	// ratio (may crop).
	FitCover
	// FitNone keeps the image at its intrinsic size.
	FitNone
	// FitScaleDown is like FitContain, but never scales up.
	FitScaleDown
)

// String returns a human-readable representation of the fit mode.
func (f Fit) String() string {
	switch f {
	case FitContain:
		return "contain"
	case FitFill:
		return "fill"
	case FitCover:
		return "cover"
	case FitNone:
		return "none"
	case FitScaleDown:
		return "scale_down"
	default:
		return fmt.Sprintf("Fit(%d)", int(f))
	}
}

// ImageView is a read-only renderable projection of a controller's current
// image, the handle a UI layer hands to whatever draws it. The zero value
// is an empty view.
type ImageView struct {
	source image.Image
}

// Empty reports whether the view holds no image.
func (v ImageView) Empty() bool {
	return v.source == nil
}

// Source returns the underlying image, or nil for an empty view.
func (v ImageView) Source() image.Image {
	return v.source
}

// RGBA returns the image converted to RGBA, reusing the backing store when
// the source already is one. Returns nil for an empty view.
func (v ImageView) RGBA() *image.RGBA {
	if v.source == nil {
		return nil
	}
	if rgba, ok := v.source.(*image.RGBA); ok {
		return rgba
	}
	bounds := v.source.Bounds()
	if bounds.Empty() {
		return nil
	}
	rgba := image.NewRGBA(bounds)
	draw.Draw(rgba, bounds, v.source, bounds.Min, draw.Src)
	return rgba
}

// Scaled renders the image into a width x height RGBA canvas using the
// given fit mode, centered. Returns nil for an empty view or non-positive
// dimensions.
func (v ImageView) Scaled(width, height int, fit Fit) *image.RGBA {
	if v.source == nil || width <= 0 || height <= 0 {
		return nil
	}
	bounds := v.source.Bounds()
	iw, ih := bounds.Dx(), bounds.Dy()
	if iw <= 0 || ih <= 0 {
		return nil
	}

	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	srcRect, dstRect := fitRects(fit, bounds, width, height)
	if srcRect.Empty() || dstRect.Empty() {
		return dst
	}
	xdraw.ApproxBiLinear.Scale(dst, dstRect, v.source, srcRect, xdraw.Src, nil)
	return dst
}

// fitRects computes the source and destination rectangles for rendering an
// image with the given intrinsic bounds into a width x height box.
func fitRects(fit Fit, bounds image.Rectangle, width, height int) (src, dst image.Rectangle) {
	iw, ih := float64(bounds.Dx()), float64(bounds.Dy())
	bw, bh := float64(width), float64(height)

	switch fit {
	case FitFill:
		return bounds, image.Rect(0, 0, width, height)

	case FitContain, FitScaleDown:
		scale := math.Min(bw/iw, bh/ih)
		if fit == FitScaleDown && scale > 1 {
			scale = 1
		}
		w := int(math.Round(iw * scale))
		h := int(math.Round(ih * scale))
		x := (width - w) / 2
		y := (height - h) / 2
		return bounds, image.Rect(x, y, x+w, y+h)

	case FitCover:
		scale := math.Max(bw/iw, bh/ih)
		srcW := bw / scale
		srcH := bh / scale
		sx := float64(bounds.Min.X) + (iw-srcW)/2
		sy := float64(bounds.Min.Y) + (ih-srcH)/2
		src = image.Rect(
			int(math.Round(sx)), int(math.Round(sy)),
			int(math.Round(sx+srcW)), int(math.Round(sy+srcH)),
		)
		return src, image.Rect(0, 0, width, height)

	case FitNone:
		x := (width - bounds.Dx()) / 2
		y := (height - bounds.Dy()) / 2
		return bounds, image.Rect(x, y, x+bounds.Dx(), y+bounds.Dy())
	}
	return bounds, image.Rect(0, 0, width, height)
}
