package ocr

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

const (
	// MinDimension is the size below which either side triggers an upscale.
	MinDimension = 800
	// UpscaleFactor is applied to both sides of small images.
	UpscaleFactor = 2
	// ContrastFactor scales each pixel's distance from the mean luminance.
	ContrastFactor = 2.0
)

// sharpenKernel is the 3x3 SHARPEN filter, normalised by sharpenScale.
var sharpenKernel = [9]int{
	-2, -2, -2,
	-2, 32, -2,
	-2, -2, -2,
}

const sharpenScale = 16

// Lanczos3 is a three-lobe Lanczos resampling kernel.
var Lanczos3 = &draw.Kernel{Support: 3, At: lanczos3}

func lanczos3(t float64) float64 {
	if t < 0 {
		t = -t
	}
	if t == 0 {
		return 1
	}
	if t >= 3 {
		return 0
	}
	pt := math.Pi * t
	return 3 * math.Sin(pt) * math.Sin(pt/3) / (pt * pt)
}

// Preprocess turns a decoded screenshot into the grayscale image handed to
// the OCR engine: luminance, sharpen, contrast x2, then a x2 Lanczos upscale
// when either side is under MinDimension. The input is not modified.
func Preprocess(img image.Image) *image.Gray {
	g := Grayscale(img)
	g = Sharpen(g)
	g = EnhanceContrast(g, ContrastFactor)
	return UpscaleIfSmall(g)
}

// Grayscale converts img to 8-bit luminance using ITU-R 601-2 weights on the
// straight (non-premultiplied) colour channels. The result has a zero origin.
func Grayscale(img image.Image) *image.Gray {
	b := img.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))

	if src, ok := img.(*image.Gray); ok {
		for y := 0; y < b.Dy(); y++ {
			i := src.PixOffset(b.Min.X, b.Min.Y+y)
			copy(out.Pix[y*out.Stride:y*out.Stride+b.Dx()], src.Pix[i:i+b.Dx()])
		}
		return out
	}

	for y := b.Min.Y; y < b.Max.Y; y++ {
		row := (y - b.Min.Y) * out.Stride
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(img.At(x, y)).(color.NRGBA)
			out.Pix[row+x-b.Min.X] = luma(c.R, c.G, c.B)
		}
	}
	return out
}

func luma(r, g, b uint8) uint8 {
	return uint8((19595*uint32(r) + 38470*uint32(g) + 7471*uint32(b) + 0x8000) >> 16)
}

// Sharpen applies the SHARPEN kernel. Border pixels are copied unchanged.
func Sharpen(src *image.Gray) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		i := src.PixOffset(b.Min.X, b.Min.Y+y)
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+w], src.Pix[i:i+w])
	}
	if w < 3 || h < 3 {
		return dst
	}

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			sum, k := 0, 0
			for dy := -1; dy <= 1; dy++ {
				row := src.PixOffset(b.Min.X+x, b.Min.Y+y+dy)
				for dx := -1; dx <= 1; dx++ {
					sum += sharpenKernel[k] * int(src.Pix[row+dx])
					k++
				}
			}
			// arithmetic shift floors negatives, which clamp to zero anyway
			dst.Pix[y*dst.Stride+x] = clamp8((sum + sharpenScale/2) >> 4)
		}
	}
	return dst
}

// EnhanceContrast moves every pixel away from the rounded mean luminance by
// factor. A factor of 1 returns an identical copy.
func EnhanceContrast(src *image.Gray, factor float64) *image.Gray {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewGray(image.Rect(0, 0, w, h))
	if w == 0 || h == 0 {
		return dst
	}

	var sum uint64
	for y := 0; y < h; y++ {
		i := src.PixOffset(b.Min.X, b.Min.Y+y)
		for _, v := range src.Pix[i : i+w] {
			sum += uint64(v)
		}
	}
	mean := float64(int(float64(sum)/float64(w*h) + 0.5))

	var lut [256]uint8
	for v := range lut {
		lut[v] = clamp8(int(math.Round(mean + factor*(float64(v)-mean))))
	}

	for y := 0; y < h; y++ {
		i := src.PixOffset(b.Min.X, b.Min.Y+y)
		row := dst.Pix[y*dst.Stride : y*dst.Stride+w]
		for x, v := range src.Pix[i : i+w] {
			row[x] = lut[v]
		}
	}
	return dst
}

// UpscaleIfSmall returns src unchanged when both sides are at least
// MinDimension, otherwise a Lanczos-3 resample to exactly UpscaleFactor times
// each side.
func UpscaleIfSmall(src *image.Gray) *image.Gray {
	b := src.Bounds()
	if b.Dx() >= MinDimension && b.Dy() >= MinDimension {
		return src
	}
	dst := image.NewGray(image.Rect(0, 0, b.Dx()*UpscaleFactor, b.Dy()*UpscaleFactor))
	Lanczos3.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

func clamp8(v int) uint8 {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return uint8(v)
	}
}
