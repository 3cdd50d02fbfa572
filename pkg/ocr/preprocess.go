package ocr

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"path/filepath"

	"github.com/disintegration/imaging"
)

const (
	// Tile grid and clip factor for the title-band equalization.
	equalizeTiles      = 8
	equalizeClipFactor = 2.0
)

// Preprocess converts a tooltip screenshot into a high-contrast black and
// white bitmap for Tesseract: grayscale, clip-limited tiled histogram
// equalization of the top third (where the title sits), then a global Otsu
// threshold. Pure function; the input image is not modified.
func Preprocess(img image.Image) *image.NRGBA {
	gray := imaging.Grayscale(img)
	if band := gray.Bounds().Dy() / 3; band > 0 {
		equalizeBand(gray, band)
	}
	return binarize(gray, otsuThreshold(gray))
}

// SavePreprocessed writes the debug artifact "preprocessed_<base>" into
// dataDir and returns its path.
func SavePreprocessed(img image.Image, dataDir, base string) (string, error) {
	path := filepath.Join(dataDir, "preprocessed_"+base)
	if err := imaging.Save(img, path); err != nil {
		return "", fmt.Errorf("save preprocessed image: %w", err)
	}
	return path, nil
}

// equalizeBand applies clip-limited tiled histogram equalization in place to
// the top height rows of a grayscale NRGBA image. Each tile gets its own
// clipped-histogram mapping; pixels blend the four surrounding tile mappings
// bilinearly so tile seams do not show.
func equalizeBand(img *image.NRGBA, height int) {
	w := img.Bounds().Dx()
	if w == 0 || height == 0 {
		return
	}
	tw := (w + equalizeTiles - 1) / equalizeTiles
	th := (height + equalizeTiles - 1) / equalizeTiles
	cols := (w + tw - 1) / tw
	rows := (height + th - 1) / th

	luts := make([][256]uint8, rows*cols)
	for ty := 0; ty < rows; ty++ {
		for tx := 0; tx < cols; tx++ {
			var hist [256]int
			x0, y0 := tx*tw, ty*th
			x1, y1 := x0+tw, y0+th
			if x1 > w {
				x1 = w
			}
			if y1 > height {
				y1 = height
			}
			n := 0
			for y := y0; y < y1; y++ {
				for x := x0; x < x1; x++ {
					hist[img.Pix[y*img.Stride+x*4]]++
					n++
				}
			}
			if n == 0 {
				continue
			}
			clip := int(equalizeClipFactor * float64(n) / 256.0)
			if clip < 1 {
				clip = 1
			}
			excess := 0
			for i := range hist {
				if hist[i] > clip {
					excess += hist[i] - clip
					hist[i] = clip
				}
			}
			share := excess / 256
			cum := 0
			lut := &luts[ty*cols+tx]
			for i := range hist {
				cum += hist[i] + share
				v := cum * 255 / n
				if v > 255 {
					v = 255
				}
				lut[i] = uint8(v)
			}
		}
	}

	for y := 0; y < height; y++ {
		gy := (float64(y)+0.5)/float64(th) - 0.5
		ty0 := int(math.Floor(gy))
		wy := gy - float64(ty0)
		ty1 := ty0 + 1
		if ty0 < 0 {
			ty0, wy = 0, 0
		}
		if ty1 > rows-1 {
			ty1 = rows - 1
		}
		if ty0 > rows-1 {
			ty0 = rows - 1
		}
		for x := 0; x < w; x++ {
			gx := (float64(x)+0.5)/float64(tw) - 0.5
			tx0 := int(math.Floor(gx))
			wx := gx - float64(tx0)
			tx1 := tx0 + 1
			if tx0 < 0 {
				tx0, wx = 0, 0
			}
			if tx1 > cols-1 {
				tx1 = cols - 1
			}
			if tx0 > cols-1 {
				tx0 = cols - 1
			}
			i := y*img.Stride + x*4
			v := img.Pix[i]
			top := (1-wx)*float64(luts[ty0*cols+tx0][v]) + wx*float64(luts[ty0*cols+tx1][v])
			bot := (1-wx)*float64(luts[ty1*cols+tx0][v]) + wx*float64(luts[ty1*cols+tx1][v])
			out := uint8((1-wy)*top + wy*bot)
			img.Pix[i] = out
			img.Pix[i+1] = out
			img.Pix[i+2] = out
		}
	}
}

// otsuThreshold picks the global threshold maximizing between-class variance
// of the grayscale histogram.
func otsuThreshold(img image.Image) uint8 {
	var hist [256]int
	b := img.Bounds()
	total := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bb, _ := img.At(x, y).RGBA()
			hist[uint8((r+g+bb)/3>>8)]++
			total++
		}
	}
	if total == 0 {
		return 0
	}
	sum := 0
	for i, c := range hist {
		sum += i * c
	}
	best := 0
	bestVar := -1.0
	sumB, wB := 0, 0
	for t := 0; t < 256; t++ {
		wB += hist[t]
		if wB == 0 {
			continue
		}
		wF := total - wB
		if wF == 0 {
			break
		}
		sumB += t * hist[t]
		mB := float64(sumB) / float64(wB)
		mF := float64(sum-sumB) / float64(wF)
		v := float64(wB) * float64(wF) * (mB - mF) * (mB - mF)
		if v > bestVar {
			bestVar, best = v, t
		}
	}
	return uint8(best)
}

// binarize performs a simple global threshold on a grayscale image.
func binarize(img image.Image, threshold uint8) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bb, _ := img.At(x, y).RGBA()
			gray := uint8((r + g + bb) / 3 >> 8)
			var v uint8 = 255
			if gray <= threshold {
				v = 0
			}
			out.Set(x, y, color.NRGBA{R: v, G: v, B: v, A: 255})
		}
	}
	return out
}
