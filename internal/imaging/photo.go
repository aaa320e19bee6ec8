// Package imaging normalizes pet photos before they are stored.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"golang.org/x/image/draw"
)

// MaxDimension is the longest side a stored photo may have.
const MaxDimension = 1280

// ThumbDimension is the longest side of a list thumbnail.
const ThumbDimension = 320

// MaxUploadSize caps the raw bytes accepted for one photo.
const MaxUploadSize = 10 << 20

const jpegQuality = 85

var accepted = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// Photo is an encoded, size-limited JPEG.
type Photo struct {
	Data   []byte
	MIME   string
	Width  int
	Height int
}

// Process reads an uploaded photo, checks its format by sniffing the
// bytes, shrinks it to MaxDimension and re-encodes it as JPEG.
func Process(r io.Reader) (*Photo, error) {
	data, err := io.ReadAll(io.LimitReader(r, MaxUploadSize+1))
	if err != nil {
		return nil, fmt.Errorf("reading photo: %w", err)
	}
	if len(data) > MaxUploadSize {
		return nil, fmt.Errorf("photo exceeds %d bytes", MaxUploadSize)
	}

	if mime := http.DetectContentType(data); !accepted[mime] {
		return nil, fmt.Errorf("unsupported photo format %s (JPEG and PNG only)", mime)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding photo: %w", err)
	}

	return encode(fit(img, MaxDimension, draw.CatmullRom))
}

// Thumbnail shrinks an already processed photo so its longest side is at most limit.
func Thumbnail(data []byte, limit int) (*Photo, error) {
	img, err := jpeg.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding photo: %w", err)
	}
	return encode(fit(img, limit, draw.ApproxBiLinear))
}

func encode(img image.Image) (*Photo, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("encoding JPEG: %w", err)
	}
	b := img.Bounds()
	return &Photo{
		Data:   buf.Bytes(),
		MIME:   "image/jpeg",
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}

// fit scales img down, keeping the aspect ratio, until neither side exceeds limit.
func fit(img image.Image, limit int, scaler draw.Scaler) image.Image {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= limit && h <= limit {
		return img
	}

	nw, nh := limit, limit
	if w > h {
		nh = max(h*limit/w, 1)
	} else {
		nw = max(w*limit/h, 1)
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	scaler.Scale(dst, dst.Bounds(), img, b, draw.Over, nil)
	return dst
}
