package loader

import (
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"

	"github.com/Carmen-Shannon/prism/common"
	"github.com/anthonynsimon/bild/clone"
	"github.com/anthonynsimon/bild/transform"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// ErrUnsupportedFormat is returned when no registered decoder recognizes the image data.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// imageLoaderBackend decodes PNG, JPEG, BMP, TIFF and WebP images and downsizes wide panoramas.
type imageLoaderBackend struct {
	maxWidth int
}

var _ loaderBackend = &imageLoaderBackend{}

func newImageLoaderBackend(maxWidth int) *imageLoaderBackend {
	return &imageLoaderBackend{maxWidth: maxWidth}
}

func (b *imageLoaderBackend) Load(path string) (*common.TextureStagingData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open environment image: %w", err)
	}
	defer f.Close()
	return b.LoadReader(path, f)
}

func (b *imageLoaderBackend) LoadReader(name string, r io.Reader) (*common.TextureStagingData, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		if errors.Is(err, image.ErrFormat) {
			return nil, fmt.Errorf("%s: %w", name, ErrUnsupportedFormat)
		}
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}

	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	if w == 0 || h == 0 {
		return nil, fmt.Errorf("%s: empty %s image", name, format)
	}

	var rgba *image.RGBA
	if b.maxWidth > 0 && w > b.maxWidth {
		nh := max(1, h*b.maxWidth/w)
		rgba = transform.Resize(img, b.maxWidth, nh, transform.Linear)
	} else {
		rgba = clone.AsRGBA(img)
	}

	rb := rgba.Bounds()
	width, height := rb.Dx(), rb.Dy()
	pixels := make([]byte, width*height*4)
	for y := 0; y < height; y++ {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+width*4]
		copy(pixels[y*width*4:], row)
	}
	return &common.TextureStagingData{
		Name:   name,
		Pixels: pixels,
		Width:  uint32(width),
		Height: uint32(height),
	}, nil
}
