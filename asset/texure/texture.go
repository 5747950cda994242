package texture

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"reflect"
	"unsafe"

	"github.com/achilleasa/go-pathtrace/asset"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// A texture image and its metadata.
type Texture struct {
	Format Format

	Width  uint32
	Height uint32

	Data []byte
}

// Create a new texture from a Resource, decoding it via the standard
// library's registered image.Decode formats plus the golang.org/x/image
// bmp/tiff decoders. Images decoded as *image.Gray are kept as Luminance8
// and *image.NRGBA as Rgba8; every other pixel model (including opaque
// 8-bit RGBA, JPEG YCbCr, paletted and 16-bit images) is converted to
// Rgba32F. Luminance32F is never produced.
func New(res *asset.Resource) (*Texture, error) {
	img, _, err := image.Decode(res)
	if err != nil {
		return nil, fmt.Errorf("texture: could not decode %s: %s", res.Path(), err.Error())
	}

	bounds := img.Bounds()
	w, h := uint32(bounds.Dx()), uint32(bounds.Dy())

	switch src := img.(type) {
	case *image.Gray:
		return &Texture{Format: Luminance8, Width: w, Height: h, Data: append([]byte(nil), src.Pix...)}, nil

	case *image.NRGBA:
		return &Texture{Format: Rgba8, Width: w, Height: h, Data: rgba8FromNRGBA(src)}, nil

	default:
		return &Texture{Format: Rgba32F, Width: w, Height: h, Data: rgba32FFromImage(img, bounds)}, nil
	}
}

// rgba8FromNRGBA repacks an *image.NRGBA's pixel buffer into a
// tightly-packed RGBA8 slice (png.Decode may return a larger stride than
// width*4 for sub-images).
func rgba8FromNRGBA(src *image.NRGBA) []byte {
	bounds := src.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	data := make([]byte, w*h*4)
	for y := 0; y < h; y++ {
		srcOff := src.PixOffset(bounds.Min.X, bounds.Min.Y+y)
		copy(data[y*w*4:(y+1)*w*4], src.Pix[srcOff:srcOff+w*4])
	}
	return data
}

// rgba32FFromImage converts any image.Image (16-bit sources, paletted
// images, or formats with no dedicated fast path above) into a flat,
// row-major []float32 RGBA buffer, reinterpreted as a []byte.
func rgba32FFromImage(img image.Image, bounds image.Rectangle) []byte {
	w, h := bounds.Dx(), bounds.Dy()
	data := make([]float32, w*h*4)
	idx := 0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, a := img.At(x, y).RGBA()
			data[idx+0] = float32(r) / 65535
			data[idx+1] = float32(g) / 65535
			data[idx+2] = float32(b) / 65535
			data[idx+3] = float32(a) / 65535
			idx += 4
		}
	}

	// Fetch slice header and adjust len/capacity (1 float32 = 4 bytes).
	header := *(*reflect.SliceHeader)(unsafe.Pointer(&data))
	header.Len <<= 2
	header.Cap <<= 2
	return *(*[]byte)(unsafe.Pointer(&header))
}
