package loader

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/Carmen-Shannon/oxy-flycam/common"
	"github.com/cogentcore/webgpu/wgpu"
	_ "golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// textureBackend turns encoded image bytes into pixels ready for upload.
type textureBackend interface {
	// Decode reads one encoded image and converts it to tightly packed RGBA8.
	//
	// Parameters:
	//   - r: the encoded image stream
	//   - format: the GPU format recorded on the result
	//
	// Returns:
	//   - *common.TextureStagingData: the decoded pixels
	//   - error: error if the stream is not a supported image
	Decode(r io.Reader, format wgpu.TextureFormat) (*common.TextureStagingData, error)
}

// imageTextureBackend decodes anything registered with the image package: png and jpeg
// from the standard library, bmp, tiff and webp from x/image.
type imageTextureBackend struct {
	// maxSize caps the longest side; larger images are downscaled keeping their aspect. Zero disables.
	maxSize int
}

var _ textureBackend = &imageTextureBackend{}

func newImageTextureBackend(maxSize int) *imageTextureBackend {
	return &imageTextureBackend{maxSize: maxSize}
}

func (b *imageTextureBackend) Decode(r io.Reader, format wgpu.TextureFormat) (*common.TextureStagingData, error) {
	src, kind, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	sb := src.Bounds()
	if sb.Dx() == 0 || sb.Dy() == 0 {
		return nil, fmt.Errorf("decode %s image: empty bounds %v", kind, sb)
	}

	w, h := fitWithin(sb.Dx(), sb.Dy(), b.maxSize)
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	if w == sb.Dx() && h == sb.Dy() {
		xdraw.Draw(dst, dst.Bounds(), src, sb.Min, xdraw.Src)
	} else {
		xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, sb, xdraw.Src, nil)
	}

	return &common.TextureStagingData{
		Pixels: dst.Pix,
		Width:  uint32(w),
		Height: uint32(h),
		Format: format,
	}, nil
}

// fitWithin scales (w, h) down so neither side exceeds limit, keeping the aspect ratio
// and never returning a zero side.
func fitWithin(w, h, limit int) (int, int) {
	if limit <= 0 || (w <= limit && h <= limit) {
		return w, h
	}
	if w >= h {
		return limit, max(1, h*limit/w)
	}
	return max(1, w*limit/h), limit
}

// checkerTexture is the diffuse fallback: size×size pixels of cell-sized squares
// alternating between two greys.
func checkerTexture(size, cell int) *common.TextureStagingData {
	light := [4]byte{200, 200, 200, 255}
	dark := [4]byte{90, 90, 100, 255}
	pix := make([]byte, size*size*4)
	for y := range size {
		for x := range size {
			c := light
			if (x/cell+y/cell)%2 == 1 {
				c = dark
			}
			copy(pix[(y*size+x)*4:], c[:])
		}
	}
	return &common.TextureStagingData{
		Pixels: pix,
		Width:  uint32(size),
		Height: uint32(size),
		Format: wgpu.TextureFormatRGBA8UnormSrgb,
	}
}

// flatNormalTexture is the normal map fallback: every texel encodes the unperturbed
// tangent-space normal (0, 0, 1).
func flatNormalTexture() *common.TextureStagingData {
	return &common.TextureStagingData{
		Pixels: []byte{128, 128, 255, 255},
		Width:  1,
		Height: 1,
		Format: wgpu.TextureFormatRGBA8Unorm,
	}
}
