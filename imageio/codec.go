// Package imageio reads and writes single images for the pose pipeline.
//
// The container is chosen by file extension: png, jpg/jpeg, gif, bmp, tif/tiff and tga are
// read and written, webp is read only. LoadImage is lenient: a file that cannot
// be read yields a nil image and a warning log instead of an error, so a missing frame does
// not abort a batch. Use DefaultCodec().Read directly when the cause matters.
package imageio

import (
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"github.com/arloliu/posefile/errs"
	"github.com/arloliu/posefile/internal/fsutil"
	"github.com/arloliu/posefile/internal/pathutil"
)

// ReadFlag selects how a decoded image is post-processed. Flags combine with |.
type ReadFlag uint8

const (
	// ReadUnchanged returns the image in the container's own color model.
	ReadUnchanged ReadFlag = 0
	// ReadGrayscale converts the image to 8-bit gray.
	ReadGrayscale ReadFlag = 1 << 0
	// ReadReduced2 scales the image down to half its width and height.
	ReadReduced2 ReadFlag = 1 << 1
	// ReadReduced4 scales the image down to a quarter of its width and height.
	ReadReduced4 ReadFlag = 1 << 2
)

const (
	defaultJPEGQuality = 95
	defaultPNGLevel    = 3
)

// Param tunes the encoder of Write.
type Param func(*writeParams)

type writeParams struct {
	jpegQuality  int
	pngLevel     int
	tiffDeflate  bool
	tiffPredict  bool
	gifNumColors int
}

// JPEGQuality sets the JPEG quality in [1, 100]. Values outside the range are clamped.
func JPEGQuality(q int) Param {
	return func(p *writeParams) {
		p.jpegQuality = min(max(q, 1), 100)
	}
}

// PNGCompression sets the PNG compression level in [0, 9]; 0 stores the image uncompressed.
func PNGCompression(level int) Param {
	return func(p *writeParams) {
		p.pngLevel = min(max(level, 0), 9)
	}
}

// TIFFDeflate enables deflate compression with the horizontal predictor for TIFF output.
func TIFFDeflate() Param {
	return func(p *writeParams) {
		p.tiffDeflate = true
		p.tiffPredict = true
	}
}

// GIFColors sets the palette size for GIF output in [1, 256].
func GIFColors(n int) Param {
	return func(p *writeParams) {
		p.gifNumColors = min(max(n, 1), 256)
	}
}

// Codec reads and writes image files.
type Codec interface {
	// Read decodes the image at path. Errors wrap errs.ErrFileNotFound, errs.ErrIO or
	// errs.ErrUnknownFormat.
	Read(path string, flags ReadFlag) (image.Image, error)
	// Write encodes img to path, replacing any existing file. Errors wrap errs.ErrIO.
	Write(path string, img image.Image, params ...Param) error
}

type fileCodec struct{}

var defaultCodec Codec = fileCodec{}

// DefaultCodec returns the extension-dispatching file codec.
func DefaultCodec() Codec {
	return defaultCodec
}

type decodeFunc func(r io.Reader) (image.Image, error)

func decoderFor(ext string) (decodeFunc, bool) {
	switch ext {
	case "png":
		return png.Decode, true
	case "jpg", "jpeg":
		return jpeg.Decode, true
	case "gif":
		return gif.Decode, true
	case "bmp":
		return bmp.Decode, true
	case "tif", "tiff":
		return tiff.Decode, true
	case "webp":
		return webp.Decode, true
	case "tga":
		return tga.Decode, true
	default:
		return nil, false
	}
}

func (fileCodec) Read(path string, flags ReadFlag) (image.Image, error) {
	decode, ok := decoderFor(pathutil.Extension(path))
	if !ok {
		return nil, fmt.Errorf("%w: no image decoder for %s", errs.ErrUnknownFormat, path)
	}

	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %w: %s", errs.ErrFileNotFound, errs.ErrIO, path)
		}

		return nil, fmt.Errorf("%w: open %s: %w", errs.ErrIO, path, err)
	}
	defer f.Close()

	img, err := decode(f)
	if err != nil {
		return nil, fmt.Errorf("%w: decode %s: %w", errs.ErrIO, path, err)
	}

	return postProcess(img, flags), nil
}

func postProcess(img image.Image, flags ReadFlag) image.Image {
	switch {
	case flags&ReadReduced4 != 0:
		img = reduce(img, 4)
	case flags&ReadReduced2 != 0:
		img = reduce(img, 2)
	}

	if flags&ReadGrayscale != 0 {
		img = grayscale(img)
	}

	return img
}

func reduce(img image.Image, factor int) image.Image {
	b := img.Bounds()
	w := max(b.Dx()/factor, 1)
	h := max(b.Dy()/factor, 1)

	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)

	return dst
}

func grayscale(img image.Image) image.Image {
	if g, ok := img.(*image.Gray); ok {
		return g
	}

	b := img.Bounds()
	dst := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)

	return dst
}

func (fileCodec) Write(path string, img image.Image, params ...Param) error {
	if img == nil {
		return fmt.Errorf("%w: image could not be saved on %s: nil image", errs.ErrIO, path)
	}

	b := img.Bounds()
	if b.Empty() {
		return fmt.Errorf("%w: image could not be saved on %s: empty bounds %v", errs.ErrIO, path, b)
	}

	p := writeParams{jpegQuality: defaultJPEGQuality, pngLevel: defaultPNGLevel, gifNumColors: 256}
	for _, param := range params {
		param(&p)
	}

	encode, err := encoderFor(pathutil.Extension(path), p)
	if err != nil {
		return fmt.Errorf("%w: image could not be saved on %s: %w", errs.ErrIO, path, err)
	}

	return fsutil.WriteWith(path, func(w io.Writer) error {
		if err := encode(w, img); err != nil {
			return fmt.Errorf("%w: encode %s: %w", errs.ErrIO, path, err)
		}

		return nil
	})
}

type encodeFunc func(w io.Writer, img image.Image) error

func encoderFor(ext string, p writeParams) (encodeFunc, error) {
	switch ext {
	case "png":
		enc := &png.Encoder{CompressionLevel: pngLevel(p.pngLevel)}
		return enc.Encode, nil
	case "jpg", "jpeg":
		return func(w io.Writer, img image.Image) error {
			return jpeg.Encode(w, img, &jpeg.Options{Quality: p.jpegQuality})
		}, nil
	case "gif":
		return func(w io.Writer, img image.Image) error {
			return gif.Encode(w, img, &gif.Options{NumColors: p.gifNumColors})
		}, nil
	case "bmp":
		return bmp.Encode, nil
	case "tif", "tiff":
		opts := &tiff.Options{Compression: tiff.Uncompressed}
		if p.tiffDeflate {
			opts = &tiff.Options{Compression: tiff.Deflate, Predictor: p.tiffPredict}
		}

		return func(w io.Writer, img image.Image) error {
			return tiff.Encode(w, img, opts)
		}, nil
	case "tga":
		return tga.Encode, nil
	default:
		return nil, fmt.Errorf("%w: no image encoder for extension %q", errs.ErrUnknownFormat, ext)
	}
}

// pngLevel maps the 0-9 scale onto the levels image/png offers.
func pngLevel(level int) png.CompressionLevel {
	switch {
	case level == 0:
		return png.NoCompression
	case level <= 3:
		return png.BestSpeed
	case level <= 6:
		return png.DefaultCompression
	default:
		return png.BestCompression
	}
}
