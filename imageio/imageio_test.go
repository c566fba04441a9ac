package imageio

import (
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/arloliu/posefile/errs"
	"github.com/arloliu/posefile/pkg/metrics"
)

func testImage(w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 30), G: uint8(y * 40), B: uint8((x + y) * 10), A: 0xff})
		}
	}

	return img
}

func requireSamePixels(t *testing.T, want, got image.Image) {
	t.Helper()

	require.Equal(t, want.Bounds().Size(), got.Bounds().Size())

	wb, gb := want.Bounds(), got.Bounds()
	for y := 0; y < wb.Dy(); y++ {
		for x := 0; x < wb.Dx(); x++ {
			w := color.NRGBAModel.Convert(want.At(wb.Min.X+x, wb.Min.Y+y))
			g := color.NRGBAModel.Convert(got.At(gb.Min.X+x, gb.Min.Y+y))
			require.Equal(t, w, g, "pixel (%d,%d)", x, y)
		}
	}
}

func TestCodec_LosslessRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := testImage(8, 6)

	tests := []struct {
		name   string
		file   string
		params []Param
	}{
		{"png", "frame.png", nil},
		{"png uncompressed", "raw.png", []Param{PNGCompression(0)}},
		{"png best", "best.PNG", []Param{PNGCompression(9)}},
		{"bmp", "frame.bmp", nil},
		{"tiff", "frame.tiff", nil},
		{"tif deflate", "frame.tif", []Param{TIFFDeflate()}},
		{"tga", "frame.tga", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			require.NoError(t, DefaultCodec().Write(path, src, tt.params...))

			got, err := DefaultCodec().Read(path, ReadUnchanged)
			require.NoError(t, err)
			requireSamePixels(t, src, got)
		})
	}
}

func TestCodec_LossyFormats(t *testing.T) {
	dir := t.TempDir()
	src := testImage(16, 8)

	for _, file := range []string{"frame.jpg", "frame.jpeg", "frame.gif"} {
		t.Run(file, func(t *testing.T) {
			path := filepath.Join(dir, file)
			require.NoError(t, DefaultCodec().Write(path, src, JPEGQuality(80), GIFColors(64)))

			got, err := DefaultCodec().Read(path, ReadUnchanged)
			require.NoError(t, err)
			require.Equal(t, src.Bounds().Size(), got.Bounds().Size())
		})
	}
}

func TestCodec_ReadFlags(t *testing.T) {
	path := filepath.Join(t.TempDir(), "frame.png")
	require.NoError(t, DefaultCodec().Write(path, testImage(8, 6)))

	gray, err := DefaultCodec().Read(path, ReadGrayscale)
	require.NoError(t, err)
	require.IsType(t, &image.Gray{}, gray)
	require.Equal(t, image.Pt(8, 6), gray.Bounds().Size())

	half, err := DefaultCodec().Read(path, ReadReduced2)
	require.NoError(t, err)
	require.Equal(t, image.Pt(4, 3), half.Bounds().Size())

	quarter, err := DefaultCodec().Read(path, ReadReduced4|ReadGrayscale)
	require.NoError(t, err)
	require.IsType(t, &image.Gray{}, quarter)
	require.Equal(t, image.Pt(2, 1), quarter.Bounds().Size())
}

func TestCodec_ReadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := DefaultCodec().Read(filepath.Join(dir, "missing.png"), ReadUnchanged)
	require.ErrorIs(t, err, errs.ErrFileNotFound)
	require.ErrorIs(t, err, errs.ErrIO)

	corrupt := filepath.Join(dir, "corrupt.png")
	require.NoError(t, os.WriteFile(corrupt, []byte("not a png"), 0o600))
	_, err = DefaultCodec().Read(corrupt, ReadUnchanged)
	require.ErrorIs(t, err, errs.ErrIO)

	_, err = DefaultCodec().Read(filepath.Join(dir, "frame.xyz"), ReadUnchanged)
	require.ErrorIs(t, err, errs.ErrUnknownFormat)
}

func TestCodec_WriteErrors(t *testing.T) {
	dir := t.TempDir()

	tests := []struct {
		name string
		path string
		img  image.Image
	}{
		{"nil image", filepath.Join(dir, "nil.png"), nil},
		{"empty bounds", filepath.Join(dir, "empty.png"), image.NewNRGBA(image.Rect(0, 0, 0, 0))},
		{"unknown extension", filepath.Join(dir, "frame.xyz"), testImage(2, 2)},
		{"decode-only webp", filepath.Join(dir, "frame.webp"), testImage(2, 2)},
		{"missing directory", filepath.Join(dir, "no", "such", "frame.png"), testImage(2, 2)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := DefaultCodec().Write(tt.path, tt.img)
			require.ErrorIs(t, err, errs.ErrIO)
			require.NoFileExists(t, tt.path)
		})
	}
}

func TestLoadImage_Lenient(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewManager(metrics.WithPrometheusRegistry(reg))
	dir := t.TempDir()

	img, err := LoadImage(filepath.Join(dir, "missing.png"), ReadUnchanged, WithMetrics(m))
	require.NoError(t, err)
	require.Nil(t, img)

	img, err = LoadImage(filepath.Join(dir, "frame.xyz"), ReadUnchanged, WithMetrics(m))
	require.NoError(t, err)
	require.Nil(t, img)

	path := filepath.Join(dir, "frame.png")
	require.NoError(t, SaveImage(path, testImage(3, 3), WithMetrics(m)))

	img, err = LoadImage(path, ReadUnchanged, WithMetrics(m))
	require.NoError(t, err)
	require.NotNil(t, img)

	results := map[string]float64{}
	families, err := reg.Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() != "posefile_io_images_loaded_total" {
			continue
		}
		for _, metric := range mf.GetMetric() {
			for _, label := range metric.GetLabel() {
				results[label.GetValue()] += metric.GetCounter().GetValue()
			}
		}
	}

	require.Equal(t, 2.0, results["empty"])
	require.Equal(t, 1.0, results["ok"])
}

type recordingCodec struct {
	params []Param
}

func (c *recordingCodec) Read(string, ReadFlag) (image.Image, error) {
	return testImage(1, 1), nil
}

func (c *recordingCodec) Write(_ string, _ image.Image, params ...Param) error {
	c.params = params
	return nil
}

func TestSaveImage_ForwardsParams(t *testing.T) {
	codec := &recordingCodec{}

	err := SaveImage("frame.jpg", testImage(1, 1), WithCodec(codec), WithParams(JPEGQuality(150), PNGCompression(-1)))
	require.NoError(t, err)
	require.Len(t, codec.params, 2)

	var p writeParams
	for _, param := range codec.params {
		param(&p)
	}
	require.Equal(t, 100, p.jpegQuality)
	require.Equal(t, 0, p.pngLevel)

	img, err := LoadImage("anything.png", ReadUnchanged, WithCodec(codec))
	require.NoError(t, err)
	require.NotNil(t, img)
}

func TestSaveImage_Error(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewManager(metrics.WithPrometheusRegistry(reg))

	err := SaveImage(filepath.Join(t.TempDir(), "frame.raw"), testImage(2, 2), WithMetrics(m))
	require.ErrorIs(t, err, errs.ErrIO)
	require.ErrorIs(t, err, errs.ErrUnknownFormat)
}
