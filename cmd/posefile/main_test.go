package main

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/fxamacker/cbor/v2"
	"github.com/smartystreets/goconvey/convey"

	"github.com/arloliu/posefile/floatarray"
	"github.com/arloliu/posefile/imageio"
	"github.com/arloliu/posefile/keypoints"
	"github.com/arloliu/posefile/ndarray"
)

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, &stdout, &stderr)

	return code, stdout.String(), stderr.String()
}

func TestRunUsage(t *testing.T) {
	t.Setenv("POSEFILE_CONFIG", "")

	convey.Convey("Given the posefile command", t, func() {
		convey.Convey("When no command is given", func() {
			code, _, stderr := runCLI()

			convey.Convey("Then it prints usage and exits with 2", func() {
				convey.So(code, convey.ShouldEqual, exitUsage)
				convey.So(stderr, convey.ShouldContainSubstring, "commands:")
				convey.So(stderr, convey.ShouldContainSubstring, "inspect")
			})
		})

		convey.Convey("When the command is unknown", func() {
			code, _, stderr := runCLI("frobnicate")

			convey.So(code, convey.ShouldEqual, exitUsage)
			convey.So(stderr, convey.ShouldContainSubstring, `unknown command "frobnicate"`)
		})

		convey.Convey("When a command misses arguments", func() {
			code, _, _ := runCLI("convert", "only-one")

			convey.So(code, convey.ShouldEqual, exitUsage)
		})

		convey.Convey("When a flag is unknown", func() {
			code, _, _ := runCLI("inspect", "-bogus", "a.bin")

			convey.So(code, convey.ShouldEqual, exitUsage)
		})

		convey.Convey("When the config file is missing", func() {
			code, _, stderr := runCLI("-config", filepath.Join(t.TempDir(), "none.yaml"), "inspect", "a.bin")

			convey.So(code, convey.ShouldEqual, exitError)
			convey.So(stderr, convey.ShouldContainSubstring, "failed to load config")
		})
	})
}

func TestRunCommands(t *testing.T) {
	t.Setenv("POSEFILE_CONFIG", "")

	convey.Convey("Given a binary keypoint array on disk", t, func() {
		dir := t.TempDir()
		pose := ndarray.MustFromSlice([]float32{1, 2, 0.5, 3, 4, 0.25}, 1, 2, 3)
		posePath := filepath.Join(dir, "pose_keypoints_2d.bin")
		convey.So(floatarray.SaveFile(posePath, pose), convey.ShouldBeNil)

		convey.Convey("When inspecting it", func() {
			code, stdout, _ := runCLI("inspect", posePath)

			convey.Convey("Then shape and statistics are printed", func() {
				convey.So(code, convey.ShouldEqual, exitOK)
				convey.So(stdout, convey.ShouldContainSubstring, "Array[1x2x3] volume=6")
				convey.So(stdout, convey.ShouldContainSubstring, "count=6 non_finite=0 min=0.25 max=4")
			})
		})

		convey.Convey("When converting it to an archive and extracting it back", func() {
			base := filepath.Join(dir, "frame")
			code, stdout, _ := runCLI("convert", "-format", "json", "-name", "pose", posePath, base)
			convey.So(code, convey.ShouldEqual, exitOK)
			convey.So(stdout, convey.ShouldContainSubstring, "frame.json")

			out := filepath.Join(dir, "pose.bin")
			code, _, _ = runCLI("extract", base+".json", out)
			convey.So(code, convey.ShouldEqual, exitOK)

			convey.Convey("Then the array survives unchanged", func() {
				got, err := floatarray.LoadFile(out)
				convey.So(err, convey.ShouldBeNil)
				convey.So(got.Equal(pose), convey.ShouldBeTrue)
			})
		})

		convey.Convey("When converting it to cbor", func() {
			code, _, _ := runCLI("convert", "-format", "cbor", posePath, filepath.Join(dir, "frame"))
			convey.So(code, convey.ShouldEqual, exitOK)

			data, err := os.ReadFile(filepath.Join(dir, "frame.cbor"))
			convey.So(err, convey.ShouldBeNil)

			got := &ndarray.Array{}
			convey.So(cbor.Unmarshal(data, got), convey.ShouldBeNil)
			convey.So(got.Equal(pose), convey.ShouldBeTrue)
		})

		convey.Convey("When converting to an unknown format", func() {
			code, _, stderr := runCLI("convert", "-format", "toml", posePath, filepath.Join(dir, "frame"))

			convey.So(code, convey.ShouldEqual, exitError)
			convey.So(stderr, convey.ShouldContainSubstring, "unknown format")
		})

		convey.Convey("When writing a people document", func() {
			outDir := filepath.Join(dir, "json")
			code, stdout, _ := runCLI("people", "-out", outDir, "-readable=false", posePath)
			convey.So(code, convey.ShouldEqual, exitOK)
			convey.So(stdout, convey.ShouldContainSubstring, "1 people")

			convey.Convey("Then the document reads back with the entry name", func() {
				doc, err := keypoints.LoadDocument(filepath.Join(outDir, "000000000000.json"))
				convey.So(err, convey.ShouldBeNil)
				convey.So(doc.People, convey.ShouldHaveLength, 1)
				convey.So(doc.People[0].Names(), convey.ShouldResemble, []string{"pose_keypoints_2d"})
			})
		})

		convey.Convey("When inspecting a missing file", func() {
			code, _, stderr := runCLI("inspect", filepath.Join(dir, "missing.bin"))

			convey.So(code, convey.ShouldEqual, exitError)
			convey.So(stderr, convey.ShouldContainSubstring, "missing.bin")
		})
	})
}

func TestRunHandsAndImage(t *testing.T) {
	t.Setenv("POSEFILE_CONFIG", "")

	convey.Convey("Given hint and image files", t, func() {
		dir := t.TempDir()

		hints := filepath.Join(dir, "hand_left.txt")
		convey.So(os.WriteFile(hints, []byte("10 20 30 40\n"), 0o600), convey.ShouldBeNil)

		img := image.NewNRGBA(image.Rect(0, 0, 8, 4))
		for x := 0; x < 8; x++ {
			img.SetNRGBA(x, 1, color.NRGBA{R: 200, A: 0xff})
		}
		src := filepath.Join(dir, "frame.png")
		convey.So(imageio.SaveImage(src, img), convey.ShouldBeNil)

		convey.Convey("When listing hand rectangles", func() {
			code, stdout, _ := runCLI("hands", hints)

			convey.So(code, convey.ShouldEqual, exitOK)
			convey.So(stdout, convey.ShouldContainSubstring, "1 pairs")
			convey.So(stdout, convey.ShouldContainSubstring, "left=[10 20 30 40] right=[0 0 0 0]")
		})

		convey.Convey("When re-encoding an image reduced and gray", func() {
			out := filepath.Join(dir, "small.bmp")
			code, stdout, _ := runCLI("image", "-gray", "-reduce", "2", src, out)

			convey.So(code, convey.ShouldEqual, exitOK)
			convey.So(stdout, convey.ShouldContainSubstring, "4x2")

			got, err := imageio.DefaultCodec().Read(out, imageio.ReadUnchanged)
			convey.So(err, convey.ShouldBeNil)
			convey.So(got.Bounds().Dx(), convey.ShouldEqual, 4)
		})

		convey.Convey("When the input image is missing", func() {
			code, _, stderr := runCLI("image", filepath.Join(dir, "none.png"), filepath.Join(dir, "out.png"))

			convey.So(code, convey.ShouldEqual, exitError)
			convey.So(stderr, convey.ShouldContainSubstring, "empty image")
		})

		convey.Convey("When the reduce factor is invalid", func() {
			code, _, _ := runCLI("image", "-reduce", "3", src, filepath.Join(dir, "out.png"))

			convey.So(code, convey.ShouldEqual, exitUsage)
		})
	})
}
