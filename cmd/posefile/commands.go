package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/fxamacker/cbor/v2"

	"github.com/arloliu/posefile/archive"
	"github.com/arloliu/posefile/endian"
	"github.com/arloliu/posefile/floatarray"
	"github.com/arloliu/posefile/format"
	"github.com/arloliu/posefile/handrect"
	"github.com/arloliu/posefile/imageio"
	"github.com/arloliu/posefile/internal/fsutil"
	"github.com/arloliu/posefile/internal/options"
	"github.com/arloliu/posefile/internal/pathutil"
	"github.com/arloliu/posefile/keypoints"
	"github.com/arloliu/posefile/ndarray"
	"github.com/arloliu/posefile/pkg/logger"
)

// cborFormat is accepted by convert next to the archive formats.
const cborFormat = "cbor"

func newFlagSet(env *environment, name, args string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(env.stderr)
	fs.Usage = func() {
		fmt.Fprintf(env.stderr, "usage: posefile %s [flags] %s\n", name, args)
		fs.PrintDefaults()
	}

	return fs
}

// parseArgs parses flags and reports failures as usage errors; fs has already printed them.
func parseArgs(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %w", errUsage, err)
	}

	return nil
}

func requireArgs(fs *flag.FlagSet, minArgs, maxArgs int) error {
	if fs.NArg() < minArgs || (maxArgs >= 0 && fs.NArg() > maxArgs) {
		fs.Usage()
		return errUsage
	}

	return nil
}

// arrayOption bundles the configured byte order and compression.
func arrayOption(env *environment) (floatarray.Option, error) {
	engine, err := endian.ParseEngine(env.cfg.ByteOrder)
	if err != nil {
		return nil, err
	}

	comp, err := env.cfg.CompressionType()
	if err != nil {
		return nil, err
	}

	return options.Compose(
		floatarray.WithEngine(engine),
		floatarray.WithCompression(comp),
		floatarray.WithLogger(env.log),
	), nil
}

func loadArray(env *environment, path string) (*ndarray.Array, error) {
	opt, err := arrayOption(env)
	if err != nil {
		return nil, err
	}

	return floatarray.LoadFile(path, opt)
}

func runInspect(_ context.Context, env *environment, args []string) error {
	fs := newFlagSet(env, "inspect", "<array.bin>...")
	if err := parseArgs(fs, args); err != nil {
		return err
	}
	if err := requireArgs(fs, 1, -1); err != nil {
		return err
	}

	for _, path := range fs.Args() {
		a, err := loadArray(env, path)
		if err != nil {
			return err
		}

		fmt.Fprintf(env.stdout, "%s: %s volume=%d fingerprint=%016x\n", path, a, a.Volume(), a.Fingerprint())
		fmt.Fprintf(env.stdout, "  %s\n", a.Summarize())
	}

	return nil
}

func runConvert(_ context.Context, env *environment, args []string) error {
	fs := newFlagSet(env, "convert", "<array.bin> <out-base>")
	formatName := fs.String("format", env.cfg.ArchiveFormat, "json, xml, yaml, yml or cbor")
	name := fs.String("name", "", "array name inside the archive (default: input file name)")
	if err := parseArgs(fs, args); err != nil {
		return err
	}
	if err := requireArgs(fs, 2, 2); err != nil {
		return err
	}

	in, outBase := fs.Arg(0), fs.Arg(1)

	a, err := loadArray(env, in)
	if err != nil {
		return err
	}

	if *formatName == cborFormat {
		data, err := cbor.Marshal(a)
		if err != nil {
			return err
		}

		out := pathutil.FullName(outBase, cborFormat)
		if err := fsutil.WriteFile(out, data); err != nil {
			return err
		}
		fmt.Fprintln(env.stdout, out)

		return nil
	}

	f, err := format.ParseDataFormat(*formatName)
	if err != nil {
		return err
	}

	arrayName := *name
	if arrayName == "" {
		arrayName = pathutil.FileNameNoExtension(in)
	}

	if err := archive.SaveOne(a, arrayName, outBase, f, archive.WithLogger(env.log)); err != nil {
		return err
	}
	fmt.Fprintln(env.stdout, archive.Path(outBase, f))

	return nil
}

func runExtract(_ context.Context, env *environment, args []string) error {
	fs := newFlagSet(env, "extract", "<archive.{json,xml,yaml,yml}> <out.bin>")
	name := fs.String("name", "", "array name inside the archive (default: output file name)")
	if err := parseArgs(fs, args); err != nil {
		return err
	}
	if err := requireArgs(fs, 2, 2); err != nil {
		return err
	}

	in, out := fs.Arg(0), fs.Arg(1)

	f, err := format.ParseDataFormat(pathutil.Extension(in))
	if err != nil {
		return err
	}

	arrayName := *name
	if arrayName == "" {
		arrayName = pathutil.FileNameNoExtension(out)
	}

	base := strings.TrimSuffix(in, "."+pathutil.Extension(in))
	a, err := archive.LoadOne(arrayName, base, f, archive.WithLogger(env.log))
	if err != nil {
		return err
	}

	opt, err := arrayOption(env)
	if err != nil {
		return err
	}

	if err := floatarray.SaveFile(out, a, opt); err != nil {
		return err
	}
	fmt.Fprintf(env.stdout, "%s: %s\n", out, a)

	return nil
}

func runHands(_ context.Context, env *environment, args []string) error {
	fs := newFlagSet(env, "hands", "<rects.txt>...")
	if err := parseArgs(fs, args); err != nil {
		return err
	}
	if err := requireArgs(fs, 1, -1); err != nil {
		return err
	}

	for _, path := range fs.Args() {
		pairs, err := handrect.ParseFile(path)
		if err != nil {
			return err
		}

		fmt.Fprintf(env.stdout, "%s: %d pairs\n", path, len(pairs))
		for i, p := range pairs {
			fmt.Fprintf(env.stdout, "  %d left=[%s] right=[%s]\n", i, p.Left, p.Right)
		}
	}

	return nil
}

func runPeople(ctx context.Context, env *environment, args []string) error {
	fs := newFlagSet(env, "people", "<array.bin>...")
	outDir := fs.String("out", env.cfg.OutputDir, "output directory")
	fileName := fs.String("name", "", "document name without extension (default: next frame index)")
	readable := fs.Bool("readable", env.cfg.HumanReadable, "indent the document")
	if err := parseArgs(fs, args); err != nil {
		return err
	}
	if err := requireArgs(fs, 1, -1); err != nil {
		return err
	}

	entries := make([]keypoints.Entry, 0, fs.NArg())
	for _, path := range fs.Args() {
		a, err := loadArray(env, path)
		if err != nil {
			return err
		}
		entries = append(entries, keypoints.Entry{Array: a, Name: pathutil.FileNameNoExtension(path)})
	}

	saver, err := keypoints.NewSaver(*outDir,
		keypoints.WithPrecision(env.cfg.JSONPrecision),
		keypoints.WithLogger(env.log),
	)
	if err != nil {
		return err
	}

	path, err := saver.Save(entries, nil, *fileName, *readable)
	if err != nil {
		return err
	}

	env.log.Info(ctx, "wrote people document", logger.String("path", path), logger.Int("entries", len(entries)))
	fmt.Fprintf(env.stdout, "%s: %d people\n", path, keypoints.NumberPeople(entries))

	return nil
}

func runImage(_ context.Context, env *environment, args []string) error {
	fs := newFlagSet(env, "image", "<in> <out>")
	gray := fs.Bool("gray", false, "convert to 8-bit grayscale")
	reduce := fs.Int("reduce", 1, "scale down by 1, 2 or 4")
	quality := fs.Int("quality", 95, "JPEG quality")
	level := fs.Int("png-level", 3, "PNG compression level 0-9")
	if err := parseArgs(fs, args); err != nil {
		return err
	}
	if err := requireArgs(fs, 2, 2); err != nil {
		return err
	}

	flags := imageio.ReadUnchanged
	if *gray {
		flags |= imageio.ReadGrayscale
	}
	switch *reduce {
	case 1:
	case 2:
		flags |= imageio.ReadReduced2
	case 4:
		flags |= imageio.ReadReduced4
	default:
		fs.Usage()
		return errUsage
	}

	in, out := fs.Arg(0), fs.Arg(1)

	img, err := imageio.LoadImage(in, flags, imageio.WithLogger(env.log))
	if err != nil {
		return err
	}
	if img == nil {
		return fmt.Errorf("empty image on path: %s", in)
	}

	err = imageio.SaveImage(out, img,
		imageio.WithLogger(env.log),
		imageio.WithParams(imageio.JPEGQuality(*quality), imageio.PNGCompression(*level)),
	)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.stdout, "%s: %dx%d\n", out, img.Bounds().Dx(), img.Bounds().Dy())

	return nil
}
