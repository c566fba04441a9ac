// Command posefile inspects and converts pose-estimation files: binary float arrays,
// named-array archives, keypoint documents, hand rectangle hints and images.
//
// Usage:
//
//	posefile [-config file.yaml] <command> [flags] args...
//
// Settings come from defaults, the optional YAML file (or POSEFILE_CONFIG) and POSEFILE_*
// environment variables, in that order.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/arloliu/posefile/internal/config"
	"github.com/arloliu/posefile/pkg/logger"
)

// Exit codes.
const (
	exitOK    = 0
	exitError = 1
	exitUsage = 2
)

var errUsage = errors.New("usage")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	os.Exit(code)
}

// command is one posefile subcommand.
type command struct {
	name    string
	summary string
	run     func(ctx context.Context, env *environment, args []string) error
}

// environment is what every command receives.
type environment struct {
	cfg    *config.Config
	log    logger.Logger
	stdout io.Writer
	stderr io.Writer
}

func commands() []command {
	return []command{
		{"inspect", "print shape, fingerprint and statistics of binary arrays", runInspect},
		{"convert", "store a binary array in a json/xml/yaml/yml archive or as cbor", runConvert},
		{"extract", "write one array of an archive as a binary array file", runExtract},
		{"hands", "print the rectangle pairs of a hand hint file", runHands},
		{"people", "write binary keypoint arrays as a people document", runPeople},
		{"image", "re-encode an image, optionally grayscale or reduced", runImage},
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("posefile", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML configuration file")
	fs.Usage = func() { usage(stderr) }

	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if fs.NArg() == 0 {
		usage(stderr)
		return exitUsage
	}

	if err := logger.Init(); err != nil {
		fmt.Fprintf(stderr, "failed to initialize logging: %v\n", err)
		return exitError
	}
	defer func() { _ = logger.Sync() }()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load config: %v\n", err)
		return exitError
	}

	log := logger.Named("posefile")
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		log.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	name, rest := fs.Arg(0), fs.Args()[1:]
	for _, cmd := range commands() {
		if cmd.name != name {
			continue
		}

		env := &environment{cfg: cfg, log: log.Named(cmd.name), stdout: stdout, stderr: stderr}
		if err := cmd.run(ctx, env, rest); err != nil {
			if errors.Is(err, errUsage) {
				return exitUsage
			}

			fmt.Fprintf(stderr, "posefile %s: %v\n", cmd.name, err)

			return exitError
		}

		return exitOK
	}

	fmt.Fprintf(stderr, "posefile: unknown command %q\n", name)
	usage(stderr)

	return exitUsage
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: posefile [-config file.yaml] <command> [flags] args...")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "commands:")
	for _, cmd := range commands() {
		fmt.Fprintf(w, "  %-8s %s\n", cmd.name, cmd.summary)
	}
}
