// Command chunktype inspects PNG chunk type codes.
//
// Usage:
//
//	chunktype [flags] TAG...
//
// Each TAG is parsed as four-letter text, or as raw bytes with --bytes, and
// its property bits are printed. With --policy the tags are also evaluated
// against a policy file.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jmgilman/go/errors"
	"github.com/jmgilman/go/fs/billy"
	"github.com/spf13/pflag"

	"github.com/jmgilman/go/png"
	"github.com/jmgilman/go/png/internal/logging"
	"github.com/jmgilman/go/png/internal/report"
	"github.com/jmgilman/go/png/policy"
)

const (
	exitOK       = 0
	exitRejected = 1
	exitUsage    = 2
)

type options struct {
	bytes      bool
	format     string
	policyPath string
	logLevel   string
	logFormat  string
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	var opts options

	flagSet := pflag.NewFlagSet("chunktype", pflag.ContinueOnError)
	flagSet.SetOutput(stderr)
	flagSet.BoolVarP(&opts.bytes, "bytes", "b", false, `treat each TAG as raw bytes: "82,117,83,116" or "0x52755374"`)
	flagSet.StringVarP(&opts.format, "format", "f", string(report.FormatText), "output format: text, json or yaml")
	flagSet.StringVarP(&opts.policyPath, "policy", "p", "", "policy file (.cue, .yaml, .json) to evaluate tags against")
	flagSet.StringVar(&opts.logLevel, "log-level", "warn", "log level: debug, info, warn or error")
	flagSet.StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")
	flagSet.BoolP("help", "h", false, "show help")

	if err := flagSet.Parse(args); err != nil {
		if err == pflag.ErrHelp {
			printHelp(stderr, flagSet)
			return exitOK
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}
	if help, _ := flagSet.GetBool("help"); help {
		printHelp(stderr, flagSet)
		return exitOK
	}

	tags := flagSet.Args()
	if len(tags) == 0 {
		printHelp(stderr, flagSet)
		return exitUsage
	}

	format, err := report.ParseFormat(opts.format)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	logger, err := newLogger(stderr, opts)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	var pol *policy.Policy
	if opts.policyPath != "" {
		pol, err = loadPolicy(ctx, opts.policyPath, logger)
		logging.LogOperation(ctx, logger, logging.OpLoadPolicy, err, "path", opts.policyPath)
		if err != nil {
			fmt.Fprintf(stderr, "error: %v\n", err)
			return exitUsage
		}
	}

	inspections := make([]report.Inspection, 0, len(tags))
	status := exitOK
	for _, tag := range tags {
		in := inspect(ctx, tag, opts.bytes, pol, logger)
		if !in.OK() {
			status = exitRejected
		}
		inspections = append(inspections, in)
	}

	if err := report.Write(stdout, format, inspections); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitRejected
	}
	return status
}

func inspect(ctx context.Context, tag string, raw bool, pol *policy.Policy, logger *logging.Logger) report.Inspection {
	ct, err := construct(tag, raw)
	logging.LogOperation(ctx, logger, logging.OpParse, err, "input", tag, "raw", raw)
	if err != nil {
		return report.Failed(tag, err)
	}

	in := report.Inspect(tag, ct)
	if pol != nil {
		d := pol.Evaluate(ctx, ct)
		in.Decision = &d
	}
	return in
}

func construct(tag string, raw bool) (png.ChunkType, error) {
	if !raw {
		return png.Parse(tag)
	}
	b, err := parseByteArg(tag)
	if err != nil {
		return png.ChunkType{}, err
	}
	return png.FromSlice(b)
}

func newLogger(w io.Writer, opts options) (*logging.Logger, error) {
	level, err := logging.ParseLogLevel(opts.logLevel)
	if err != nil {
		return nil, err
	}
	format, err := logging.ParseLogFormat(opts.logFormat)
	if err != nil {
		return nil, err
	}

	cfg := logging.DefaultLogConfig()
	cfg.Level = level
	cfg.Format = format
	return logging.NewLogger(w, cfg), nil
}

func loadPolicy(ctx context.Context, path string, logger *logging.Logger) (*policy.Policy, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInvalidInput, "failed to resolve policy path")
	}

	cfg, err := policy.Load(ctx, billy.NewLocal(), abs)
	if err != nil {
		return nil, err
	}
	return policy.New(cfg, policy.WithLogger(logger.Slog()))
}

func printHelp(w io.Writer, flagSet *pflag.FlagSet) {
	fmt.Fprint(w, `Inspect PNG chunk type codes.

Usage:
  chunktype [flags] TAG...

Examples:
  chunktype RuSt IHDR
  chunktype --bytes 82,117,83,116 0x49484452
  chunktype --policy policy.cue --format json vpAg RuSt

Flags:
`)
	flagSet.SetOutput(w)
	flagSet.PrintDefaults()
}
