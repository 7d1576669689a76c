package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/seiflotfy/huffpack"
	"github.com/seiflotfy/huffpack/internal/logger"
)

const packedExt = ".huf"

var errUsage = errors.New("usage")

type options struct {
	decode  bool
	input   string
	output  string
	workers int
	verify  bool
	quiet   bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("huffpack", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.BoolVar(&o.decode, "d", false, "decode a "+packedExt+" file")
	fs.StringVar(&o.input, "i", "", "input file path")
	fs.StringVar(&o.output, "o", "", "output file path (default derived from input)")
	fs.IntVar(&o.workers, "workers", 1, "frequency counting workers")
	fs.BoolVar(&o.verify, "verify", false, "decode the result and compare digests after encoding")
	fs.BoolVar(&o.quiet, "quiet", false, "only log errors")
	if err := fs.Parse(args); err != nil {
		return o, err
	}
	if o.input == "" && fs.NArg() > 0 {
		o.input = fs.Arg(0)
	}
	if o.input == "" {
		fs.Usage()
		return o, fmt.Errorf("%w: input path is empty", errUsage)
	}
	return o, nil
}

// outputPath derives the destination when -o is not given: encoding appends
// .huf, decoding strips it.
func outputPath(o options) (string, error) {
	if o.output != "" {
		return o.output, nil
	}
	if !o.decode {
		return o.input + packedExt, nil
	}
	if !strings.HasSuffix(o.input, packedExt) || len(o.input) == len(packedExt) {
		return "", fmt.Errorf("%w: %q does not end in %s, pass -o", errUsage, o.input, packedExt)
	}
	return strings.TrimSuffix(o.input, packedExt), nil
}

// writeAtomic replaces path with data via a temporary file in the same directory.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

func run(args []string, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}
	log := logger.New(stderr, o.quiet)

	dst, err := outputPath(o)
	if err != nil {
		return err
	}
	input, err := os.ReadFile(o.input)
	if err != nil {
		return err
	}

	start := time.Now()
	var output []byte
	if o.decode {
		output, err = huffpack.NewDecoder().Decode(input)
		if err != nil {
			return fmt.Errorf("decode %s: %w", o.input, err)
		}
	} else {
		output, err = huffpack.NewEncoder(huffpack.WithConcurrency(o.workers)).Encode(input)
		if err != nil {
			return fmt.Errorf("encode %s: %w", o.input, err)
		}
		if o.verify {
			if err := verify(input, output); err != nil {
				return fmt.Errorf("verify %s: %w", o.input, err)
			}
		}
	}
	elapsed := time.Since(start)

	if err := writeAtomic(dst, output); err != nil {
		return fmt.Errorf("write %s: %w", dst, err)
	}

	ratio := 0.0
	if len(input) > 0 {
		ratio = float64(len(output)) / float64(len(input))
	}
	log.With("input", o.input, "output", dst).Infof("%d -> %d bytes (%.3f) in %s", len(input), len(output), ratio, elapsed)
	return nil
}

func verify(original, packed []byte) error {
	restored, err := huffpack.Decode(packed)
	if err != nil {
		return err
	}
	if want, got := xxhash.Sum64(original), xxhash.Sum64(restored); want != got {
		return fmt.Errorf("round trip digest mismatch: %016x != %016x", got, want)
	}
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		logger.New(os.Stderr, false).Errorf("%v", err)
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
