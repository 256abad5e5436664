package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"net/url"
	"path/filepath"
	"strings"

	"checker/internal/errors"
	"checker/internal/infra/auth"
	"checker/internal/infra/saltstore"
	"checker/internal/util"
)

type validateOptions struct {
	source   string
	minCount int
}

func parseValidateFlags(args []string, out io.Writer) (*validateOptions, error) {
	fs := flag.NewFlagSet("validate", flag.ContinueOnError)
	fs.SetOutput(out)

	opts := &validateOptions{}
	fs.StringVar(&opts.source, "source", "./data/salt.txt", "Salt store path or URL")
	fs.IntVar(&opts.minCount, "min", auth.MinSaltItemsCount+1, "Minimum number of salts required")

	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(err, "failed to parse validate flags")
	}
	if opts.minCount <= auth.MinSaltItemsCount {
		return nil, errors.Errorf("-min must be greater than %d", auth.MinSaltItemsCount)
	}

	return opts, nil
}

func runValidate(ctx context.Context, opts *validateOptions, out io.Writer) error {
	fmt.Fprintf(out, "Validating salt store: %s\n", opts.source)

	store, err := saltstore.New(opts.source)
	if err != nil {
		return err
	}

	lines, err := store.ReadLines(ctx)
	if err != nil {
		return err
	}

	if err := checkLines(lines, opts.minCount); err != nil {
		return err
	}
	fmt.Fprintf(out, "  salts: %d\n", len(lines))

	localPath, ok := localFile(opts.source)
	if !ok {
		fmt.Fprintln(out, "  checksum: skipped for remote source")
		fmt.Fprintln(out, "Validation passed")

		return nil
	}

	checksum, err := util.CalculateFileChecksum(localPath)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "  sha256: %s\n", checksum)

	meta, err := loadMetadata(metadataPath(localPath))
	if err != nil {
		return err
	}
	if meta != nil {
		if meta.SHA256 != checksum {
			return errors.Errorf("checksum mismatch: metadata has %s", meta.SHA256)
		}
		if meta.Count != len(lines) {
			return errors.Errorf("salt count mismatch: metadata has %d, store has %d", meta.Count, len(lines))
		}
		fmt.Fprintln(out, "  metadata: matches")
	}

	fmt.Fprintln(out, "Validation passed")

	return nil
}

// checkLines requires at least minCount salts, none blank and all distinct.
func checkLines(lines []string, minCount int) error {
	if len(lines) < minCount {
		return errors.Errorf("salt store has %d salts, need at least %d", len(lines), minCount)
	}

	seen := make(map[string]int, len(lines))
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			return errors.Errorf("salt %d is blank", i)
		}
		if prev, dup := seen[line]; dup {
			return errors.Errorf("salt %d duplicates salt %d", i, prev)
		}
		seen[line] = i
	}

	return nil
}

func localFile(source string) (string, bool) {
	u, err := url.Parse(source)
	if err != nil || u.Scheme == "" || len(u.Scheme) == 1 {
		return source, true
	}
	if u.Scheme == "file" {
		return filepath.FromSlash(u.Path), true
	}

	return "", false
}
