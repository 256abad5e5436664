package main

import (
	"bufio"
	"crypto/rand"
	"encoding/hex"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"checker/internal/errors"
	"checker/internal/infra/auth"
	"checker/internal/util"
)

const (
	defaultSaltCount  = 64
	defaultSaltLength = 16
	minSaltLength     = 8
	maxSaltLength     = 64
)

type generateOptions struct {
	output string
	count  int
	length int
	force  bool
}

func parseGenerateFlags(args []string, out io.Writer) (*generateOptions, error) {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(out)

	opts := &generateOptions{}
	fs.StringVar(&opts.output, "output", "./data/salt.txt", "Salt store file to write")
	fs.IntVar(&opts.count, "count", defaultSaltCount, fmt.Sprintf("Number of salts, must exceed %d", auth.MinSaltItemsCount))
	fs.IntVar(&opts.length, "length", defaultSaltLength, "Random bytes per salt (hex encoded)")
	fs.BoolVar(&opts.force, "force", false, "Overwrite an existing file")

	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(err, "failed to parse generate flags")
	}

	if opts.count <= auth.MinSaltItemsCount {
		return nil, errors.Errorf("-count must be greater than %d", auth.MinSaltItemsCount)
	}
	if opts.length < minSaltLength || opts.length > maxSaltLength {
		return nil, errors.Errorf("-length must be between %d and %d", minSaltLength, maxSaltLength)
	}
	if opts.output == "" {
		return nil, errors.New("-output is required")
	}

	return opts, nil
}

func runGenerate(opts *generateOptions, out io.Writer) error {
	start := time.Now()

	if !opts.force {
		if _, err := os.Stat(opts.output); err == nil {
			return errors.Errorf("%s already exists, pass -force to overwrite", opts.output)
		}
	}

	salts, err := generateSalts(rand.Reader, opts.count, opts.length)
	if err != nil {
		return err
	}

	if err := writeLinesAtomically(opts.output, salts); err != nil {
		return err
	}

	checksum, err := util.CalculateFileChecksum(opts.output)
	if err != nil {
		return err
	}
	info, err := os.Stat(opts.output)
	if err != nil {
		return errors.WithStack(err)
	}

	meta := &Metadata{
		Version:     metadataVersion,
		Count:       len(salts),
		ByteLength:  opts.length,
		SizeBytes:   info.Size(),
		SHA256:      checksum,
		GeneratedAt: time.Now().UTC(),
	}
	if err := writeMetadata(metadataPath(opts.output), meta); err != nil {
		return err
	}

	fmt.Fprintf(out, "Wrote %d salts to %s (%s) in %s\n",
		len(salts), opts.output, util.FormatBytes(info.Size()), util.FormatDuration(time.Since(start)))
	fmt.Fprintf(out, "sha256: %s\n", checksum)

	return nil
}

// generateSalts returns count distinct hex salts of length random bytes each.
func generateSalts(r io.Reader, count, length int) ([]string, error) {
	seen := make(map[string]struct{}, count)
	salts := make([]string, 0, count)
	buf := make([]byte, length)

	for len(salts) < count {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, errors.Wrap(err, "failed to read random bytes")
		}
		salt := hex.EncodeToString(buf)
		if _, dup := seen[salt]; dup {
			continue
		}
		seen[salt] = struct{}{}
		salts = append(salts, salt)
	}

	return salts, nil
}

// writeLinesAtomically writes to a temp file in the same directory and renames
// it, so readers never observe a partial salt store.
func writeLinesAtomically(path string, lines []string) (err error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return errors.Wrap(err, "failed to create output directory")
	}

	tmp, err := os.CreateTemp(dir, ".salt-*")
	if err != nil {
		return errors.Wrap(err, "failed to create temp file")
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	for _, line := range lines {
		if _, err := w.WriteString(line + "\n"); err != nil {
			tmp.Close()

			return errors.Wrap(err, "failed to write salt")
		}
	}
	if err := w.Flush(); err != nil {
		tmp.Close()

		return errors.Wrap(err, "failed to flush salts")
	}
	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()

		return errors.Wrap(err, "failed to set permissions")
	}
	if err := tmp.Close(); err != nil {
		return errors.Wrap(err, "failed to close temp file")
	}

	return errors.Wrap(os.Rename(tmp.Name(), path), "failed to move salt store into place")
}
