// Command saltgen provisions salt store files for the password hasher.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"checker/internal/errors"
)

// Supported subcommands:
// - generate: write a new salt store file and its metadata
// - validate: check an existing salt store

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) < 1 {
		printUsage(out)

		return errors.New("missing subcommand")
	}

	switch args[0] {
	case "generate":
		opts, err := parseGenerateFlags(args[1:], out)
		if err != nil {
			return err
		}

		return runGenerate(opts, out)
	case "validate":
		opts, err := parseValidateFlags(args[1:], out)
		if err != nil {
			return err
		}

		return runValidate(ctx, opts, out)
	case "-h", "--help", "help":
		printUsage(out)

		return nil
	default:
		printUsage(out)

		return errors.Errorf("unknown subcommand %q", args[0])
	}
}

func printUsage(out io.Writer) {
	fmt.Fprintln(out, "Usage: saltgen <command> [options]")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Commands:")
	fmt.Fprintln(out, "  generate    Write a new salt store file")
	fmt.Fprintln(out, "  validate    Check a salt store (path, file://, gs:// or s3://)")
	fmt.Fprintln(out, "")
	fmt.Fprintln(out, "Use 'saltgen <command> -h' for more information about a command.")
}
