package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRequiresSubcommand(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	err := run(context.Background(), nil, &out)
	require.Error(t, err)
	assert.Contains(t, out.String(), "Usage: saltgen")

	err = run(context.Background(), []string{"shuffle"}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown subcommand")
}

func TestGenerateThenValidate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "salt.txt")

	var out bytes.Buffer
	require.NoError(t, run(ctx, []string{"generate", "-output", path, "-count", "21", "-length", "8"}, &out))
	assert.Contains(t, out.String(), "Wrote 21 salts")
	assert.Contains(t, out.String(), "sha256: ")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 21)
	for _, line := range lines {
		assert.Len(t, line, 16)
	}

	meta, err := loadMetadata(metadataPath(path))
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, 21, meta.Count)
	assert.Equal(t, 8, meta.ByteLength)

	out.Reset()
	require.NoError(t, run(ctx, []string{"validate", "-source", path}, &out))
	assert.Contains(t, out.String(), "salts: 21")
	assert.Contains(t, out.String(), "metadata: matches")
	assert.Contains(t, out.String(), "sha256: "+meta.SHA256)
}

func TestGenerateRefusesToOverwrite(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "salt.txt")
	require.NoError(t, os.WriteFile(path, []byte("keep\n"), 0o600))

	var out bytes.Buffer
	err := run(context.Background(), []string{"generate", "-output", path}, &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "keep\n", string(data))

	require.NoError(t, run(context.Background(), []string{"generate", "-output", path, "-force"}, &out))
}

func TestGenerateFlagBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		args []string
		want string
	}{
		{name: "count at minimum", args: []string{"-count", "20"}, want: "-count must be greater than 20"},
		{name: "length too short", args: []string{"-length", "4"}, want: "-length must be between"},
		{name: "length too long", args: []string{"-length", "65"}, want: "-length must be between"},
		{name: "empty output", args: []string{"-output", ""}, want: "-output is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := parseGenerateFlags(tt.args, &bytes.Buffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestGenerateSaltsSkipsDuplicates(t *testing.T) {
	t.Parallel()

	// Two identical chunks followed by a distinct one.
	src := bytes.NewReader([]byte{1, 1, 1, 1, 2, 2})
	salts, err := generateSalts(src, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"0101", "0202"}, salts)

	_, err = generateSalts(bytes.NewReader(nil), 1, 2)
	require.Error(t, err)
}

func TestValidateRejectsBadStores(t *testing.T) {
	t.Parallel()

	salts := make([]string, 0, 21)
	for i := range 21 {
		salts = append(salts, fmt.Sprintf("salt-%02d", i))
	}

	tests := []struct {
		name  string
		lines []string
		want  string
	}{
		{name: "too few", lines: salts[:20], want: "need at least 21"},
		{name: "blank line", lines: append(append([]string{}, salts[:20]...), "  "), want: "salt 20 is blank"},
		{name: "duplicate", lines: append(append([]string{}, salts[:20]...), salts[3]), want: "salt 20 duplicates salt 3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "salt.txt")
			require.NoError(t, os.WriteFile(path, []byte(strings.Join(tt.lines, "\n")+"\n"), 0o600))

			err := run(context.Background(), []string{"validate", "-source", path}, &bytes.Buffer{})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidateDetectsTampering(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "salt.txt")
	require.NoError(t, run(ctx, []string{"generate", "-output", path, "-count", "21"}, &bytes.Buffer{}))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o600)
	require.NoError(t, err)
	_, err = f.WriteString("extra\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	err = run(ctx, []string{"validate", "-source", path}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "checksum mismatch")
}

func TestValidateMissingStore(t *testing.T) {
	t.Parallel()

	err := run(context.Background(), []string{"validate", "-source", filepath.Join(t.TempDir(), "none.txt")}, &bytes.Buffer{})
	require.Error(t, err)
}

func TestLocalFile(t *testing.T) {
	t.Parallel()

	p, ok := localFile("./data/salt.txt")
	assert.True(t, ok)
	assert.Equal(t, "./data/salt.txt", p)

	p, ok = localFile("file:///var/lib/salt.txt")
	assert.True(t, ok)
	assert.Equal(t, filepath.FromSlash("/var/lib/salt.txt"), p)

	_, ok = localFile("gs://bucket/salt.txt")
	assert.False(t, ok)
}
