// Package saltstore implements the salt store on top of gocloud.dev/blob so
// the same line-oriented file can live on local disk, GCS or S3.
package saltstore

import (
	"bytes"
	"context"
	"io/fs"
	"net/url"
	"path"
	"path/filepath"
	"strings"
	"time"

	domainerrors "checker/internal/domain/errors"
	"checker/internal/domain/repository"
	"checker/internal/errors"

	"gocloud.dev/blob"
	"gocloud.dev/blob/fileblob"
	_ "gocloud.dev/blob/gcsblob"
	_ "gocloud.dev/blob/s3blob"
	"gocloud.dev/gcerrors"
)

// fileblob keeps object attributes in sidecar files with this extension and
// refuses to serve keys that end with it.
const fileblobAttrsExt = ".attrs"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type bucketOpener func(ctx context.Context) (*blob.Bucket, error)

// blobSaltStore reads the whole salt object on every call. The bucket is
// opened per read as well, so a relocated resource is noticed immediately.
type blobSaltStore struct {
	source      string
	key         string
	open        bucketOpener
	readTimeout time.Duration
}

// Option configures a salt store.
type Option func(*blobSaltStore)

// WithReadTimeout bounds every read of the backing object.
func WithReadTimeout(timeout time.Duration) Option {
	return func(s *blobSaltStore) {
		s.readTimeout = timeout
	}
}

// New creates a salt store for source. Source is a filesystem path, a
// file:// URL, or any gocloud bucket URL followed by the object key,
// e.g. gs://bucket/salts/salt.txt.
func New(source string, opts ...Option) (repository.SaltStore, error) {
	if strings.TrimSpace(source) == "" {
		return nil, errors.WithStack(domainerrors.ErrInvalidConfiguration.WithDetails("salt source must not be blank"))
	}

	open, key, err := resolve(source)
	if err != nil {
		return nil, err
	}

	store := &blobSaltStore{
		source: source,
		key:    key,
		open:   open,
	}
	for _, opt := range opts {
		opt(store)
	}

	return store, nil
}

func resolve(source string) (bucketOpener, string, error) {
	if !strings.Contains(source, "://") {
		return localOpener(source)
	}

	u, err := url.Parse(source)
	if err != nil {
		return nil, "", errors.WithStack(domainerrors.ErrInvalidConfiguration.WithDetails("salt source is not a valid URL: " + err.Error()))
	}

	if u.Scheme == fileblob.Scheme {
		return localOpener(filepath.FromSlash(u.Path))
	}

	key := strings.TrimPrefix(u.Path, "/")
	if key == "" || strings.HasSuffix(key, "/") {
		return nil, "", errors.WithStack(domainerrors.ErrInvalidConfiguration.WithDetails("salt source must name an object: " + source))
	}

	bucketURL := url.URL{Scheme: u.Scheme, Host: u.Host, RawQuery: u.RawQuery}
	open := func(ctx context.Context) (*blob.Bucket, error) {
		return blob.OpenBucket(ctx, bucketURL.String())
	}

	return open, path.Clean(key), nil
}

func localOpener(p string) (bucketOpener, string, error) {
	abs, err := filepath.Abs(p)
	if err != nil {
		return nil, "", errors.Wrapf(err, "resolve salt path %q", p)
	}

	dir, key := filepath.Split(abs)
	if key == "" {
		return nil, "", errors.WithStack(domainerrors.ErrInvalidConfiguration.WithDetails("salt source must name a file: " + p))
	}
	if strings.HasSuffix(key, fileblobAttrsExt) {
		return nil, "", errors.WithStack(domainerrors.ErrInvalidConfiguration.WithDetails("salt file must not use the reserved .attrs extension: " + p))
	}

	open := func(context.Context) (*blob.Bucket, error) {
		return fileblob.OpenBucket(dir, nil)
	}

	return open, key, nil
}

// ReadLines implements repository.SaltStore.
func (s *blobSaltStore) ReadLines(ctx context.Context) ([]string, error) {
	if s.readTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.readTimeout)
		defer cancel()
	}

	bucket, err := s.open(ctx)
	if err != nil {
		return nil, s.translate(err, "open salt bucket")
	}
	defer bucket.Close()

	data, err := bucket.ReadAll(ctx, s.key)
	if err != nil {
		return nil, s.translate(err, "read salt object")
	}

	return splitLines(data), nil
}

// Exists implements repository.SaltStore.
func (s *blobSaltStore) Exists(ctx context.Context) (bool, error) {
	bucket, err := s.open(ctx)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}

		return false, errors.Wrap(err, "open salt bucket")
	}
	defer bucket.Close()

	ok, err := bucket.Exists(ctx, s.key)
	if err != nil {
		return false, errors.Wrap(err, "stat salt object")
	}

	return ok, nil
}

func (s *blobSaltStore) translate(err error, op string) error {
	if isNotFound(err) {
		return errors.WithStack(domainerrors.ErrResourceNotFound.WithDetails(s.source))
	}

	return errors.Wrapf(err, "%s %s", op, s.source)
}

func isNotFound(err error) bool {
	return gcerrors.Code(err) == gcerrors.NotFound || errors.Is(err, fs.ErrNotExist)
}

// splitLines splits on "\n", "\r\n" or a lone "\r", dropping a leading UTF-8
// BOM and the empty entry after a final line break. Line length is unbounded.
func splitLines(data []byte) []string {
	data = bytes.TrimPrefix(data, utf8BOM)

	var lines []string
	for len(data) > 0 {
		i := bytes.IndexAny(data, "\r\n")
		if i < 0 {
			lines = append(lines, string(data))

			break
		}

		lines = append(lines, string(data[:i]))
		if data[i] == '\r' && i+1 < len(data) && data[i+1] == '\n' {
			i++
		}
		data = data[i+1:]
	}

	return lines
}
