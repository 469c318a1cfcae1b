package sources

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"journal-loader/core/reconcile"
	"journal-loader/core/storage"

	"github.com/minio/minio-go/v7"
)

// Kind selects the parser of a source.
type Kind string

const (
	KindMedline Kind = "medline"
	KindPMC     Kind = "pmc"
)

const s3Scheme = "s3://"

// IsRemote reports whether the locator points at object storage.
func IsRemote(locator string) bool {
	return strings.HasPrefix(locator, s3Scheme)
}

// ParseLocator splits an s3://bucket/object locator.
func ParseLocator(locator string) (bucket, object string, err error) {
	rest, ok := strings.CutPrefix(locator, s3Scheme)
	if !ok {
		return "", "", fmt.Errorf("%w: %q is not an s3 locator", reconcile.ErrConfiguration, locator)
	}
	bucket, object, _ = strings.Cut(rest, "/")
	if bucket == "" || object == "" {
		return "", "", fmt.Errorf("%w: s3 locator %q needs a bucket and an object", reconcile.ErrConfiguration, locator)
	}
	return bucket, object, nil
}

// ConfineLocal resolves a local locator inside baseDir and returns the
// resolved path. Relative locators are taken relative to baseDir. Paths
// escaping baseDir, directly or through a symlink, and any local locator when
// baseDir is empty are rejected with ErrConfiguration.
func ConfineLocal(baseDir, locator string) (string, error) {
	if baseDir == "" {
		return "", fmt.Errorf("%w: local locator %q not accepted, only s3:// locators are allowed", reconcile.ErrConfiguration, locator)
	}

	base, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("%w: base dir %q: %w", reconcile.ErrConfiguration, baseDir, err)
	}

	path := locator
	if !filepath.IsAbs(path) {
		path = filepath.Join(base, path)
	}
	path = filepath.Clean(path)
	if !within(base, path) {
		return "", fmt.Errorf("%w: %q is outside %s", reconcile.ErrConfiguration, locator, base)
	}

	// A missing file is reported when the source is opened.
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		realBase, err := filepath.EvalSymlinks(base)
		if err != nil {
			realBase = base
		}
		if !within(realBase, resolved) {
			return "", fmt.Errorf("%w: %q is outside %s", reconcile.ErrConfiguration, locator, base)
		}
	}
	return path, nil
}

func within(base, path string) bool {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}

// Open opens a source of the given kind. Locators with the s3:// scheme are
// fetched through client, anything else is read from the local filesystem.
func Open(ctx context.Context, kind Kind, locator string, client storage.Client) (reconcile.Source, error) {
	if kind != KindMedline && kind != KindPMC {
		return nil, fmt.Errorf("%w: unknown source kind %q", reconcile.ErrConfiguration, kind)
	}
	if strings.TrimSpace(locator) == "" {
		return nil, fmt.Errorf("%w: empty %s locator", reconcile.ErrConfiguration, kind)
	}

	name := string(kind) + ":" + locator

	var (
		src reconcile.Source
		err error
	)
	if IsRemote(locator) {
		src, err = openRemote(ctx, kind, name, locator, client)
	} else {
		src, err = openLocal(kind, name, locator)
	}
	if err != nil {
		return nil, err
	}
	return src, nil
}

func openLocal(kind Kind, name, path string) (reconcile.Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", reconcile.ErrSourceRead, name, err)
	}
	return newSource(kind, name, f), nil
}

func openRemote(ctx context.Context, kind Kind, name, locator string, client storage.Client) (reconcile.Source, error) {
	bucket, object, err := ParseLocator(locator)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("%w: %s requires object storage, none configured", reconcile.ErrConfiguration, name)
	}

	exists, err := client.BucketExists(ctx, bucket)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", reconcile.ErrSourceRead, name, err)
	}
	if !exists {
		return nil, fmt.Errorf("%w: %s: bucket %q does not exist", reconcile.ErrConfiguration, name, bucket)
	}

	// GetObject is lazy; stat first so a missing object fails before the run.
	if _, err := client.StatObject(ctx, bucket, object, minio.StatObjectOptions{}); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", reconcile.ErrSourceRead, name, err)
	}

	rc, err := client.GetObject(ctx, bucket, object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", reconcile.ErrSourceRead, name, err)
	}
	return newSource(kind, name, rc), nil
}

func newSource(kind Kind, name string, rc io.ReadCloser) reconcile.Source {
	if kind == KindPMC {
		return NewPMC(name, rc)
	}
	return NewMedline(name, rc)
}
