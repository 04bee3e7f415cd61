// Package ingest builds file records from disk and imports them into the store.
package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/lithammer/shortuuid/v4"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/hrygo/filemap/internal/profile"
	"github.com/hrygo/filemap/plugin/textextract"
	"github.com/hrygo/filemap/store"
)

// The stdlib table misses a few extensions we care about, and the
// system table is not guaranteed to exist.
func init() {
	_ = mime.AddExtensionType(".md", "text/markdown; charset=utf-8")
	_ = mime.AddExtensionType(".markdown", "text/markdown; charset=utf-8")
	_ = mime.AddExtensionType(".txt", "text/plain; charset=utf-8")
}

// importConcurrency bounds parallel file imports during directory walks.
const importConcurrency = 4

// maxIndexBytes caps how much of a file is read for full-text indexing.
const maxIndexBytes = 1 << 20

// Ingestor imports files from disk into the workspace.
type Ingestor struct {
	store   *store.Store
	profile *profile.Profile
}

// NewIngestor creates a new Ingestor.
func NewIngestor(s *store.Store, p *profile.Profile) *Ingestor {
	return &Ingestor{store: s, profile: p}
}

// Options controls how a file is imported.
type Options struct {
	// Managed copies the file into the workspace's managed directory
	// instead of referencing it in place.
	Managed bool
	// TagUIDs are attached to the file after creation.
	TagUIDs []string
}

// FileFromPath builds a file record from a path on disk without touching
// the store: size and timestamps from stat, sha256 content hash, MIME
// type from the extension.
func FileFromPath(path string) (*store.File, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, errors.Wrapf(err, "resolve path %q", path)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, errors.Wrapf(err, "stat %q", absPath)
	}
	if info.IsDir() {
		return nil, errors.Errorf("%q is a directory", absPath)
	}

	hash, err := hashFile(absPath)
	if err != nil {
		return nil, err
	}

	mimeType := mime.TypeByExtension(filepath.Ext(absPath))
	if mimeType == "" {
		mimeType = "application/octet-stream"
	}

	return &store.File{
		UID:      shortuuid.New(),
		Name:     filepath.Base(absPath),
		Path:     absPath,
		Size:     info.Size(),
		MimeType: mimeType,
		Hash:     hash,
	}, nil
}

// Import ingests a single file: builds its record, optionally copies it
// into the managed directory, creates it in the store, attaches tags and
// indexes its text content.
func (in *Ingestor) Import(ctx context.Context, path string, opts Options) (*store.File, error) {
	file, err := FileFromPath(path)
	if err != nil {
		return nil, err
	}

	if opts.Managed {
		managedPath, err := in.copyToManaged(file)
		if err != nil {
			return nil, err
		}
		file.Path = managedPath
		file.Managed = true
	}

	created, err := in.store.CreateFile(ctx, file)
	if err != nil {
		return nil, errors.Wrap(err, "create file")
	}
	for _, tagUID := range opts.TagUIDs {
		if err := in.store.AddFileTag(ctx, created.UID, tagUID); err != nil {
			return nil, errors.Wrapf(err, "attach tag %q", tagUID)
		}
	}

	if content, ok := extractText(created.Path, created.MimeType); ok {
		if err := in.store.UpsertFileContent(ctx, created.UID, content); err != nil {
			return nil, errors.Wrap(err, "index file content")
		}
	}
	return created, nil
}

// ImportDirectory walks a directory and imports every regular file,
// skipping dot files and dot directories. Imports run concurrently;
// results keep the walk order.
func (in *Ingestor) ImportDirectory(ctx context.Context, dir string, opts Options) ([]*store.File, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if strings.HasPrefix(d.Name(), ".") && path != dir {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.Wrapf(err, "walk %q", dir)
	}

	files := make([]*store.File, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(importConcurrency)
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			file, err := in.Import(ctx, path, opts)
			if err != nil {
				return err
			}
			files[i] = file
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// copyToManaged copies the file into the managed directory under a fresh
// collision-free name, keeping the original extension.
func (in *Ingestor) copyToManaged(file *store.File) (string, error) {
	if err := os.MkdirAll(in.profile.ManagedDir, 0o750); err != nil {
		return "", errors.Wrap(err, "create managed dir")
	}

	dst := filepath.Join(in.profile.ManagedDir, uuid.New().String()+filepath.Ext(file.Name))
	src, err := os.Open(file.Path)
	if err != nil {
		return "", errors.Wrapf(err, "open %q", file.Path)
	}
	defer src.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return "", errors.Wrapf(err, "create %q", dst)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", errors.Wrapf(err, "copy to %q", dst)
	}
	if err := out.Close(); err != nil {
		return "", errors.Wrapf(err, "flush %q", dst)
	}
	return dst, nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", errors.Wrapf(err, "open %q", path)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", errors.Wrapf(err, "hash %q", path)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// extractText returns the indexable plain text of a file, if it has any.
// Markdown is stripped to text; other text types are indexed as-is.
func extractText(path, mimeType string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	isMarkdown := ext == ".md" || ext == ".markdown"
	if !isMarkdown && !strings.HasPrefix(mimeType, "text/") {
		return "", false
	}

	f, err := os.Open(path)
	if err != nil {
		return "", false
	}
	defer f.Close()

	raw, err := io.ReadAll(io.LimitReader(f, maxIndexBytes))
	if err != nil {
		return "", false
	}

	if isMarkdown {
		return textextract.Markdown(raw), true
	}
	return string(raw), true
}
