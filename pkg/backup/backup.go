// Package backup copies the content tree into timestamped directories and prunes old copies.
package backup

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-pkgz/lgr"

	"github.com/umputun/rootbyte/pkg/store"
)

// backup layout
const (
	DefaultKeep  = 10
	ManifestFile = "backup-manifest.json"
	dirPrefix    = "content-"
	stampLayout  = "2006-01-02T15-04-05"
	timeLayout   = "2006-01-02T15:04:05.000Z07:00"
	createdBy    = "rootbyte backup"
)

// Manifest describes a backup, stored in its directory
type Manifest struct {
	Timestamp     string `json:"timestamp"`
	BackupType    string `json:"backup_type"`
	FilesBackedUp int    `json:"files_backed_up"`
	SourceDir     string `json:"source_directory"`
	BackupDir     string `json:"backup_directory"`
	CreatedBy     string `json:"created_by"`
}

// Report is the result of a backup run
type Report struct {
	Path    string
	Files   int
	Bytes   int64
	Removed []string
}

// Size returns human readable size of copied files
func (r Report) Size() string {
	return humanize.Bytes(uint64(max(r.Bytes, 0))) //nolint:gosec // negative size clamped
}

// Backup copies Source into Dir/content-<timestamp> and keeps the Keep newest copies
type Backup struct {
	Source string
	Dir    string
	Keep   int
	Now    func() time.Time
}

// Run makes a backup. Missing source directory is an error.
func (b *Backup) Run(ctx context.Context) (Report, error) {
	if fi, err := os.Stat(b.Source); err != nil || !fi.IsDir() {
		return Report{}, fmt.Errorf("content directory %s not found", b.Source)
	}

	now := time.Now().UTC()
	if b.Now != nil {
		now = b.Now().UTC()
	}
	dest := filepath.Join(b.Dir, dirPrefix+now.Format(stampLayout))
	lgr.Printf("[INFO] backing up %s to %s", b.Source, dest)

	files, size, err := b.copyTree(ctx, b.Source, dest)
	if err != nil {
		return Report{}, err
	}

	manifest := Manifest{
		Timestamp:     now.Format(timeLayout),
		BackupType:    "content",
		FilesBackedUp: files,
		SourceDir:     b.Source,
		BackupDir:     dest,
		CreatedBy:     createdBy,
	}
	if err := store.Save(filepath.Join(dest, ManifestFile), manifest); err != nil {
		return Report{}, fmt.Errorf("write manifest: %w", err)
	}

	removed, err := b.prune()
	if err != nil {
		return Report{}, err
	}

	rep := Report{Path: dest, Files: files, Bytes: size, Removed: removed}
	lgr.Printf("[INFO] backup complete, %d files, %s", rep.Files, rep.Size())
	return rep, nil
}

// copyTree copies regular files of src into dst recursively. The backup directory itself is
// skipped if it lives inside src.
func (b *Backup) copyTree(ctx context.Context, src, dst string) (files int, size int64, err error) {
	backupDir, _ := filepath.Abs(b.Dir)
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if abs, _ := filepath.Abs(path); d.IsDir() && abs == backupDir {
			return filepath.SkipDir
		}

		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o750)
		}
		if !d.Type().IsRegular() {
			return nil
		}
		n, err := copyFile(path, target)
		if err != nil {
			return err
		}
		files++
		size += n
		return nil
	})
	if err != nil {
		return 0, 0, fmt.Errorf("copy %s: %w", src, err)
	}
	return files, size, nil
}

// prune removes the oldest content-* directories beyond Keep
func (b *Backup) prune() ([]string, error) {
	keep := b.Keep
	if keep <= 0 {
		keep = DefaultKeep
	}

	names, err := List(b.Dir)
	if err != nil {
		return nil, err
	}
	if len(names) <= keep {
		return nil, nil
	}

	removed := names[keep:]
	lgr.Printf("[INFO] removing %d old backups", len(removed))
	for _, name := range removed {
		if err := os.RemoveAll(filepath.Join(b.Dir, name)); err != nil {
			return nil, fmt.Errorf("remove old backup %s: %w", name, err)
		}
	}
	return removed, nil
}

// List returns backup directory names, newest first
func List(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read backups: %w", err)
	}
	var res []string
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), dirPrefix) {
			res = append(res, e.Name())
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(res)))
	return res, nil
}

func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src) //nolint:gosec // path comes from walking the content dir
	if err != nil {
		return 0, fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644) //nolint:gosec // backup copies are public content
	if err != nil {
		return 0, fmt.Errorf("create %s: %w", dst, err)
	}
	n, err := io.Copy(out, in)
	if err != nil {
		_ = out.Close()
		return 0, fmt.Errorf("copy %s: %w", src, err)
	}
	if err := out.Close(); err != nil {
		return 0, fmt.Errorf("close %s: %w", dst, err)
	}
	return n, nil
}
