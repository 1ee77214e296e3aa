// Package ingest discovers certificate scans across the configured input
// directories and hands them to the OCR chain as tagged sources.
package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/masaki-ito/weldreg/constants"
)

// Root is one input directory. Its label becomes part of the origin tag
// so merged results can say which directory contributed a candidate.
type Root struct {
	Label string
	Path  string
}

// Source is one discovered file, ready for the OCR chain.
type Source struct {
	FileID    uuid.UUID
	RootLabel string
	Path      string
	HashHex   string
	Format    string
	Dedup     bool // identical content already seen under an earlier root
	Err       string
}

// DirStats aggregates a walk.
type DirStats struct {
	Scanned      uint32
	Matched      uint32
	Deduplicated uint32
	Failed       uint32
}

// ScanRoots walks every root in order, filters by includeExts (or the
// defaults), skips hidden entries if requested, and content-hashes each
// match so the same scan dropped in two directories is ingested once.
// A failing file is recorded and skipped; it never aborts the walk.
func ScanRoots(ctx context.Context, roots []Root, includeExts []string, skipHidden bool, logger *slog.Logger) ([]Source, DirStats, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if len(roots) == 0 {
		return nil, DirStats{}, errors.New("at least one root is required")
	}

	exts := map[string]struct{}{}
	if len(includeExts) == 0 {
		exts = constants.AllowedExtensions
	} else {
		for _, e := range includeExts {
			if e = constants.NormalizeExt(strings.TrimSpace(e)); e != "" {
				exts[e] = struct{}{}
			}
		}
	}

	var sources []Source
	var stats DirStats
	seenHash := map[string]struct{}{}

	for _, root := range roots {
		if strings.TrimSpace(root.Path) == "" {
			return nil, stats, errors.New("root path is required")
		}
		err := filepath.WalkDir(root.Path, func(path string, d fs.DirEntry, walkErr error) error {
			if err := ctx.Err(); err != nil {
				return err
			}
			stats.Scanned++
			if walkErr != nil {
				sources = append(sources, Source{RootLabel: root.Label, Path: path, Err: walkErr.Error()})
				stats.Failed++
				return nil // continue walking
			}
			if skipHidden && isHidden(path) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() {
				return nil
			}
			ext := constants.NormalizeExt(filepath.Ext(path))
			if _, ok := exts[ext]; !ok {
				return nil
			}
			stats.Matched++

			hashHex, err := hashFile(path)
			if err != nil {
				sources = append(sources, Source{RootLabel: root.Label, Path: path, Err: err.Error()})
				stats.Failed++
				return nil
			}
			_, dup := seenHash[hashHex]
			if dup {
				stats.Deduplicated++
			} else {
				seenHash[hashHex] = struct{}{}
			}
			sources = append(sources, Source{
				FileID:    uuid.New(),
				RootLabel: root.Label,
				Path:      path,
				HashHex:   hashHex,
				Format:    constants.MapExtToFormat(ext),
				Dedup:     dup,
			})
			return nil
		})
		if err != nil {
			return sources, stats, err
		}
	}

	logger.Info("roots scanned",
		"roots", len(roots),
		"matched", stats.Matched,
		"deduplicated", stats.Deduplicated,
		"failed", stats.Failed,
	)
	return sources, stats, nil
}

func hashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

func isHidden(path string) bool {
	base := filepath.Base(path)
	return strings.HasPrefix(base, ".") && base != "." && base != ".."
}
