package main

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/praxisworks/recall/core"
	"github.com/praxisworks/recall/storage"
)

// directorySource serves a directory of text files as the document
// corpus. Document IDs are derived from the relative path, so the same
// tree always yields the same IDs. The CLI has no per-user access
// control; every user sees the whole directory.
type directorySource struct {
	root string
}

var _ storage.DocumentSource = (*directorySource)(nil)

func newDirectorySource(root string) (*directorySource, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("corpus directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("corpus path %s is not a directory", root)
	}
	return &directorySource{root: root}, nil
}

func (d *directorySource) GetDocuments(ctx context.Context, userId string) ([]*core.Document, error) {
	docs := []*core.Document{}
	err := filepath.WalkDir(d.root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if entry.IsDir() || !isTextFile(path) {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(d.root, path)
		if err != nil {
			return err
		}
		info, err := entry.Info()
		var created time.Time
		if err == nil {
			created = info.ModTime()
		}

		docs = append(docs, &core.Document{
			Id:        core.IDFromContent(rel),
			Name:      entry.Name(),
			Content:   string(content),
			MimeType:  "text/plain",
			UserId:    userId,
			CreatedAt: created,
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func isTextFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".txt", ".md", ".markdown", ".text":
		return true
	default:
		return false
	}
}
