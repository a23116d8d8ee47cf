// Package archive packs generated projects into zip files for download.
package archive

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"github.com/react-three/create/internal/output"
	"github.com/react-three/create/internal/project"
)

// WriteZip writes files as a zip archive to w. Every entry is placed below
// root when root is not empty. Remote files are fetched with fetcher.
// Paths leaving the archive root are rejected with output.ErrUnsafePath.
func WriteZip(ctx context.Context, w io.Writer, root string, files project.FileMap, fetcher output.Fetcher) error {
	if err := output.CheckPaths(files); err != nil {
		return err
	}
	contents, err := output.Resolve(ctx, fetcher, files)
	if err != nil {
		return err
	}

	zw := zip.NewWriter(w)
	modified := time.Now()
	for _, name := range files.Paths() {
		if err := addDataToZip(zw, contents[name], path.Join(root, name), modified); err != nil {
			return fmt.Errorf("failed to add %s to archive: %w", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return fmt.Errorf("failed to finish archive: %w", err)
	}
	return nil
}

// addDataToZip adds raw data to the zip archive
func addDataToZip(zw *zip.Writer, data []byte, name string, modified time.Time) error {
	header := &zip.FileHeader{
		Name:     name,
		Method:   zip.Deflate,
		Modified: modified,
	}
	header.SetMode(0644)

	entry, err := zw.CreateHeader(header)
	if err != nil {
		return err
	}

	_, err = entry.Write(data)
	return err
}
