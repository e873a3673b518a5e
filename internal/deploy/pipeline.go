package deploy

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/anuvad-labs/translation-deploy-backend/internal/services"
)

// ErrBadArchive marks an upload that is not a valid zip.
var ErrBadArchive = errors.New("invalid zip file")

// SiteHost is the slice of the hosting provider the pipeline needs.
type SiteHost interface {
	CreateSite(ctx context.Context) (*services.Site, error)
	DeployZip(ctx context.Context, siteID, zipPath string) (*services.Deploy, error)
}

type Result struct {
	URL      string
	SiteID   string
	DeployID string
}

// Run executes one deployment job: persist the upload, extract it, flatten a
// single-root archive, guarantee an index.html entry point, create a new
// site, re-archive the processed tree and push it as the site's deploy. The
// temporary workspace is removed on every exit path.
func Run(ctx context.Context, upload io.Reader, host SiteHost, log *logrus.Entry) (*Result, error) {
	tempDir, err := os.MkdirTemp("", "site-deploy-")
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := os.RemoveAll(tempDir); err != nil {
			log.WithError(err).Warn("Failed to clean up temporary directory")
		}
	}()
	log.WithField("dir", tempDir).Info("Created temporary directory")

	zipPath := filepath.Join(tempDir, "upload.zip")
	if err := saveUpload(zipPath, upload); err != nil {
		return nil, err
	}

	extractDir := filepath.Join(tempDir, "extracted")
	if err := os.MkdirAll(extractDir, 0o755); err != nil {
		return nil, err
	}
	if err := extractArchive(zipPath, extractDir); err != nil {
		return nil, err
	}
	log.WithField("dir", extractDir).Info("Extracted zip file")

	if err := flattenSingleRoot(extractDir, log); err != nil {
		return nil, err
	}
	if err := ensureIndexHTML(extractDir, log); err != nil {
		return nil, err
	}

	site, err := host.CreateSite(ctx)
	if err != nil {
		return nil, err
	}
	log.WithField("site_id", site.ID).Info("Created new site")

	processedPath := filepath.Join(tempDir, "processed.zip")
	if err := archiveTree(extractDir, processedPath); err != nil {
		return nil, err
	}

	dep, err := host.DeployZip(ctx, site.ID, processedPath)
	if err != nil {
		return nil, err
	}
	log.WithFields(logrus.Fields{
		"deploy_id": dep.ID,
		"url":       dep.SiteURL(),
	}).Info("Deployment successful")

	return &Result{
		URL:      dep.SiteURL(),
		SiteID:   site.ID,
		DeployID: dep.ID,
	}, nil
}

func saveUpload(zipPath string, upload io.Reader) error {
	out, err := os.Create(zipPath)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, upload); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func extractArchive(zipPath, destDir string) error {
	r, err := zip.OpenReader(zipPath)
	if err != nil {
		if errors.Is(err, zip.ErrFormat) || errors.Is(err, zip.ErrInsecurePath) {
			return fmt.Errorf("%w: %v", ErrBadArchive, err)
		}
		return err
	}
	defer r.Close()

	for _, file := range r.File {
		target, err := safeJoin(destDir, file.Name)
		if err != nil {
			return err
		}

		if file.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return err
			}
			continue
		}

		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return err
		}
		if err := extractFile(file, target); err != nil {
			return err
		}
	}

	return nil
}

func extractFile(file *zip.File, target string) error {
	rc, err := file.Open()
	if err != nil {
		return err
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, file.Mode())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, rc); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// safeJoin rejects archive entries that would escape the extraction root.
func safeJoin(root, name string) (string, error) {
	target := filepath.Join(root, filepath.FromSlash(name))
	if target != filepath.Clean(root) && !strings.HasPrefix(target, filepath.Clean(root)+string(os.PathSeparator)) {
		return "", fmt.Errorf("%w: illegal entry path %q", ErrBadArchive, name)
	}
	return target, nil
}

// flattenSingleRoot collapses an archive that wraps its content in a single
// top-level directory (a GitHub-style export) by moving the children up one
// level and removing the wrapper.
func flattenSingleRoot(extractDir string, log *logrus.Entry) error {
	entries, err := os.ReadDir(extractDir)
	if err != nil {
		return err
	}
	if len(entries) != 1 || !entries[0].IsDir() {
		return nil
	}

	nested := filepath.Join(extractDir, entries[0].Name())
	children, err := os.ReadDir(nested)
	if err != nil {
		return err
	}
	for _, child := range children {
		src := filepath.Join(nested, child.Name())
		dst := filepath.Join(extractDir, child.Name())
		if err := os.Rename(src, dst); err != nil {
			return err
		}
	}

	log.WithField("dir", entries[0].Name()).Info("Flattened nested directory structure")
	return os.Remove(nested)
}

// ensureIndexHTML copies the first HTML file found in the tree to the root
// as index.html when none exists there. A tree with no HTML files at all is
// deployed as-is; the site just has no working entry point.
func ensureIndexHTML(extractDir string, log *logrus.Entry) error {
	indexPath := filepath.Join(extractDir, "index.html")
	if _, err := os.Stat(indexPath); err == nil {
		return nil
	}

	var firstHTML string
	err := filepath.WalkDir(extractDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		switch strings.ToLower(filepath.Ext(d.Name())) {
		case ".html", ".htm":
			firstHTML = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil {
		return err
	}

	if firstHTML == "" {
		log.Warn("No HTML files found in the archive; deploying without an entry point")
		return nil
	}

	content, err := os.ReadFile(firstHTML)
	if err != nil {
		return err
	}
	log.WithField("file", filepath.Base(firstHTML)).Info("Copied first HTML file to index.html")
	return os.WriteFile(indexPath, content, 0o644)
}

// archiveTree writes a fresh zip of the processed tree, with entry names
// relative to the extraction root.
func archiveTree(srcDir, zipPath string) error {
	out, err := os.Create(zipPath)
	if err != nil {
		return err
	}
	zw := zip.NewWriter(out)

	walkErr := filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}
		w, err := zw.Create(filepath.ToSlash(rel))
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		defer f.Close()
		_, err = io.Copy(w, f)
		return err
	})
	if walkErr != nil {
		zw.Close()
		out.Close()
		return walkErr
	}

	if err := zw.Close(); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
