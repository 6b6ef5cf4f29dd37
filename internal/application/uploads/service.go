package uploads

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// MaxFiles is the per-request image cap for a listing.
const MaxFiles = 5

// FilePrefix starts every stored file name.
const FilePrefix = "business-"

// PublicDir prefixes returned paths; it matches the static /uploads route,
// whatever Dir is on disk.
const PublicDir = "uploads"

var ErrTooManyFiles = fmt.Errorf("At most %d images are allowed.", MaxFiles)

// Service stores listing images on a filesystem under Dir. Returned paths are
// public, e.g. "uploads/business-1700000000000000000.jpg", and never expose Dir.
type Service struct {
	Fs  afero.Fs
	Dir string
	Now func() time.Time // injectable for tests
}

// NewLocal returns a Service backed by the OS filesystem, creating dir if needed.
func NewLocal(dir string) (*Service, error) {
	fs := afero.NewOsFs()
	if err := fs.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Service{Fs: fs, Dir: dir, Now: time.Now}, nil
}

// Save writes files in order and returns their stored paths. On any failure
// the files already written by this call are removed.
func (s *Service) Save(files []*multipart.FileHeader) ([]string, error) {
	if len(files) > MaxFiles {
		return nil, ErrTooManyFiles
	}
	paths := make([]string, 0, len(files))
	for _, fh := range files {
		p, err := s.saveOne(fh)
		if err != nil {
			s.Remove(paths)
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// Remove deletes previously saved files; missing files are ignored.
func (s *Service) Remove(paths []string) {
	for _, p := range paths {
		name := path.Base(p)
		_ = s.Fs.Remove(filepath.Join(s.Dir, name))
	}
}

func (s *Service) saveOne(fh *multipart.FileHeader) (string, error) {
	src, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("open upload %q: %w", fh.Filename, err)
	}
	defer src.Close()

	ext := filepath.Ext(fh.Filename)
	stamp := s.now().UnixNano()
	for {
		name := fmt.Sprintf("%s%d%s", FilePrefix, stamp, ext)
		dst, err := s.Fs.OpenFile(filepath.Join(s.Dir, name), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if errors.Is(err, os.ErrExist) {
			stamp++
			continue
		}
		if err != nil {
			return "", fmt.Errorf("create %s: %w", name, err)
		}
		if _, err := io.Copy(dst, src); err != nil {
			dst.Close()
			_ = s.Fs.Remove(filepath.Join(s.Dir, name))
			return "", fmt.Errorf("write %s: %w", name, err)
		}
		if err := dst.Close(); err != nil {
			return "", fmt.Errorf("close %s: %w", name, err)
		}
		return path.Join(PublicDir, name), nil
	}
}

func (s *Service) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}
