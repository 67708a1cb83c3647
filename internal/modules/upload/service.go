package upload

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

const (
	DefaultMaxSize = 5 << 20
	StaticURLBase  = "/uploads"
)

// allowed maps accepted MIME types to the extension stored on disk.
var allowed = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/gif":       ".gif",
	"image/webp":      ".webp",
	"application/pdf": ".pdf",
}

// Stored describes a saved file. Filename is what complaints keep in
// their attachment field.
type Stored struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
	Size     int64  `json:"size"`
}

// Service writes complaint attachments to a local directory served
// statically under /uploads.
type Service struct {
	dir     string
	maxSize int64
}

func NewService(dir string, maxSize int64) *Service {
	if dir == "" {
		dir = "./uploads"
	}
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	return &Service{dir: dir, maxSize: maxSize}
}

func (s *Service) Dir() string { return s.dir }

func (s *Service) MaxSize() int64 { return s.maxSize }

// Save sniffs the content type, rejects anything outside the allow-list
// and stores the file under a random name. The client filename is ignored.
func (s *Service) Save(fh *multipart.FileHeader) (*Stored, error) {
	if fh == nil {
		return nil, ErrNoFile
	}
	if fh.Size == 0 {
		return nil, ErrEmptyFile
	}
	if fh.Size > s.maxSize {
		return nil, ErrFileTooLarge
	}

	file, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer file.Close()

	mt, err := mimetype.DetectReader(file)
	if err != nil {
		return nil, fmt.Errorf("detect type: %w", err)
	}
	ext, ok := extensionFor(mt)
	if !ok {
		return nil, ErrInvalidMimeType
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("rewind upload: %w", err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload directory: %w", err)
	}

	name := uuid.NewString() + ext
	path := filepath.Join(s.dir, name)
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create file: %w", err)
	}

	written, err := io.Copy(dst, io.LimitReader(file, s.maxSize+1))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(path)
		return nil, fmt.Errorf("write file: %w", err)
	}
	if written > s.maxSize {
		_ = os.Remove(path)
		return nil, ErrFileTooLarge
	}

	return &Stored{
		Filename: name,
		URL:      StaticURLBase + "/" + name,
		MimeType: mt.String(),
		Size:     written,
	}, nil
}

func extensionFor(mt *mimetype.MIME) (string, bool) {
	for m := mt; m != nil; m = m.Parent() {
		if ext, ok := allowed[m.String()]; ok {
			return ext, true
		}
	}
	return "", false
}
