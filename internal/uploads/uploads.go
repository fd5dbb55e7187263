package uploads

import (
	"errors"
	"fmt"
	"io"
	"math/rand"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/velavancrackers/pos/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const maxImageSize = 5 << 20 // 5MB

var (
	ErrNotAnImage = errors.New("not_an_image")
	ErrTooLarge   = errors.New("file_too_large")
)

// Store saves product images under the configured upload directory and
// serves back web paths of the form /uploads/<file>.
type Store struct {
	dir string
	log *zap.Logger
}

type Params struct {
	fx.In

	Config config.Config
	Log    *zap.Logger
}

func New(p Params) (*Store, error) {
	if err := os.MkdirAll(p.Config.UploadDir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Store{
		dir: p.Config.UploadDir,
		log: p.Log.Named("uploads"),
	}, nil
}

// Dir is the filesystem directory images live in, for static serving.
func (s *Store) Dir() string { return s.dir }

// Save validates and writes an uploaded product image, returning its web path.
func (s *Store) Save(header *multipart.FileHeader) (string, error) {
	if header.Size > maxImageSize {
		return "", ErrTooLarge
	}
	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return "", ErrNotAnImage
	}

	src, err := header.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	ext := strings.ToLower(filepath.Ext(header.Filename))
	name := fmt.Sprintf("product-%d-%d%s", time.Now().UnixMilli(), rand.Int63n(1_000_000_000), ext)

	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return "/uploads/" + name, nil
}

// Remove deletes a previously saved image by its web path. Unknown paths are
// ignored so a product update never fails on a missing old image.
func (s *Store) Remove(webPath string) {
	name, ok := strings.CutPrefix(webPath, "/uploads/")
	if !ok || name == "" || strings.Contains(name, "/") {
		return
	}
	if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
		s.log.Warn("failed to remove image", zap.String("path", webPath), zap.Error(err))
	}
}

var Module = fx.Module("uploads",
	fx.Provide(New),
)
