package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"time"
)

// PublicPrefix is where the stored files are served from.
const PublicPrefix = "/uploads/"

// Store writes uploaded images to a local directory. Files are named by
// upload time in milliseconds, keeping the original extension.
type Store struct {
	dir string
}

func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, os.ModePerm); err != nil {
		return nil, err
	}
	return &Store{dir: dir}, nil
}

func (s *Store) Dir() string {
	return s.dir
}

// Save streams the multipart file to disk and returns its public path.
// The file is fully written before Save returns, so a following DB insert
// never references a half-written image.
func (s *Store) Save(file multipart.File, header *multipart.FileHeader) (string, error) {
	name := fmt.Sprintf("%d%s", time.Now().UnixMilli(), filepath.Ext(header.Filename))
	dst, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", err
	}
	defer dst.Close()
	if _, err := io.Copy(dst, file); err != nil {
		return "", err
	}
	return PublicPrefix + name, nil
}
