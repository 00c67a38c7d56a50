package upload

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"voiceguard/detection"

	"github.com/google/uuid"
)

var (
	// ErrTooLarge is returned when a payload exceeds the size ceiling
	ErrTooLarge = detection.WithKind(detection.KindPayloadTooLarge, errors.New("file exceeds maximum upload size"))
	// ErrInvalidBase64 is returned when a base64 payload cannot be decoded
	ErrInvalidBase64 = detection.WithKind(detection.KindInvalidInput, errors.New("invalid base64 audio payload"))
	// ErrEmpty is returned for a zero-length payload
	ErrEmpty = detection.WithKind(detection.KindInvalidInput, errors.New("empty audio payload"))
)

// Scratch stores uploaded audio in a directory under unique names
type Scratch struct {
	dir     string
	maxSize int64
}

// NewScratch creates dir if needed and returns a store limited to maxSize bytes per file.
func NewScratch(dir string, maxSize int64) (*Scratch, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &Scratch{dir: dir, maxSize: maxSize}, nil
}

// Dir returns the scratch directory
func (s *Scratch) Dir() string { return s.dir }

// SaveMultipart writes an uploaded form file and returns its scratch path
// and sanitized original name.
func (s *Scratch) SaveMultipart(fh *multipart.FileHeader) (path, filename string, err error) {
	if fh.Size > s.maxSize {
		return "", "", ErrTooLarge
	}
	src, err := fh.Open()
	if err != nil {
		return "", "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	filename = SanitizeFilename(fh.Filename)
	if filename == "" {
		filename = "audio." + Extension(fh.Filename)
	}
	path = filepath.Join(s.dir, uuid.NewString()+"_"+filename)
	if err := s.write(path, src); err != nil {
		return "", "", err
	}
	return path, filename, nil
}

// SaveBase64 decodes a base64 payload (optionally a data URL) into a
// scratch file with extension ext.
func (s *Scratch) SaveBase64(payload, ext string) (string, error) {
	payload = strings.TrimSpace(payload)
	if i := strings.Index(payload, ";base64,"); strings.HasPrefix(payload, "data:") && i >= 0 {
		payload = payload[i+len(";base64,"):]
	}
	if int64(base64.StdEncoding.DecodedLen(len(payload))) > s.maxSize+2 {
		return "", ErrTooLarge
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		if data, err = base64.RawStdEncoding.DecodeString(payload); err != nil {
			return "", fmt.Errorf("%w: %v", ErrInvalidBase64, err)
		}
	}
	if len(data) == 0 {
		return "", ErrEmpty
	}

	path := filepath.Join(s.dir, uuid.NewString()+"."+strings.ToLower(strings.TrimPrefix(ext, ".")))
	if err := s.write(path, bytes.NewReader(data)); err != nil {
		return "", err
	}
	return path, nil
}

func (s *Scratch) write(path string, r io.Reader) error {
	dst, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if err != nil {
		return fmt.Errorf("create scratch file: %w", err)
	}

	n, err := io.Copy(dst, io.LimitReader(r, s.maxSize+1))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > s.maxSize {
		err = ErrTooLarge
	}
	if err == nil && n == 0 {
		err = ErrEmpty
	}
	if err != nil {
		s.Remove(path)
		if errors.Is(err, ErrTooLarge) || errors.Is(err, ErrEmpty) {
			return err
		}
		return fmt.Errorf("write scratch file: %w", err)
	}
	log.Printf("💾 Saved to: %s", path)
	return nil
}

// Remove deletes a scratch file. Missing files are ignored.
func (s *Scratch) Remove(path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("⚠️  Failed to remove scratch file %s: %v", path, err)
	}
}
