package media

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/helioworks/artvault/internal/pkg/apperr"
)

// Metadata is the type-specific information extracted from a file at ingest
// time. Width/Height apply to images, DurationMS to audio; Extra carries
// free-form details (or an extraction error).
type Metadata struct {
	Name       string
	FilePath   string
	FileType   string
	SizeB      int64
	Width      *int
	Height     *int
	DurationMS *int
	Extra      map[string]any
}

// Hasher computes a content digest for a file.
type Hasher interface {
	ComputeDigest(path string) (string, error)
}

// Extractor pulls type-specific metadata out of a file. Real binary decoding
// belongs to out-of-process collaborators; implementations here only sniff
// what can be known without decoding.
type Extractor interface {
	Extract(path string) (*Metadata, error)
}

var imageExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".bmp": true, ".gif": true,
	".tiff": true, ".tif": true, ".webp": true, ".psd": true,
}

var audioExtensions = map[string]bool{
	".mp3": true, ".wav": true, ".ogg": true, ".aac": true, ".flac": true,
	".m4a": true, ".wma": true,
}

// SHA256Hasher streams a file through crypto/sha256 and returns the lowercase
// hex digest.
type SHA256Hasher struct{}

func (SHA256Hasher) ComputeDigest(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", apperr.NotFoundf("file %s", path)
		}
		return "", apperr.Externalf("open %s: %v", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", apperr.Externalf("read %s: %v", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// FileExtractor is the default Extractor: name, type and size from the
// filesystem, audio duration estimated from size at an assumed 128kbps.
type FileExtractor struct{}

func (FileExtractor) Extract(path string) (*Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.NotFoundf("file %s", path)
		}
		return nil, apperr.Externalf("stat %s: %v", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	base := filepath.Base(path)
	meta := &Metadata{
		Name:     strings.TrimSuffix(base, filepath.Ext(base)),
		FilePath: path,
		FileType: strings.TrimPrefix(ext, "."),
		SizeB:    info.Size(),
	}

	switch {
	case imageExtensions[ext]:
		// Dimensions require decoding; left to an external extractor.
	case audioExtensions[ext]:
		durationMS := int(float64(info.Size()) * 8 / 128000.0 * 1000)
		meta.DurationMS = &durationMS
		meta.Extra = map[string]any{"estimated": true, "bitrate": "128kbps"}
	}

	return meta, nil
}

// FallbackMetadata builds a minimal record for a file whose extraction
// failed; the error is kept in Extra so ingestion can proceed.
func FallbackMetadata(path string, extractErr error) *Metadata {
	base := filepath.Base(path)
	meta := &Metadata{
		Name:     strings.TrimSuffix(base, filepath.Ext(base)),
		FilePath: path,
		FileType: strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
		Extra:    map[string]any{"error": fmt.Sprintf("metadata extraction failed: %v", extractErr)},
	}
	if info, err := os.Stat(path); err == nil {
		meta.SizeB = info.Size()
	}
	return meta
}
