package submission

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// CompressedExt marks an archive as zstd-compressed JSON.
const CompressedExt = ".zst"

// Compressed reports whether path names a compressed archive.
func Compressed(path string) bool {
	return strings.HasSuffix(path, CompressedExt)
}

// Write stores a submission at path, creating parent directories. A ".zst"
// suffix selects zstd compression.
func Write(path string, sub Submission) error {
	data, err := Encode(sub)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("submission: create dir: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("submission: create %s: %w", path, err)
	}
	defer f.Close()

	if !Compressed(path) {
		if _, err := f.Write(data); err != nil {
			return fmt.Errorf("submission: write %s: %w", path, err)
		}
		return f.Close()
	}

	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return fmt.Errorf("submission: zstd writer: %w", err)
	}
	if _, err := enc.Write(data); err != nil {
		_ = enc.Close()
		return fmt.Errorf("submission: write %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("submission: flush %s: %w", path, err)
	}
	return f.Close()
}

// Read loads and validates the submission stored at path.
func Read(path string) (Submission, error) {
	f, err := os.Open(path)
	if err != nil {
		return Submission{}, fmt.Errorf("submission: open %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	if Compressed(path) {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return Submission{}, fmt.Errorf("submission: zstd reader: %w", err)
		}
		defer dec.Close()
		r = dec
	}

	raw, err := io.ReadAll(r)
	if err != nil {
		return Submission{}, fmt.Errorf("submission: read %s: %w", path, err)
	}
	sub, err := Decode(raw)
	if err != nil {
		return Submission{}, fmt.Errorf("%s: %w", path, err)
	}
	return sub, nil
}
