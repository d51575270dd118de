package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/stormlightlabs/inkwell/internal/config"
	"github.com/stormlightlabs/inkwell/internal/doc"
)

// FileReader reads whole files.
type FileReader interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// FileWriter writes whole files atomically.
type FileWriter interface {
	WriteFileAtomic(ctx context.Context, path string, data []byte) error
}

// errNotInitialized is returned when the project file does not exist.
var errNotInitialized = errors.New("project not initialized; run 'ink init' first")

// resolveProjectDir returns the --project flag value, or the working
// directory when the flag is empty.
func resolveProjectDir(cmd *cobra.Command, getwd func() (string, error)) (string, error) {
	dir, _ := cmd.Flags().GetString("project")
	if dir != "" {
		return dir, nil
	}
	cwd, err := getwd()
	if err != nil {
		return "", fmt.Errorf("getting working directory: %w", err)
	}
	return cwd, nil
}

// loadConfig reads the project configuration through r. A missing file
// yields the defaults.
func loadConfig(ctx context.Context, r FileReader, dir string) (config.Config, error) {
	return config.Load(dir, func(path string) ([]byte, error) {
		return r.ReadFile(ctx, path)
	})
}

// readProjectFile reads the raw project file, mapping a missing file to
// errNotInitialized.
func readProjectFile(ctx context.Context, r FileReader, path string) ([]byte, error) {
	data, err := r.ReadFile(ctx, path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, errNotInitialized
		}
		return nil, fmt.Errorf("reading project: %w", err)
	}
	return data, nil
}

// encodeProject renders p in the canonical on-disk form.
func encodeProject(p doc.Project) ([]byte, error) {
	var buf bytes.Buffer
	if err := doc.Encode(&buf, p); err != nil {
		return nil, fmt.Errorf("encoding project: %w", err)
	}
	return buf.Bytes(), nil
}

// fileIO implements the command IO interfaces using OS file I/O.
// *Impl methods wrap OS calls and are excluded from coverage requirements.
type fileIO struct{}

func newDefaultFileIO() *fileIO {
	return &fileIO{}
}

// ReadFile reads the file at path.
func (f *fileIO) ReadFile(ctx context.Context, path string) ([]byte, error) {
	return f.ReadFileImpl(ctx, path)
}

// ReadFileImpl reads the file using os.ReadFile.
func (f *fileIO) ReadFileImpl(_ context.Context, path string) ([]byte, error) {
	return os.ReadFile(path)
}

// StatFile returns true if the file at path exists, false if it does not.
// Returns an error only for unexpected OS errors.
func (f *fileIO) StatFile(path string) (bool, error) {
	return f.StatFileImpl(path)
}

// StatFileImpl wraps os.Stat to check file existence.
func (f *fileIO) StatFileImpl(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

// WriteFileAtomic writes data to path atomically via a temp file with 0600 permissions.
func (f *fileIO) WriteFileAtomic(ctx context.Context, path string, data []byte) error {
	return f.WriteFileAtomicImpl(ctx, path, data)
}

// WriteFileAtomicImpl performs the atomic write via OS temp file rename.
func (f *fileIO) WriteFileAtomicImpl(_ context.Context, path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".ink-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Chmod(tmpName, 0600); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
