// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package library

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/aifbin/aifbin/lib/aifbin"
)

// Extension is the file suffix every library entry carries.
const Extension = ".aif-bin"

var (
	// ErrNotFound is returned when a named entry does not exist.
	ErrNotFound = errors.New("library entry not found")

	// ErrExists is returned when an operation would replace an
	// existing file it must not overwrite.
	ErrExists = errors.New("library entry already exists")
)

// NameError reports an entry name that cannot be used as a file in
// the library directory.
type NameError struct {
	Name   string
	Reason string
}

func (e *NameError) Error() string {
	return fmt.Sprintf("invalid library name %q: %s", e.Name, e.Reason)
}

// Library is a flat directory of AIF-BIN files. Methods are safe for
// concurrent use; the filesystem is the only shared state.
type Library struct {
	root   string
	logger *slog.Logger
}

// Option configures Open.
type Option func(*Library)

// WithLogger routes library log output to logger. The default
// discards it.
func WithLogger(logger *slog.Logger) Option {
	return func(library *Library) {
		if logger != nil {
			library.logger = logger
		}
	}
}

// Open returns the library rooted at root, creating the directory if
// it does not exist.
func Open(root string, options ...Option) (*Library, error) {
	if root == "" {
		return nil, errors.New("library path is empty")
	}
	absolute, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolving library path %s: %w", root, err)
	}
	if err := os.MkdirAll(absolute, 0o755); err != nil {
		return nil, fmt.Errorf("creating library directory: %w", err)
	}
	library := &Library{
		root:   absolute,
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, option := range options {
		option(library)
	}
	return library, nil
}

// Path returns the absolute library directory.
func (library *Library) Path() string { return library.root }

// NormalizeName trims whitespace and appends the .aif-bin extension
// when it is missing. It does not validate.
func NormalizeName(name string) string {
	name = strings.TrimSpace(name)
	if name != "" && !strings.HasSuffix(strings.ToLower(name), Extension) {
		name += Extension
	}
	return name
}

// ValidateName checks that name can be used as a library entry: a
// plain file name ending in .aif-bin with no path components.
func ValidateName(name string) error {
	switch {
	case name == "":
		return &NameError{Name: name, Reason: "name is empty"}
	case strings.ContainsAny(name, `/\`):
		return &NameError{Name: name, Reason: "name contains a path separator"}
	case strings.ContainsRune(name, 0):
		return &NameError{Name: name, Reason: "name contains a NUL byte"}
	case name == "." || name == ".." || strings.Contains(name, ".."):
		return &NameError{Name: name, Reason: "name contains \"..\""}
	case strings.HasPrefix(name, "."):
		return &NameError{Name: name, Reason: "name starts with a dot"}
	case !strings.HasSuffix(strings.ToLower(name), Extension):
		return &NameError{Name: name, Reason: "name must end in " + Extension}
	case len(name) == len(Extension):
		return &NameError{Name: name, Reason: "name has no stem"}
	}
	return nil
}

func (library *Library) resolve(name string) (string, error) {
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return filepath.Join(library.root, name), nil
}

// Entry describes one file in the library.
type Entry struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
}

// List returns every .aif-bin file in the library, most recently
// modified first. Ties sort by name.
func (library *Library) List() ([]Entry, error) {
	dirEntries, err := os.ReadDir(library.root)
	if err != nil {
		return nil, fmt.Errorf("reading library directory: %w", err)
	}
	var entries []Entry
	for _, dirEntry := range dirEntries {
		if !dirEntry.Type().IsRegular() || ValidateName(dirEntry.Name()) != nil {
			continue
		}
		info, err := dirEntry.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return nil, fmt.Errorf("stat %s: %w", dirEntry.Name(), err)
		}
		entries = append(entries, Entry{
			Name:     dirEntry.Name(),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if !entries[i].Modified.Equal(entries[j].Modified) {
			return entries[i].Modified.After(entries[j].Modified)
		}
		return entries[i].Name < entries[j].Name
	})
	return entries, nil
}

// Save writes data as the named entry, replacing any existing file.
// The write is atomic: readers see the old bytes or the new ones,
// never a partial file. data must start with the AIF-BIN magic.
func (library *Library) Save(name string, data []byte) error {
	path, err := library.resolve(name)
	if err != nil {
		return err
	}
	if _, err := aifbin.DecodeHeader(data); err != nil {
		return fmt.Errorf("saving %s: %w", name, err)
	}
	if err := writeAtomic(library.root, path, data); err != nil {
		return fmt.Errorf("saving %s: %w", name, err)
	}
	library.logger.Info("library entry saved", "name", name, "bytes", len(data))
	return nil
}

// Create is Save that refuses to replace an existing entry.
func (library *Library) Create(name string, data []byte) error {
	path, err := library.resolve(name)
	if err != nil {
		return err
	}
	if _, err := os.Lstat(path); err == nil {
		return fmt.Errorf("%s: %w", name, ErrExists)
	}
	return library.Save(name, data)
}

func writeAtomic(directory, path string, data []byte) error {
	tmpFile, err := os.CreateTemp(directory, ".save-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, 0o644); err != nil {
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("renaming into place: %w", err)
	}
	success = true
	return nil
}

// Read returns the bytes of the named entry.
func (library *Library) Read(name string) ([]byte, error) {
	path, err := library.resolve(name)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", name, err)
	}
	return data, nil
}

// Open decodes the named entry.
func (library *Library) Open(name string) (*aifbin.Document, error) {
	data, err := library.Read(name)
	if err != nil {
		return nil, err
	}
	document, err := aifbin.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", name, err)
	}
	return document, nil
}

// Delete removes the named entry.
func (library *Library) Delete(name string) error {
	path, err := library.resolve(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return fmt.Errorf("deleting %s: %w", name, err)
	}
	library.logger.Info("library entry deleted", "name", name)
	return nil
}

// Rename moves oldName to newName. It fails with ErrExists rather
// than replace another entry.
func (library *Library) Rename(oldName, newName string) error {
	oldPath, err := library.resolve(oldName)
	if err != nil {
		return err
	}
	newPath, err := library.resolve(newName)
	if err != nil {
		return err
	}
	if _, err := os.Lstat(oldPath); errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", oldName, ErrNotFound)
	}
	if oldPath == newPath {
		return nil
	}
	if _, err := os.Lstat(newPath); err == nil {
		return fmt.Errorf("%s: %w", newName, ErrExists)
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("renaming %s to %s: %w", oldName, newName, err)
	}
	library.logger.Info("library entry renamed", "from", oldName, "to", newName)
	return nil
}

// Export copies the named entry to destination, a path outside the
// library. An existing destination is never overwritten.
func (library *Library) Export(name, destination string) error {
	path, err := library.resolve(name)
	if err != nil {
		return err
	}
	source, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%s: %w", name, ErrNotFound)
	}
	if err != nil {
		return fmt.Errorf("opening %s: %w", name, err)
	}
	defer source.Close()

	target, err := os.OpenFile(destination, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%s: %w", destination, ErrExists)
	}
	if err != nil {
		return fmt.Errorf("creating %s: %w", destination, err)
	}
	if _, err := io.Copy(target, source); err != nil {
		target.Close()
		os.Remove(destination)
		return fmt.Errorf("exporting %s: %w", name, err)
	}
	if err := target.Close(); err != nil {
		os.Remove(destination)
		return fmt.Errorf("closing %s: %w", destination, err)
	}
	library.logger.Info("library entry exported", "name", name, "destination", destination)
	return nil
}
