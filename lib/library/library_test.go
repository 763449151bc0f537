// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package library

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/aifbin/aifbin/lib/aifbin"
	"github.com/aifbin/aifbin/lib/codec"
	"github.com/aifbin/aifbin/lib/testutil"
)

func container(t *testing.T, title string, texts ...string) []byte {
	t.Helper()
	input := aifbin.DocumentInput{
		Metadata: codec.Map(codec.Field("title", codec.String(title))),
	}
	for index, text := range texts {
		input.Chunks = append(input.Chunks, aifbin.ChunkInput{
			Type: aifbin.ChunkText,
			Metadata: codec.Map(
				codec.Field("label", codec.String("Section "+string(rune('A'+index)))),
			),
			Data: []byte(text),
		})
	}
	encoded, err := aifbin.Encode(input)
	if err != nil {
		t.Fatalf("Encode: %v", err)
	}
	return encoded.Bytes
}

func openLibrary(t *testing.T) *Library {
	t.Helper()
	library, err := Open(filepath.Join(t.TempDir(), "library"))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	return library
}

func TestOpenCreatesDirectory(t *testing.T) {
	root := filepath.Join(t.TempDir(), "a", "b")
	library, err := Open(root)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	info, err := os.Stat(library.Path())
	if err != nil || !info.IsDir() {
		t.Fatalf("library directory not created: %v", err)
	}
	if _, err := Open(""); err == nil {
		t.Error("Open with empty path succeeded")
	}
}

func TestValidateName(t *testing.T) {
	valid := []string{"notes.aif-bin", "Report 2024.AIF-BIN", "a.b.aif-bin"}
	for _, name := range valid {
		if err := ValidateName(name); err != nil {
			t.Errorf("ValidateName(%q) = %v", name, err)
		}
	}
	invalid := []string{"", "notes.txt", "../x.aif-bin", "a/b.aif-bin", `a\b.aif-bin`, ".hidden.aif-bin", ".aif-bin", "a..b.aif-bin"}
	for _, name := range invalid {
		err := ValidateName(name)
		var nameError *NameError
		if !errors.As(err, &nameError) {
			t.Errorf("ValidateName(%q) = %v, want *NameError", name, err)
		}
	}
}

func TestNormalizeName(t *testing.T) {
	tests := map[string]string{
		"notes":           "notes.aif-bin",
		" notes.aif-bin ": "notes.aif-bin",
		"NOTES.AIF-BIN":   "NOTES.AIF-BIN",
		"":                "",
		"archive.tar":     "archive.tar.aif-bin",
	}
	for input, want := range tests {
		if got := NormalizeName(input); got != want {
			t.Errorf("NormalizeName(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestSaveReadDelete(t *testing.T) {
	library := openLibrary(t)
	data := container(t, "First", "hello")

	if err := library.Save("first.aif-bin", data); err != nil {
		t.Fatalf("Save: %v", err)
	}
	read, err := library.Read("first.aif-bin")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	testutil.RequireEqualBytes(t, read, data, "stored container")

	document, err := library.Open("first.aif-bin")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if document.Title() != "First" {
		t.Errorf("title = %q", document.Title())
	}

	if err := library.Delete("first.aif-bin"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	_, err = library.Read("first.aif-bin")
	testutil.RequireErrorIs(t, err, ErrNotFound, "read after delete")
	testutil.RequireErrorIs(t, library.Delete("first.aif-bin"), ErrNotFound, "second delete")
}

func TestSaveRejectsNonContainers(t *testing.T) {
	library := openLibrary(t)
	err := library.Save("bad.aif-bin", []byte("not a container at all, but long enough to hold a header......"))
	if !aifbin.IsMagicError(err) {
		t.Fatalf("Save(garbage) = %v, want MagicError", err)
	}
	if _, err := os.Stat(filepath.Join(library.Path(), "bad.aif-bin")); !errors.Is(err, os.ErrNotExist) {
		t.Error("rejected file was written")
	}
	var nameError *NameError
	if err := library.Save("../escape.aif-bin", container(t, "x")); !errors.As(err, &nameError) {
		t.Errorf("Save outside library = %v, want *NameError", err)
	}
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	library := openLibrary(t)
	for i := 0; i < 3; i++ {
		if err := library.Save("same.aif-bin", container(t, "x", "y")); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	files, err := os.ReadDir(library.Path())
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(files) != 1 {
		t.Errorf("library holds %d files, want 1", len(files))
	}
}

func TestCreateRefusesOverwrite(t *testing.T) {
	library := openLibrary(t)
	data := container(t, "x")
	if err := library.Create("one.aif-bin", data); err != nil {
		t.Fatalf("Create: %v", err)
	}
	testutil.RequireErrorIs(t, library.Create("one.aif-bin", data), ErrExists, "second create")
}

func TestList(t *testing.T) {
	library := openLibrary(t)
	names := []string{"old.aif-bin", "middle.aif-bin", "new.aif-bin"}
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	for index, name := range names {
		if err := library.Save(name, container(t, name)); err != nil {
			t.Fatalf("Save: %v", err)
		}
		modified := base.Add(time.Duration(index) * time.Hour)
		if err := os.Chtimes(filepath.Join(library.Path(), name), modified, modified); err != nil {
			t.Fatalf("Chtimes: %v", err)
		}
	}
	testutil.WriteFile(t, library.Path(), "ignored.txt", []byte("not listed"))
	if err := os.Mkdir(filepath.Join(library.Path(), "dir.aif-bin"), 0o755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}

	entries, err := library.List()
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	want := []string{"new.aif-bin", "middle.aif-bin", "old.aif-bin"}
	if len(entries) != len(want) {
		t.Fatalf("List returned %d entries, want %d", len(entries), len(want))
	}
	for index, entry := range entries {
		if entry.Name != want[index] {
			t.Errorf("entry %d = %s, want %s", index, entry.Name, want[index])
		}
		if entry.Size <= aifbin.HeaderSize {
			t.Errorf("entry %s size = %d", entry.Name, entry.Size)
		}
	}
}

func TestRename(t *testing.T) {
	library := openLibrary(t)
	if err := library.Save("a.aif-bin", container(t, "A")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := library.Save("b.aif-bin", container(t, "B")); err != nil {
		t.Fatalf("Save: %v", err)
	}

	testutil.RequireErrorIs(t, library.Rename("a.aif-bin", "b.aif-bin"), ErrExists, "rename onto existing")
	testutil.RequireErrorIs(t, library.Rename("missing.aif-bin", "c.aif-bin"), ErrNotFound, "rename missing")

	if err := library.Rename("a.aif-bin", "c.aif-bin"); err != nil {
		t.Fatalf("Rename: %v", err)
	}
	document, err := library.Open("c.aif-bin")
	if err != nil {
		t.Fatalf("Open renamed: %v", err)
	}
	if document.Title() != "A" {
		t.Errorf("renamed title = %q", document.Title())
	}
}

func TestExport(t *testing.T) {
	library := openLibrary(t)
	data := container(t, "Export me", "payload")
	if err := library.Save("e.aif-bin", data); err != nil {
		t.Fatalf("Save: %v", err)
	}
	destination := filepath.Join(t.TempDir(), "out.aif-bin")
	if err := library.Export("e.aif-bin", destination); err != nil {
		t.Fatalf("Export: %v", err)
	}
	testutil.RequireEqualBytes(t, testutil.ReadFile(t, destination), data, "exported file")
	testutil.RequireErrorIs(t, library.Export("e.aif-bin", destination), ErrExists, "export onto existing")
	testutil.RequireErrorIs(t, library.Export("none.aif-bin", filepath.Join(t.TempDir(), "x")), ErrNotFound, "export missing")
}

func TestScan(t *testing.T) {
	library := openLibrary(t)
	if err := library.Save("good.aif-bin", container(t, "Good", "one", "two")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	// Bypass Save to plant a file with a damaged magic.
	testutil.WriteFile(t, library.Path(), "broken.aif-bin", make([]byte, aifbin.HeaderSize))

	corrupted := container(t, "Corrupted", "body text")
	corrupted[len(corrupted)-1] ^= 0xff
	testutil.WriteFile(t, library.Path(), "corrupted.aif-bin", corrupted)

	summaries, err := library.Scan(context.Background(), 2)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	byName := make(map[string]Summary)
	for _, summary := range summaries {
		byName[summary.Name] = summary
	}
	if len(byName) != 3 {
		t.Fatalf("Scan returned %d summaries, want 3", len(byName))
	}

	good := byName["good.aif-bin"]
	if good.Err != nil || good.Title != "Good" || good.Chunks != 2 || good.Checksum != ChecksumOK {
		t.Errorf("good summary = %+v", good)
	}
	if good.Ref == "" || good.Warnings != 0 {
		t.Errorf("good summary ref/warnings = %q/%d", good.Ref, good.Warnings)
	}

	broken := byName["broken.aif-bin"]
	if !aifbin.IsMagicError(broken.Err) || broken.Error == "" {
		t.Errorf("broken summary err = %v", broken.Err)
	}

	if got := byName["corrupted.aif-bin"].Checksum; got != ChecksumMismatch {
		t.Errorf("corrupted checksum = %q, want mismatch", got)
	}
}

func TestScanCancelled(t *testing.T) {
	library := openLibrary(t)
	for index := 0; index < 4; index++ {
		name := testutil.UniqueID("entry") + ".aif-bin"
		if err := library.Save(name, container(t, name, string(rune('a'+index)))); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := library.Scan(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Errorf("Scan with cancelled context = %v, want context.Canceled", err)
	}
}

func TestResolve(t *testing.T) {
	library := openLibrary(t)
	if err := library.Save("named.aif-bin", container(t, "Named")); err != nil {
		t.Fatalf("Save: %v", err)
	}
	ctx := context.Background()

	for _, ref := range []string{"named", "named.aif-bin"} {
		name, err := library.Resolve(ctx, ref)
		if err != nil || name != "named.aif-bin" {
			t.Errorf("Resolve(%q) = %q, %v", ref, name, err)
		}
	}

	summaries, err := library.Scan(ctx, 0)
	if err != nil {
		t.Fatalf("Scan: %v", err)
	}
	name, err := library.Resolve(ctx, summaries[0].Ref)
	if err != nil || name != "named.aif-bin" {
		t.Errorf("Resolve(%q) = %q, %v", summaries[0].Ref, name, err)
	}

	_, err = library.Resolve(ctx, "aif-000000000000")
	testutil.RequireErrorIs(t, err, ErrNotFound, "unknown ref")
}
