// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package library

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/aifbin/aifbin/cmd/aifbin/cli"
	liblibrary "github.com/aifbin/aifbin/lib/library"
)

type listParams struct {
	cli.ConfigFile
	cli.JSONOutput
}

func listCommand() *cli.Command {
	var params listParams
	return &cli.Command{
		Name:    "list",
		Summary: "List library entries",
		Description: `List every .aif-bin file in the library, most recently modified
first.`,
		Usage:  "aifbin library list [flags]",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs("list", args, 0, "[flags]"); err != nil {
				return err
			}
			store, _, err := openLibrary(&params.ConfigFile, logger)
			if err != nil {
				return err
			}
			entries, err := store.List()
			if err != nil {
				return err
			}
			if done, err := params.EmitJSON(entries); done {
				return err
			}
			return writeEntries(os.Stdout, entries)
		},
	}
}

func writeEntries(w io.Writer, entries []liblibrary.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "library is empty")
		return err
	}
	writer := tabwriter.NewWriter(w, 2, 0, 3, ' ', 0)
	fmt.Fprintln(writer, "NAME\tSIZE\tMODIFIED")
	for _, entry := range entries {
		fmt.Fprintf(writer, "%s\t%d\t%s\n", entry.Name, entry.Size, entry.Modified.Local().Format("2006-01-02 15:04"))
	}
	return writer.Flush()
}

type addParams struct {
	cli.ConfigFile
	Name  string `json:"name"  flag:"name"  desc:"entry name (default: the file's name)"`
	Force bool   `json:"force" flag:"force" desc:"replace an existing entry"`
}

func addCommand() *cli.Command {
	var params addParams
	return &cli.Command{
		Name:    "add",
		Summary: "Copy a container into the library",
		Description: `Copy an existing AIF-BIN file into the library. The file must carry
the AIF-BIN signature; use "aifbin ingest --library" to convert other
files. The write is atomic.`,
		Usage: "aifbin library add <file> [flags]",
		Examples: []cli.Example{
			{
				Description: "Add a container under a new name",
				Command:     "aifbin library add --name q3-report ~/Downloads/report.aif-bin",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs("add", args, 1, "<file> [flags]"); err != nil {
				return err
			}
			store, _, err := openLibrary(&params.ConfigFile, logger)
			if err != nil {
				return err
			}
			name, err := addEntry(store, args[0], params.Name, params.Force)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stdout, "added %s\n", name)
			return nil
		},
	}
}

// addEntry copies the file at source into store as name (default:
// the file's base name) and returns the normalized entry name.
func addEntry(store *liblibrary.Library, source, name string, force bool) (string, error) {
	data, err := os.ReadFile(source)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", cli.NotFound("%s: no such file", source)
		}
		return "", fmt.Errorf("reading %s: %w", source, err)
	}
	if name == "" {
		name = filepath.Base(source)
	}
	name = liblibrary.NormalizeName(name)
	if force {
		err = store.Save(name, data)
	} else {
		err = store.Create(name, data)
	}
	if err != nil {
		return "", classify(err)
	}
	return name, nil
}

type removeParams struct {
	cli.ConfigFile
}

func removeCommand() *cli.Command {
	var params removeParams
	return &cli.Command{
		Name:    "remove",
		Summary: "Delete library entries",
		Usage:   "aifbin library remove <ref>... [flags]",
		Params:  func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if len(args) == 0 {
				return cli.Validation("library remove expects at least one entry\n\nUsage: aifbin library remove <ref>... [flags]")
			}
			store, _, err := openLibrary(&params.ConfigFile, logger)
			if err != nil {
				return err
			}
			for _, ref := range args {
				name, err := store.Resolve(ctx, ref)
				if err != nil {
					return classify(err)
				}
				if err := store.Delete(name); err != nil {
					return classify(err)
				}
				fmt.Fprintf(os.Stdout, "removed %s\n", name)
			}
			return nil
		},
	}
}

type renameParams struct {
	cli.ConfigFile
}

func renameCommand() *cli.Command {
	var params renameParams
	return &cli.Command{
		Name:    "rename",
		Summary: "Rename a library entry",
		Description: `Rename an entry. An existing entry with the new name is never
replaced.`,
		Usage:  "aifbin library rename <ref> <new-name> [flags]",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs("rename", args, 2, "<ref> <new-name> [flags]"); err != nil {
				return err
			}
			store, _, err := openLibrary(&params.ConfigFile, logger)
			if err != nil {
				return err
			}
			oldName, err := store.Resolve(ctx, args[0])
			if err != nil {
				return classify(err)
			}
			newName := liblibrary.NormalizeName(args[1])
			if err := store.Rename(oldName, newName); err != nil {
				return classify(err)
			}
			fmt.Fprintf(os.Stdout, "renamed %s to %s\n", oldName, newName)
			return nil
		},
	}
}

type exportParams struct {
	cli.ConfigFile
}

func exportCommand() *cli.Command {
	var params exportParams
	return &cli.Command{
		Name:    "export",
		Summary: "Copy a library entry out of the library",
		Description: `Copy an entry to a path outside the library. An existing file at the
destination is never overwritten. A destination that is a directory
receives the entry under its own name.`,
		Usage:  "aifbin library export <ref> <destination> [flags]",
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			if err := requireArgs("export", args, 2, "<ref> <destination> [flags]"); err != nil {
				return err
			}
			store, _, err := openLibrary(&params.ConfigFile, logger)
			if err != nil {
				return err
			}
			name, err := store.Resolve(ctx, args[0])
			if err != nil {
				return classify(err)
			}
			destination := args[1]
			if info, err := os.Stat(destination); err == nil && info.IsDir() {
				destination = filepath.Join(destination, name)
			}
			if err := store.Export(name, destination); err != nil {
				return classify(err)
			}
			fmt.Fprintf(os.Stdout, "exported %s to %s\n", name, destination)
			return nil
		},
	}
}
