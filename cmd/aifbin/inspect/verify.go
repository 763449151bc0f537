// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/aifbin/aifbin/cmd/aifbin/cli"
	"github.com/aifbin/aifbin/lib/aifbin"
	"github.com/aifbin/aifbin/lib/binhash"
)

type verifyParams struct {
	cli.JSONOutput
	Quiet bool `json:"quiet" flag:"quiet,q" desc:"print nothing; report through the exit code only"`
}

// verifyResult is the --json output of verify.
type verifyResult struct {
	Name             string           `json:"name"`
	OK               bool             `json:"ok"`
	Ref              string           `json:"ref"`
	StoredChecksum   string           `json:"stored_checksum,omitempty"`
	ComputedChecksum string           `json:"computed_checksum,omitempty"`
	Findings         []aifbin.Finding `json:"findings"`
}

func verifyCommand() *cli.Command {
	var params verifyParams
	return &cli.Command{
		Name:    "verify",
		Summary: "Check container integrity",
		Description: `Decode an AIF-BIN file and check it: the footer checksum, the total
size recorded in the header, section placement, declared versus parsed
chunk and revision counts, payloads that fail to decode, and the footer
chunk index.

Exits 0 when there are no warnings and 1 otherwise. Informational
findings (an empty footer index, an unknown chunk type) do not fail
verification.`,
		Usage: "aifbin verify <file> [flags]",
		Examples: []cli.Example{
			{
				Description: "Verify a file in a script",
				Command:     "aifbin verify -q notes.aif-bin && echo intact",
			},
		},
		Params: func() any { return &params },
		Run: func(ctx context.Context, args []string, logger *slog.Logger) error {
			path, err := singleFile("verify", args)
			if err != nil {
				return err
			}
			input, err := readContainer(path, os.Stdin)
			if err != nil {
				return err
			}

			findings := aifbin.Verify(input.document)
			if !findings.OK() {
				logger.Debug("verification failed", "file", path, "warnings", len(findings.Warnings()))
			}

			switch {
			case params.Quiet:
			case params.OutputJSON:
				if err := cli.WriteJSON(os.Stdout, newVerifyResult(input, findings)); err != nil {
					return err
				}
			default:
				if err := writeVerification(os.Stdout, input, findings); err != nil {
					return err
				}
			}

			if !findings.OK() {
				return &cli.ExitError{Code: 1}
			}
			return nil
		},
	}
}

func newVerifyResult(input *container, findings aifbin.Report) verifyResult {
	result := verifyResult{
		Name:     input.name,
		OK:       findings.OK(),
		Ref:      binhash.ShortRef(binhash.HashBytes(input.document.Source)),
		Findings: findings.Findings,
	}
	if result.Findings == nil {
		result.Findings = []aifbin.Finding{}
	}
	if input.document.Footer.ChecksumPresent {
		result.StoredChecksum = fmt.Sprintf("0x%016x", findings.StoredChecksum)
		result.ComputedChecksum = fmt.Sprintf("0x%016x", findings.ComputedChecksum)
	}
	return result
}

// writeVerification prints one line per finding followed by a verdict.
func writeVerification(w io.Writer, input *container, findings aifbin.Report) error {
	tw := tabwriter.NewWriter(w, 2, 0, 2, ' ', 0)
	for _, finding := range findings.Findings {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", finding.Severity, finding.Code, finding.Message)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	document := input.document
	if findings.OK() {
		_, err := fmt.Fprintf(w, "%s: OK (%d chunks, %d revisions, %d bytes)\n",
			input.name, len(document.Chunks), len(document.Revisions), len(document.Source))
		return err
	}
	_, err := fmt.Fprintf(w, "%s: FAILED (%d warnings)\n", input.name, len(findings.Warnings()))
	return err
}
