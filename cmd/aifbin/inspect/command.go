// Copyright 2026 The AIF-BIN Authors
// SPDX-License-Identifier: Apache-2.0

package inspect

import "github.com/aifbin/aifbin/cmd/aifbin/cli"

// Commands returns the single-file commands: info, verify, dump, hex,
// and extract. They are mounted directly under the root.
func Commands() []*cli.Command {
	return []*cli.Command{
		infoCommand(),
		verifyCommand(),
		dumpCommand(),
		hexCommand(),
		extractCommand(),
	}
}
