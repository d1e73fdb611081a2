// SPDX-License-Identifier: MIT

// Command symla runs one exact matrix operation over a batch of documents
// and prints a JSON or YAML report.
//
//	symla -in 'cases/**/*.yaml' -op det -check
//	echo '{"op":"rank","rows":[["1","2"],["2","4"]]}' | symla
//
// Defaults come from SYMLA_* environment variables (see internal/config);
// flags override them. The exit status is 0 on success, 1 when any document
// failed and 2 for usage errors.
package main

import "os"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
