// Command kbctl is the operator CLI for the knowledge base: it applies
// migrations, provisions users, issues tokens and inspects topic graphs
// directly against the configured storage.
package main

import (
	"os"

	"github.com/heartmarshall/knowledge-base/cmd/kbctl/commands"
)

func main() {
	// Errors are already printed by the commands package.
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
