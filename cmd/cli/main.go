// Editorialctl administers an editorial deployment: schema migration, demo data,
// accounts, reports, and a thin client for a running API server.
package main

import "editorial/cmd/cli/command"

func main() {
	command.Execute()
}
