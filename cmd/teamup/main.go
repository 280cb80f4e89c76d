// Command teamup is the offline-first sports event manager CLI.
package main

import "github.com/christianbiango/team-up/internal/cli"

func main() {
	cli.Execute()
}
