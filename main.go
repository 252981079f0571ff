// Command kotosiro serves the Kotosiro workflow orchestration control
// plane: a Postgres-backed HTTP API for projects, workflows, jobs and runs,
// authorized against an OPA sidecar and broadcasting config changes over
// AMQP.
package main

import (
	"fmt"
	"os"

	"github.com/kotosiro/controller/cli"
)

func main() {
	if err := cli.RootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
