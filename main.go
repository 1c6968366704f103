// Command godice optimizes and evaluates emissions abatement policies
// on the DICE climate-economy model.
package main

import (
	"github.com/samuelfneumann/godice/cmd"
)

func main() {
	cmd.Execute()
}
