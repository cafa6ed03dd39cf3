// gedkit - GEDCOM Import/Export Toolkit
//
// gedkit moves family trees in and out of GEDCOM, the standard
// genealogical interchange format: parse, validate, import into a
// person/relationship graph store and export back out.
package main

import (
	"os"

	"github.com/gedkit/gedkit/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
