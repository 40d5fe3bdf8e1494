// xrdscan - X-ray diffraction scan inspection tool
//
// xrdscan decodes diffractometer scan files (Philips UDF), reports their
// axis and header metadata, and validates batches of files before they are
// handed to analysis software.
package main

import (
	"os"

	"github.com/ccollicutt/xrdscan/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
