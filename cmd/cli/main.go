// reglog - Registration Log Statistics
//
// reglog reads the log written by an online registration service and
// reports unique installations by flavor, platform and runtime.
package main

import (
	"os"

	"github.com/ccollicutt/reglog/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
