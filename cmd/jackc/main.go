// Command jackc compiles Jack source files to Hack VM instructions.
package main

import (
	"os"

	"github.com/waldhauser/jackc/cmd/jackc/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
