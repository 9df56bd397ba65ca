// LiteCode is a minimal line-oriented scripting language. Each line of a
// script declares a variable, reassigns one, or displays a formatted message.
package main

import (
	"os"

	"src.litecode.dev/pkg/buildinfo"
	"src.litecode.dev/pkg/lsp"
	"src.litecode.dev/pkg/prog"
	"src.litecode.dev/pkg/script"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(buildinfo.Program{}, lsp.Program{}, script.Program{})))
}
