package main

import (
	"github.com/packwiz/serverpack/cmd"

	// Modules of serverpack
	_ "github.com/packwiz/serverpack/curseforge"
)

func main() {
	cmd.Execute()
}
