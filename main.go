package main

import (
	"github.com/evplan/contrast-audit/cmd"
)

func main() {
	cmd.Execute()
}
