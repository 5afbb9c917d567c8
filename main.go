package main

import (
	"github.com/hdltools/fbt/cmd"
)

func main() {
	cmd.Execute()
}
