package main

import (
	"github.com/odskit/ksk-helper/cmd"
)

func main() {
	cmd.Execute()
}
