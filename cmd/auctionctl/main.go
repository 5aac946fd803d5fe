package main

import (
	"github.com/mcoot/auctiongame-go/internal/cli"
)

func main() {
	cli.Execute()
}
