package main

import (
	"github.com/notedex/notedex-cli/internal/adapters/driving/cli"
)

func main() {
	cli.Execute()
}
