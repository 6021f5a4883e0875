package main

import (
	"os"

	"github.com/krazyTry/bokoup-go/internal/cli"
)

func main() {
	os.Exit(int(cli.Run(os.Args[1:])))
}
