package main

import "github.com/shopverse-dev/shopverse/internal/cli"

func main() {
	cli.Execute()
}
