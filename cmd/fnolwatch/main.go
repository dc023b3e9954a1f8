package main

import "github.com/ecazzaniga/fnolwatch/internal/cli"

func main() {
	cli.Execute()
}
