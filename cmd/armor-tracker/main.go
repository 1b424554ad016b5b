package main

import "github.com/andrescamacho/armor-tracker/internal/adapters/cli"

func main() {
	cli.Execute()
}
