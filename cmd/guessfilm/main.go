package main

import "github.com/mcoot/guessfilm/internal/cli"

func main() {
	cli.Execute()
}
