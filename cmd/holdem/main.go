package main

import "github.com/cardtable/holdem-go/internal/cli"

func main() {
	cli.Execute()
}
