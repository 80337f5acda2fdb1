package main

import "github.com/govproof/govproof/internal/cli"

func main() {
	cli.Execute()
}
