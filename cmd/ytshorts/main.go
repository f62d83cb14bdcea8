package main

import "github.com/forPelevin/ytshorts/internal/cli"

func main() {
	cli.Main()
}
