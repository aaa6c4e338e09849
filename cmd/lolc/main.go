package main

import "github.com/funvibe/lolc/pkg/cli"

func main() {
	cli.Run()
}
