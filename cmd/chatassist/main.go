package main

import "chatassist/internal/cli"

func main() {
	cli.Execute()
}
