package main

import "github.com/ebaymcp/ebaymcp/cmd"

func main() {
	cmd.Execute()
}
