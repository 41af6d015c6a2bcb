package main

import "github.com/nfrund/pollchat/cmd/pollchat/cmd"

func main() {
	cmd.Execute()
}
