package main

import "github.com/KaramelBytes/rehabrisk-cli/cmd"

func main() {
	cmd.Execute()
}
