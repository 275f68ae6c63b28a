package main

import "github.com/jessequinn/xc-inventory-cli/cmd"

func main() {
	cmd.Execute()
}
