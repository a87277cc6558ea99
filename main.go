package main

import "blockdrop/cmd"

func main() {
	cmd.Execute()
}
