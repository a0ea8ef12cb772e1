package main

import "bookdrop/cmd"

func main() {
	cmd.Execute()
}
