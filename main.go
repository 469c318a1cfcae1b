package main

import "journal-loader/cmd"

func main() {
	cmd.Execute()
}
