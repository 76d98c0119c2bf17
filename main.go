package main

import "github.com/larderhq/larder/cmd"

func main() {
	cmd.Execute()
}
