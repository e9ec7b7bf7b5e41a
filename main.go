package main

import "github.com/demengc/bwell-logkit/cmd"

func main() {
	cmd.Execute()
}
