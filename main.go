package main

import "github.com/crystaldolphin/pairbus/cmd"

func main() {
	cmd.Execute()
}
