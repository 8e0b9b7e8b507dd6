package main

import "github.com/alexiusacademia/gonodal/cmd"

func main() {
	cmd.Execute()
}
