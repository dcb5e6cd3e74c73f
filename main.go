package main

import "github.com/gopherrl/tabular/cmd"

func main() {
	cmd.Execute()
}
