package main

import "github.com/cpnkit/cpn/cmd/cpn/cmd"

func main() {
	cmd.Execute()
}
