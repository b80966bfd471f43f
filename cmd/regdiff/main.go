package main

import "github.com/OpenTraceLab/regdiff/cmd/regdiff/cmd"

func main() {
	cmd.Execute()
}
