// Command switchyard solves toggle-switch machines read from a file or stdin.
package main

import "github.com/katalvlaran/switchyard/cmd/switchyard/cmd"

func main() {
	cmd.Execute()
}
