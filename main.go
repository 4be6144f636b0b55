package main

import "dashmd/cmd"

func main() {
	cmd.Execute()
}
