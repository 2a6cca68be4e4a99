package main

import "courierhub/cmd"

func main() {
	cmd.Execute()
}
