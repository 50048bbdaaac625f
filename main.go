package main

import "github.com/mj1618/slotjump/cmd"

func main() {
	cmd.Execute()
}
