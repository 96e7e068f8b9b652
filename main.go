package main

import "github.com/MyCarrier-DevOps/go-releaserc/cmd"

func main() {
	cmd.Execute()
}
