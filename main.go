package main

import "outvibe-backend/cmd"

func main() {
	cmd.Run()
}
