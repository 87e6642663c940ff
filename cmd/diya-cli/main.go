package main

import "diya-backend/cmd/diya-cli/cmd"

func main() {
	cmd.Execute()
}
