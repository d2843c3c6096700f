package main

import "github.com/alumni-portal/backend/cmd/server/cmd"

func main() {
	cmd.Execute()
}
