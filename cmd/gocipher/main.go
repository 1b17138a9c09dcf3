package main

import "github.com/dbsmedya/gocipher/cmd/gocipher/cmd"

func main() {
	cmd.Execute()
}
