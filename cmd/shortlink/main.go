package main

import "github.com/jrsteele09/go-shortlink-client/cmd/shortlink/cmd"

func main() {
	cmd.Execute()
}
