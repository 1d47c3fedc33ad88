package main

import "github.com/oshokin/pawfeeder/cmd/pawfeeder/cmd"

func main() {
	cmd.Execute()
}
