package main

import "github.com/mssd/mssd-console/cli"

func main() {
	cli.Execute()
}
