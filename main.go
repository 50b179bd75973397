package main

import "github.com/yeisme/gosloc/cmd"

func main() {
	cmd.Execute()
}
