package main

import "github.com/xiaomi388/templater/cmd"

func main() {
	cmd.Execute()
}
