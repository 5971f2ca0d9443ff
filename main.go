package main

import "github.com/GokhanGuclu/zoko/cmd"

func main() {
	cmd.Execute()
}
