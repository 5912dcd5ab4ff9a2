package main

import "github.com/Om-Mishra7/InkBloom/internal/cmd"

func main() {
	cmd.Execute()
}
