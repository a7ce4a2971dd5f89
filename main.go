package main

import "github.com/crystaldolphin/scheduledisplay/cmd"

func main() {
	cmd.Execute()
}
