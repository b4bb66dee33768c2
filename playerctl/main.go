// playerctl/main.go
package main

import "github.com/Ftotnem/player-roster/playerctl/cli"

func main() {
	cli.Execute()
}
