package main

import "activity-signup/cmd/server"

func main() {
	server.Init()
	server.Run()
}
