package main

import "github.com/thereayou/meetclone/cmd/server"

func main() {
	server.NewServer().Run()
}
