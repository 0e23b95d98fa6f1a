package main

import "os"

var server srv

func main() {
	server.loadDefault()
	server.loadApp()

	if err := server.app.Run(os.Args); err != nil {
		panic(err)
	}
}
