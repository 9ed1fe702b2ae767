package main

import "hacktrack/internal/app"

func main() {
	app.Run()
}
