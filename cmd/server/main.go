package main

import (
	"os"

	"sapchat/internal/app"
)

func main() {
	os.Exit(app.Run())
}
