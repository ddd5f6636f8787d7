package main

import (
	"carbonhero/internal/app"
	"os"
)

func main() {
	application := app.New()
	os.Exit(application.Run())
}
