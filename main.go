package main

import (
	"os"

	"github.com/GoPGManager/GoPGManager/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
