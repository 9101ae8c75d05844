package main

import (
	"log"

	"github.com/tansancola/sceneswitcher/internal/pkg/app"
)

func main() {
	if err := app.New(); err != nil {
		log.Fatal(err)
	}

	select {}
}
