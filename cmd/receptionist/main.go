package main

import (
	"log"

	"tradie_receptionist/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		log.Fatal(err)
	}
}
