package main

import (
	"fmt"
	"os"
)

func fail() {
	os.Exit(2)
}

func main() {
	fmt.Println("starting")
	if len(os.Args) > 3 {
		fail()
	}
	os.Exit(1) // want "os.Exit call is forbidden in main function: os.Exit\\(1\\)"
}
