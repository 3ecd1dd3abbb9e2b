package main

import "github.com/ValentinKolb/hmap/cmd"

func main() {
	cmd.Execute()
}
