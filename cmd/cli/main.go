package main

import "github.com/alexanderritik/pgstructure/cmd"

var version = "dev"

func main() {
	cmd.Execute(version)
}
