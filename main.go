package main

import "github.com/datastax/mariadb-scylla-migrator/cmd"

func main() {
	cmd.Execute()
}
