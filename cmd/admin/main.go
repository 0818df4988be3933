package main

import "walletadmin/cmd/admin/commands"

func main() {
	commands.Execute()
}
