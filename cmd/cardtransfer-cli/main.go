package main

import "github.com/pandodao/card-transfer/cmd/cardtransfer-cli/cmd"

func main() {
	cmd.Execute()
}
