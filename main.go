package main

import "github.com/CoverConnect/egonet/cmd/egonet"

func main() {
	egonet.Execute()
}
