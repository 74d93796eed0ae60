package main

import "github.com/janindragoonetilleke-oss/codeassist/cmd"

func main() {
	cmd.Execute()
}
