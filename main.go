/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>
*/
package main

import "github.com/gamely-app/webclient/cmd"

func main() {
	cmd.Execute()
}
