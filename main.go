package main

import "github.com/tdp-hub/tdp-report-services/cmd"

func main() {
	cmd.Execute()
}
