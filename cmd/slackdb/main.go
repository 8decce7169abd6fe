// Package main provides the slackdb command line tool.
package main

import "github.com/slackdb/slackdb-server/internal/cli"

func main() {
	cli.Execute()
}
