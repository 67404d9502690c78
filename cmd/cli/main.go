package main

import (
	"github.com/deoxyribo/limeblog/cmd/cli/root"

	// Subcommands register themselves on the root command.
	_ "github.com/deoxyribo/limeblog/cmd/cli/posts"
	_ "github.com/deoxyribo/limeblog/cmd/cli/seed"
	_ "github.com/deoxyribo/limeblog/cmd/cli/users"
)

func main() {
	root.Execute()
}
