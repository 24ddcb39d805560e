package main

import (
	"context"

	"github.com/golang/glog"

	"tableflip.dev/todo/pkg/commands"
)

func main() {
	defer glog.Flush()
	if err := commands.New().ExecuteContext(context.Background()); err != nil {
		glog.Exitf("error during command execution: %v", err)
	}
}
