package main

import (
	"github.com/consensys/go-sassas/pkg/cmd"
)

func main() {
	cmd.Execute()
}
