package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/alexanderramin/prompttune/internal/cli"
	"github.com/alexanderramin/prompttune/internal/llm"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.App{
		In:        os.Stdin,
		Out:       os.Stdout,
		Err:       os.Stderr,
		LLMConfig: llm.LoadConfig(),
		IsInteractive: func() bool {
			return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
		},
	}

	return cli.NewRootCmd(app).Execute()
}
