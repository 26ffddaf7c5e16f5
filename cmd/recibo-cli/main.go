// Command recibo-cli works with receipts offline: amounts in words, totals
// and rendering a receipt file without the HTTP service.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "recibo-cli:", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "recibo-cli",
		Usage: "receipt amounts, totals and rendering",
		Commands: []*cli.Command{
			wordsCommand(),
			totalsCommand(),
			renderCommand(),
		},
	}
}
