// cmd/main.go

package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

//	@title			SheetInvoicer API
//	@version		1.0
//	@description	Turn spreadsheet rows into per-client PDF invoices and email them.
//	@BasePath		/

//go:generate swag init -g main.go -d ./,../pkg/server,../pkg/dispatch,../pkg/csvdata,../pkg/store,../pkg/invoice -o ../docs

func main() {
	app := &cli.App{
		Name:  "sheetinvoicer",
		Usage: "turn spreadsheet rows into emailed PDF invoices",
		Flags: globalFlags(),
		Commands: []*cli.Command{
			serveCommand(),
			sendCommand(),
			renderCommand(),
			migrateCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
