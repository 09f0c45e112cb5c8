package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"
	"go.uber.org/zap"

	"github.com/babylonchain/avaproof/log"
)

func fatal(err error) {
	fmt.Fprintf(os.Stderr, "[avaproofd] %v\n", err)
	os.Exit(1)
}

// rootLogger is initialized once in main and read by the command
// actions below; avaproofd runs one command per process invocation, so
// there is no concurrent-init hazard to guard against.
var rootLogger *zap.Logger

func main() {
	app := cli.NewApp()
	app.Name = "avaproofd"
	app.Usage = "Avalanche proof decoding, identity derivation and structural verification."
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "loglevel", Value: "info", Usage: "trace|debug|info|warn|error|fatal"},
		cli.StringFlag{Name: "logformat", Value: "auto", Usage: "auto|console|json|logfmt"},
	}
	app.Before = func(ctx *cli.Context) error {
		logger, err := log.NewRootLogger(ctx.GlobalString("logformat"), ctx.GlobalString("loglevel"), os.Stderr)
		if err != nil {
			return err
		}
		rootLogger = log.Component(logger, "cmd")
		return nil
	}
	app.Commands = []cli.Command{
		DecodeCommand,
		IdCommand,
		VerifyCommand,
		LookupCommand,
		GenCommand,
	}

	if err := app.Run(os.Args); err != nil {
		fatal(err)
	}
}
