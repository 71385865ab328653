package main

import (
	"fmt"
	"os"

	"pong/client"
	"pong/core"
	"pong/logger"
	"pong/server"
	"pong/window"

	"github.com/spf13/pflag"
)

type options struct {
	mode string
	env  string
}

func parseFlags(args []string) (options, error) {
	var o options
	flags := pflag.NewFlagSet("pong", pflag.ContinueOnError)
	flags.StringVarP(&o.mode, "mode", "m", "server", "local | window | server | client")
	flags.StringVarP(&o.env, "env", "e", os.Getenv("PONG_ENV"), "properties/<env>.properties to load")
	err := flags.Parse(args)
	return o, err
}

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	if err := logger.Log.Init("./"); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	defer logger.Log.Close()

	settings, err := core.ReadProperties(opts.env)
	if err != nil {
		logger.Log.Fatal(err.Error())
	}

	switch opts.mode {
	case "local":
		logger.Log.SetConsole(false)
		err = startLocal(settings)
	case "window":
		err = window.Run(settings)
	case "server":
		err = server.NewServer(settings).ListenAndServe()
	case "client":
		logger.Log.SetConsole(false)
		err = client.Run(settings)
	default:
		err = fmt.Errorf("unknown mode %q", opts.mode)
	}

	if err != nil {
		logger.Log.Fatal(err.Error())
	}
}
