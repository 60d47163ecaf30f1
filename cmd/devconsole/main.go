package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/thejerf/suture/v4"
)

func init() {
	log.SetHandler(cli.New(os.Stderr))
	log.SetLevel(log.InfoLevel)
}

func main() {
	conf, err := LoadConfig(FindConfigFile(ConfigSearchPath()))
	if err != nil {
		log.WithError(err).Fatal("could not load configuration")
	}

	root := MakeRootSupervisor(conf, log.Log)
	if logger := conf.Logging.Apply(); logger != nil {
		root.Add(logger)
	}

	root.Discover()
	if path := conf.AliasesPath(); path != "" {
		if err := root.LoadAliases(path); err != nil {
			log.WithError(err).Warn("aliases.load")
		}
	}
	root.AttachConsole(os.Stdin, os.Stdout, conf.Prompt)

	log.WithField("commands", root.Registry.Len()).Info("devconsole.ready")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = root.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, suture.ErrTerminateSupervisorTree) {
		log.WithError(err).Fatal("exit")
	}
}
