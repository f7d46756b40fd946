// geodist project main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"bitbucket.org/kleinnic74/geodist/app"
	"bitbucket.org/kleinnic74/geodist/config"
	"bitbucket.org/kleinnic74/geodist/consts"
	"bitbucket.org/kleinnic74/geodist/logging"
	"go.uber.org/zap"
)

var (
	envFile string
	port    uint
	devmode bool
)

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [options]\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.StringVar(&envFile, "env", ".env", "Optional file with environment variables")
	flag.UintVar(&port, "p", 0, "HTTP port (overrides PORT)")
	flag.BoolVar(&devmode, "dev", false, "Enable development mode (overrides DEVMODE)")
}

func main() {
	flag.Parse()

	c, err := config.Load(envFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Invalid configuration: %s\n", err)
		os.Exit(2)
	}
	if port != 0 {
		c.Port = port
	}
	if devmode {
		c.DevMode = true
	}
	consts.SetDevMode(c.DevMode)
	logging.Init(c.DevMode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger, ctx := logging.FromWithNameAndFields(ctx, "main",
		zap.String("version", consts.Version),
		zap.String("gitRepo", consts.GitRepo))
	logger.Info("Starting up", zap.Uint("port", c.Port), zap.Bool("devmode", c.DevMode))

	a, err := app.NewApp(ctx, c)
	if err != nil {
		logger.Fatal("Failed to initialize", zap.Error(err))
	}
	if err := a.Run(ctx); err != nil {
		logger.Fatal("Server error", zap.Error(err))
	}
}
