package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/lunargift/giftmall/config"
	"github.com/lunargift/giftmall/internal/app"
	"github.com/lunargift/giftmall/internal/webapi"
)

var (
	configFile = flag.String("c", "giftmall.yml", "config file path")
	initDb     = flag.Bool("initdb", false, "drop all persisted slots and exit")
	showVer    = flag.Bool("v", false, "print version and exit")
)

var version = "dev"

func main() {
	flag.Parse()

	if *showVer {
		fmt.Printf("giftmall %s\n", version)
		return
	}

	cfg, err := config.LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	application := app.NewApplication(cfg)
	if err := application.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "init application: %v\n", err)
		os.Exit(1)
	}
	defer application.Release()

	if *initDb {
		if err := application.InitDb(); err != nil {
			zap.S().Fatalf("initdb failed: %v", err)
		}
		zap.S().Info("all persisted slots dropped")
		return
	}

	server := webapi.NewWebServer(application)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		zap.S().Errorf("web server stopped: %v", err)
	case sig := <-sigCh:
		zap.S().Infof("received signal %s, shutting down", sig)
	}
}
