package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/opsforge/fieldops/config"
	"github.com/opsforge/fieldops/internal/adminapi"
	"github.com/opsforge/fieldops/internal/app"
	"github.com/opsforge/fieldops/internal/webserver"
)

var (
	h        = flag.Bool("h", false, "help usage")
	showVer  = flag.Bool("v", false, "show version")
	conffile = flag.String("c", "", "config file")
	initdb   = flag.Bool("initdb", false, "drop and recreate the database schema")
)

var (
	BuildVersion string
)

func printVersion() {
	fmt.Printf("fieldops version: %s\n", BuildVersion)
}

func main() {
	flag.Parse()
	if *h {
		flag.Usage()
		os.Exit(0)
	}
	if *showVer {
		printVersion()
		os.Exit(0)
	}

	cfg := config.LoadConfig(*conffile)
	application := app.NewApplication(cfg)
	application.Init(cfg)
	defer application.Release()

	if *initdb {
		application.InitDb()
		zap.S().Info("database initialized")
		os.Exit(0)
	}

	webserver.Init(application)
	adminapi.InitRouter()

	if err := webserver.Listen(); err != nil {
		zap.S().Fatal(err)
	}
}
