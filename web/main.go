package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-pathtracer/pkg/log"
	"github.com/df07/go-pathtracer/web/server"
)

func main() {
	defaults := server.DefaultConfig()

	app := cli.NewApp()
	app.Name = "pathtracer-web"
	app.Usage = "serve path traced renders over HTTP"
	app.Flags = []cli.Flag{
		cli.IntFlag{
			Name:  "port, p",
			Value: defaults.Port,
			Usage: "port to serve on",
		},
		cli.StringFlag{
			Name:  "scenes-dir",
			Value: defaults.ScenesDir,
			Usage: "directory holding JSON scene files",
		},
		cli.BoolFlag{
			Name:  "v",
			Usage: "log render progress",
		},
	}
	app.Action = func(ctx *cli.Context) error {
		if ctx.Bool("v") {
			log.SetLevel(log.Info)
		}
		webServer := server.New(server.Config{
			Port:      ctx.Int("port"),
			ScenesDir: ctx.String("scenes-dir"),
		})
		return webServer.Start()
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error starting server: %v\n", err)
		os.Exit(1)
	}
}
