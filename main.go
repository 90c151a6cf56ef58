package main

import (
	"os"

	"github.com/achilleasa/photon-gi/cmd"
	"github.com/urfave/cli"
)

func main() {
	cli.VersionFlag = cli.BoolFlag{
		Name:  "version",
		Usage: "print only the version",
	}

	app := cli.NewApp()
	app.Name = "photon-gi"
	app.Usage = "build photon maps and estimate global illumination"
	app.Version = "0.0.1"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
		cli.StringFlag{
			Name:  "log-level",
			Value: "notice",
			Usage: "log verbosity (debug, info, notice, warning, error)",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:  "trace",
			Usage: "trace photons through the cornell box",
			Description: `
Emit global and caustic photons from the ceiling light of a cornell box,
balance them into photon maps and sample irradiance at a set of probe points
using the photon maps and the irradiance cache.`,
			Flags: []cli.Flag{
				cli.IntFlag{
					Name:  "photons, p",
					Value: 100000,
					Usage: "number of global illumination photons",
				},
				cli.IntFlag{
					Name:  "caustics, c",
					Value: 10000,
					Usage: "number of caustic photon paths",
				},
				cli.IntFlag{
					Name:  "workers, w",
					Value: 0,
					Usage: "number of tracing workers (0 = number of cpus)",
				},
				cli.IntFlag{
					Name:  "batch",
					Value: 10000,
					Usage: "photons emitted per scheduling batch",
				},
				cli.Int64Flag{
					Name:  "seed",
					Value: 1,
					Usage: "random seed",
				},
				cli.BoolFlag{
					Name:  "skip-direct",
					Usage: "do not store photons at their first diffuse hit",
				},
				cli.Float64Flag{
					Name:  "mem-fraction",
					Value: 0.5,
					Usage: "fraction of available memory photon maps may use (0 = unlimited)",
				},
				cli.StringFlag{
					Name:  "save",
					Usage: "write the photon maps to this zip archive",
				},
				cli.StringFlag{
					Name:  "load",
					Usage: "load photon maps from this zip archive instead of tracing",
				},
			},
			Action: cmd.Trace,
		},
		{
			Name:  "sysinfo",
			Usage: "display host resources and the derived photon map ceiling",
			Flags: []cli.Flag{
				cli.Float64Flag{
					Name:  "mem-fraction",
					Value: 0.5,
					Usage: "fraction of available memory photon maps may use",
				},
			},
			Action: cmd.SysInfo,
		},
	}

	app.Run(os.Args)
}
