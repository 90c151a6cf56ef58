package cmd

import (
	"github.com/achilleasa/photon-gi/log"
	"github.com/urfave/cli"
)

var logger = log.New("photon-gi")

// Apply the global --log-level flag. The -v and -vv shortcuts take
// precedence.
func setupLogging(ctx *cli.Context) error {
	if name := ctx.GlobalString("log-level"); name != "" {
		level, err := log.ParseLevel(name)
		if err != nil {
			return err
		}
		log.SetLevel(level)
	}

	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}

	return nil
}
