/*
Brushwork draws a small level editor scene through the render state
sorting engine to try things out
*/
package main

import (
	"errors"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/brushwork/engine"
	"github.com/spaghettifunk/brushwork/engine/config"
	"github.com/spaghettifunk/brushwork/engine/core"
	"github.com/spaghettifunk/brushwork/testbed"
)

func main() {
	configPath := flag.String("config", "brushwork.toml", "path to the TOML configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if errors.Is(err, core.ErrConfigNotFound) {
		core.LogWarn("%s, using defaults", err)
		cfg = config.Default()
	} else if err != nil {
		core.LogFatal(err.Error())
	}

	tb := testbed.NewTestGame()

	e, err := engine.New(tb.Game, cfg, *configPath)
	if err != nil {
		core.LogFatal(err.Error())
	}

	if err := e.Initialize(); err != nil {
		_ = e.Shutdown()
		core.LogFatal(err.Error())
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	go func() {
		// capture sigterm and other system call here
		<-sigCh
		e.Stop()
	}()

	runErr := e.Run()
	if err := e.Shutdown(); err != nil {
		core.LogError(err.Error())
	}
	if runErr != nil {
		core.LogFatal(runErr.Error())
	}
}
