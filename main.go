/*
Cubana is a small WebGPU sandbox: a field of spinning textured cubes with a
free-flying camera. Almost any key spawns another cube; the 1/2/3 keys switch
how every cube's transform is composed.
*/
package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spaghettifunk/cubana/engine"
	"github.com/spaghettifunk/cubana/engine/core"
	"github.com/spaghettifunk/cubana/testbed"
)

func main() {
	config, err := engine.LoadApplicationConfig("cubana.toml")
	if err != nil {
		panic(err)
	}

	tb, err := testbed.NewTestGame(config)
	if err != nil {
		panic(err)
	}

	eng, err := engine.New(tb.Game)
	if err != nil {
		panic(err)
	}

	if err := eng.Initialize(); err != nil {
		panic(err)
	}

	// signal channel to capture system calls
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT, syscall.SIGQUIT)

	go func() {
		<-sigCh
		core.EventFire(core.EventContext{
			Type: core.EVENT_CODE_APPLICATION_QUIT,
		})
	}()

	// run engine
	if err := eng.Run(); err != nil {
		panic(err)
	}

	if err := eng.Shutdown(); err != nil {
		panic(err)
	}
}
