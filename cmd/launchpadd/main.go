// Command launchpadd is the ajazz-launchpad host controller daemon.
//
// It owns the launchpad's HID handle, persists key bindings, image
// bindings, and brightness to a local sqlite database, and accepts
// commands from local clients over a UNIX domain socket to reconfigure
// bindings, paint images into display zones, and set brightness.
package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/choden-dev/ajazz-launchpad/internal/control"
	"github.com/choden-dev/ajazz-launchpad/internal/executor"
	"github.com/choden-dev/ajazz-launchpad/internal/hid"
	"github.com/choden-dev/ajazz-launchpad/internal/ipc"
	"github.com/choden-dev/ajazz-launchpad/internal/store"
)

func main() {
	// Log level selection is delegated to the process's log sink; this
	// daemon has no other config knob.
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		log.Printf("[launchpadd] log level requested: %s", level)
	}

	st, err := store.Open(store.DefaultPath)
	if err != nil {
		log.Fatalf("[launchpadd] open config store: %v", err)
	}
	defer st.Close()

	ipcServer, err := ipc.NewServer(ipc.DefaultSocketPath)
	if err != nil {
		log.Fatalf("[launchpadd] bind ipc listener: %v", err)
	}
	defer ipcServer.Close()

	keyExec := executor.NewRobotgo()

	discover := func(ctx context.Context) (hid.Transport, error) {
		return hid.Discover(ctx, hid.DefaultEnumerator)
	}
	loop := control.New(discover, st, ipcServer, keyExec)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Printf("[launchpadd] received %s, shutting down", sig)
		cancel()
	}()

	log.Printf("[launchpadd] started, socket=%s store=%s", ipc.DefaultSocketPath, store.DefaultPath)
	if err := loop.Run(ctx); err != nil && ctx.Err() == nil {
		log.Fatalf("[launchpadd] control loop: %v", err)
	}
	log.Printf("[launchpadd] stopped")
}
