package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lixenwraith/evo-terrain/server"
)

func doServe(cmd *cobra.Command, args []string) error {
	addr, _ := cmd.Flags().GetString("addr")
	ttl, _ := cmd.Flags().GetDuration("ttl")
	capacity, _ := cmd.Flags().GetUint64("capacity")
	genTimeout, _ := cmd.Flags().GetDuration("gen-timeout")
	debug, _ := cmd.Flags().GetBool("debug")

	opts := []server.Option{
		server.OptionListenAddress(addr),
		server.OptionPresetManager(presetManager(cmd)),
		server.OptionDebugMode(debug),
		server.OptionGenerateTimeout(genTimeout),
	}
	if ttl > 0 {
		opts = append(opts, server.OptionCacheTTL(ttl))
	}
	if capacity > 0 {
		opts = append(opts, server.OptionCacheCapacity(capacity))
	}

	svr := server.New(opts...)
	if err := svr.Start(); err != nil {
		return err
	}
	defer svr.Stop()
	fmt.Fprintf(cmd.ErrOrStderr(), "serving on http://%s/api\n", svr.Addr())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()
	return nil
}
