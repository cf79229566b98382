package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"bptree"
	"bptree/internal/server"
	"bptree/logger"
)

var (
	addr  = flag.String("addr", "127.0.0.1:6380", "listen address")
	order = flag.Int("order", bptree.DefaultOrder, "B+ tree order")
)

func main() {
	flag.Parse()

	zl, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer zl.Sync()
	log := logger.NewZap(zl)

	store, err := server.NewStore(*order, log)
	if err != nil {
		zl.Fatal("failed to create store", zap.Error(err))
	}

	srv := server.New(*addr, store, log)
	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		<-sig
		zl.Info("shutting down")
		_ = srv.Close()
	}()

	if err := srv.ListenAndServe(); err != nil {
		zl.Fatal("server stopped", zap.Error(err))
	}
}
