package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"bptree/internal/shell"
	"bptree/internal/term"
	"bptree/logger"
)

var (
	order   = flag.Int("order", shell.DefaultOrder, "B+ tree order of every directory")
	verbose = flag.Bool("v", false, "log tree splits, collapses and failed commands")
	noColor = flag.Bool("no-color", false, "disable highlighting of directories")
)

func main() {
	flag.Parse()

	level := zapcore.WarnLevel
	if *verbose {
		level = zapcore.DebugLevel
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(level)
	zl, err := cfg.Build()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer zl.Sync()

	interactive := term.IsTerminal(os.Stdin)
	sh, err := shell.New(
		shell.WithOrder(*order),
		shell.WithLogger(logger.NewZap(zl)),
		shell.WithColor(!*noColor && term.IsTerminal(os.Stdout)),
	)
	if err != nil {
		zl.Fatal("failed to start shell", zap.Error(err))
	}

	if interactive {
		fmt.Println("bptree shell, type help for commands")
	}
	if err := sh.Run(os.Stdin, interactive); err != nil {
		zl.Fatal("read failed", zap.Error(err))
	}
}
