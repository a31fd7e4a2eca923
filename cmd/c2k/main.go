// Command c2k translates C source code to K source code.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/klang-lang/klang/internal/cli"
	"github.com/klang-lang/klang/internal/translate"
	"github.com/klang-lang/klang/internal/vfs"
)

var tool = cli.Tool{
	Name:          "c2k",
	Version:       "0.0.1",
	Description:   "Translates C source code to K language source code",
	Direction:     translate.Forward,
	InputExt:      ".c",
	DefaultOutput: "output.k",
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := tool.Run(ctx, os.Args[1:], cli.Env{
		FS:     vfs.NewOS(),
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	})
	stop()
	os.Exit(code)
}
