// Command klang translates K source code to C source code.
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
	Name:          "klang",
	Version:       "1.0.0",
	Description:   "Translates K language source code to C source code",
	Direction:     translate.Reverse,
	InputExt:      ".k",
	DefaultOutput: "output.c",
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
