// Command quilts gestiona el inventario de edredones del hogar: importación desde la hoja
// de cálculo, ciclo de uso, recomendaciones de temporada y exportación.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root, closeApp := newRootCmd()
	err := root.ExecuteContext(ctx)
	closeApp()
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
