package main

import (
	"context"
	"time"

	"github.com/niksmo/marketplace/config"
	"github.com/niksmo/marketplace/internal/app"
	"github.com/niksmo/marketplace/pkg/sigctx"
)

// closeTimeout bounds the http shutdown together with the wait for
// in-flight shipment notices. Notices still running after it are abandoned.
const closeTimeout = 10 * time.Second

func main() {
	sigCtx, closeApp := sigctx.NotifyContext(context.Background())
	defer closeApp()

	cfg := config.Load()
	cfg.Print()

	storefront := app.New(sigCtx, cfg)

	storefront.Run(closeApp)

	<-sigCtx.Done()
	ctx, cancel := context.WithTimeout(context.Background(), closeTimeout)
	defer cancel()

	storefront.Close(ctx)
}
