package main

import (
	"context"

	"github.com/skyworks-mro/pirdesk/internal/client/cli"
	"github.com/skyworks-mro/pirdesk/internal/client/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	app.Root(ctx)

}
