// The client command is the trainer console of the storage system.
package main

import (
	"context"
	"log"

	"github.com/dmitrijs2005/pokestore/internal/client/cli"
	"github.com/dmitrijs2005/pokestore/internal/config"
)

func main() {

	ctx := context.Background()
	cfg := config.LoadConfig()
	app, err := cli.NewAppFromConfig(ctx, cfg, false)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
