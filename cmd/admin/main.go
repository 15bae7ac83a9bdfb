// The admin command is the operator console of the storage system. It uses
// the same REPL as the trainer console with the operator commands unlocked.
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
	app, err := cli.NewAppFromConfig(ctx, cfg, true)

	if err != nil {
		log.Printf("%v", err)
		return
	}

	app.Run(ctx)

}
