package main

import (
	"context"

	log "github.com/sirupsen/logrus"

	"tableflip.dev/whiteboard/pkg/commands"
)

func main() {
	if err := commands.New().ExecuteContext(context.Background()); err != nil {
		log.WithError(err).Fatal("whiteboard")
	}
}
