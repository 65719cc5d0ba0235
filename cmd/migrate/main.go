package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"taskly/internal/config"
	"taskly/internal/db"
	"taskly/internal/repository"
)

func main() {
	apply := flag.Bool("apply", false, "create the indexes instead of listing them")
	flag.Parse()

	if !*apply {
		for _, m := range repository.IndexModels() {
			fmt.Printf("%s %v\n", *m.Options.Name, m.Keys)
		}
		return
	}

	cfg := config.Load()
	client := db.Connect(cfg.MongoURI, cfg.ConnectTimeout)
	defer db.Disconnect(client, cfg.ConnectTimeout)

	repo := repository.NewTaskRepository(client.Database(cfg.DBName).Collection(cfg.CollectionName), cfg.OpTimeout)
	names, err := repo.EnsureIndexes(context.Background())
	if err != nil {
		log.Fatalf("ensure indexes: %v", err)
	}
	for _, name := range names {
		fmt.Printf("applied %s on %s.%s\n", name, cfg.DBName, cfg.CollectionName)
	}
}
