package main

import (
	"context"
	"flag"
	"log"
	"sort"

	"taskly/internal/config"
	"taskly/internal/db"
	"taskly/internal/domain"
	"taskly/internal/repository"
)

func main() {
	email := flag.String("email", "test@example.com", "owner of the seeded tasks")
	flag.Parse()

	cfg := config.Load()
	client := db.Connect(cfg.MongoURI, cfg.ConnectTimeout)
	defer db.Disconnect(client, cfg.ConnectTimeout)

	repo := repository.NewTaskRepository(client.Database(cfg.DBName).Collection(cfg.CollectionName), cfg.OpTimeout)
	ctx := context.Background()

	// skip seeding when the owner already has tasks
	existing, err := repo.ListByOwner(ctx, *email)
	if err != nil {
		log.Fatalf("list tasks failed: %v", err)
	}
	if len(existing) > 0 {
		log.Printf("owner %s already has %d tasks\n", *email, len(existing))
	} else {
		seed := []*domain.Task{
			{Email: *email, Category: "To Do", Fields: map[string]any{"title": "Write the weekly report"}},
			{Email: *email, Category: "In Progress", Fields: map[string]any{"title": "Review pull requests"}},
			{Email: *email, Category: "Done", Fields: map[string]any{"title": "Set up the project"}},
			{Email: *email, Fields: map[string]any{"title": "Sort out later"}},
		}
		for _, t := range seed {
			res, err := repo.Create(ctx, t)
			if err != nil {
				log.Fatalf("create task failed: %v", err)
			}
			log.Printf("task created id=%s category=%q\n", res.InsertedID.Hex(), t.Category)
		}
	}

	// verify read
	tasks, err := repo.ListByOwner(ctx, *email)
	if err != nil {
		log.Fatalf("list tasks failed: %v", err)
	}
	groups := domain.GroupByCategory(tasks)
	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		log.Printf("group %s: %d tasks\n", k, len(groups[k]))
	}
}
