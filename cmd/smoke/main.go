package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"os"
	"time"
)

// smoke drives create, list, update and delete against a running server.
func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "3000"
	}
	// use 127.0.0.1 to prefer IPv4 (avoid resolving to [::1])
	base := flag.String("base", "http://127.0.0.1:"+port, "server base URL")
	email := flag.String("email", fmt.Sprintf("smoke-%d@example.com", time.Now().Unix()), "owner used for the run")
	flag.Parse()

	client := &http.Client{Timeout: 10 * time.Second}

	var created struct {
		InsertedID string `json:"insertedId"`
	}
	mustDo(client, http.MethodPost, *base+"/tasks",
		map[string]any{"email": *email, "category": "To Do", "title": "smoke"}, &created)
	log.Printf("created id=%s", created.InsertedID)

	var groups map[string][]map[string]any
	mustDo(client, http.MethodGet, *base+"/tasks/"+url.PathEscape(*email), nil, &groups)
	if len(groups["to-do"]) != 1 {
		log.Fatalf("expected one task under to-do, got %v", groups)
	}

	var updated struct {
		MatchedCount int64 `json:"matchedCount"`
	}
	mustDo(client, http.MethodPut, *base+"/tasks/"+created.InsertedID,
		map[string]any{"category": "Done"}, &updated)
	if updated.MatchedCount != 1 {
		log.Fatalf("expected update to match 1 task, got %d", updated.MatchedCount)
	}

	groups = nil
	mustDo(client, http.MethodGet, *base+"/tasks/"+url.PathEscape(*email), nil, &groups)
	if len(groups["done"]) != 1 || len(groups["to-do"]) != 0 {
		log.Fatalf("expected task moved to done, got %v", groups)
	}

	var deleted struct {
		DeletedCount int64 `json:"deletedCount"`
	}
	mustDo(client, http.MethodDelete, *base+"/tasks/"+created.InsertedID, nil, &deleted)
	if deleted.DeletedCount != 1 {
		log.Fatalf("expected 1 deleted, got %d", deleted.DeletedCount)
	}

	log.Println("smoke test finished")
}

func mustDo(client *http.Client, method, target string, body any, out any) {
	var rd io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			log.Fatalf("encode %s %s: %v", method, target, err)
		}
		rd = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, target, rd)
	if err != nil {
		log.Fatalf("build %s %s: %v", method, target, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	res, err := client.Do(req)
	if err != nil {
		log.Fatalf("%s %s: %v", method, target, err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		log.Fatalf("read %s %s: %v", method, target, err)
	}
	if res.StatusCode != http.StatusOK {
		log.Fatalf("%s %s: status %d: %s", method, target, res.StatusCode, raw)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		log.Fatalf("decode %s %s: %v", method, target, err)
	}
}
