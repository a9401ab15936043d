package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"wireroute/pkg/api"
	"wireroute/pkg/scene"
)

func main() {
	scenePath := flag.String("scene", "scene.json", "Path to a scene JSON document (boxes, anchors, nets)")
	port := flag.Int("port", 8080, "HTTP port")
	corsOrigin := flag.String("cors-origin", "", "CORS allowed origin (empty = same-origin)")
	flag.Parse()

	start := time.Now()

	log.Printf("Loading scene from %s...", *scenePath)
	f, err := os.Open(*scenePath)
	if err != nil {
		log.Fatalf("Failed to open scene: %v", err)
	}
	sc, err := scene.Load(f)
	f.Close()
	if err != nil {
		log.Fatalf("Failed to parse scene: %v", err)
	}

	log.Printf("Building graph: %d boxes, %d anchors...", len(sc.Boxes), len(sc.Anchors))
	handle := api.NewGraphHandle()
	handle.Build(sc.Anchors, sc.Boxes, sc.Minimal)
	log.Printf("Ready in %s: %d nodes", time.Since(start).Round(time.Millisecond), handle.NumNodes())

	addr := fmt.Sprintf(":%d", *port)
	cfg := api.DefaultConfig(addr)
	cfg.CORSOrigin = *corsOrigin

	srv := api.NewServer(cfg, handle)
	log.Printf("Listening on %s", addr)
	if err := api.ListenAndServe(srv); err != nil {
		log.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
}
