package main

import (
	"flag"
	"log"
	"os"

	"github.com/df07/go-raycaster/web/server"
)

func main() {
	// Parse command line flags
	port := flag.Int("port", 8080, "Port to serve on")
	workers := flag.Int("workers", 0, "Render workers per request (0 = one per logical CPU)")
	flag.Parse()

	webServer := server.NewServer(*port, *workers)

	log.Printf("Raycaster Web Server")
	log.Printf("POST a JSON scene to http://localhost:%d/api/render or GET /api/render/default", *port)

	if err := webServer.Start(); err != nil {
		log.Printf("Error starting server: %v", err)
		os.Exit(1)
	}
}
