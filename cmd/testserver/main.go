//nolint:errcheck,forbidigo,gosec // test utility allows simpler error handling and direct output
package main

import (
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
)

const stationsPath = "/ServiciosRESTCarburantes/PreciosCarburantes/EstacionesTerrestres/"

func main() {
	port := flag.Int("port", 8081, "Port to listen on")
	status := flag.Int("status", http.StatusOK, "Status code to answer with, to simulate upstream failures")
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		fmt.Println("Usage: testserver [options] <stations.json>")
		fmt.Println("\nOptions:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	stationsFile := args[0]
	if _, err := os.Stat(stationsFile); os.IsNotExist(err) {
		log.Fatalf("Stations file does not exist: %s", stationsFile)
	}

	http.HandleFunc(stationsPath, func(w http.ResponseWriter, _ *http.Request) {
		if *status != http.StatusOK {
			http.Error(w, http.StatusText(*status), *status)
			log.Printf("Answered with status %d", *status)
			return
		}
		serveJSONFile(w, stationsFile)
	})

	addr := fmt.Sprintf(":%d", *port)
	log.Printf("Test server listening on %s", addr)
	log.Printf("Stations: %s -> STATIONS_URL=http://localhost%s%s", stationsFile, addr, stationsPath)
	log.Println("\nThe file is read on each request, so you can edit it while the server is running.")

	if err := http.ListenAndServe(addr, nil); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func serveJSONFile(w http.ResponseWriter, path string) {
	content, err := os.ReadFile(path)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to read file: %v", err), http.StatusInternalServerError)
		log.Printf("Error reading %s: %v", path, err)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Write(content)
	log.Printf("Served %s (%d bytes)", path, len(content))
}
