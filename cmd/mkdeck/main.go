package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"slideforge/renderer"
	"slideforge/services"
)

// mkdeck converts a plain text file into a PPTX deck without touching the
// model, the database or the network. Handy for trying out themes.
func main() {
	in := flag.String("in", "", "path to a plain text file to convert (required)")
	out := flag.String("out", "deck.pptx", "output PPTX path")
	title := flag.String("title", "", "deck title (derived from the text when empty)")
	slides := flag.Int("slides", 8, "number of content slides (1-20)")
	theme := flag.String("theme", renderer.DefaultThemeName, "deck theme: one of "+strings.Join(renderer.Names(), ", "))
	flag.Parse()

	if *in == "" {
		fmt.Println("Error: -in is required")
		fmt.Println("\nUsage:")
		flag.PrintDefaults()
		os.Exit(1)
	}

	data, err := os.ReadFile(*in)
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}

	deck := services.BuildDeckFromText(string(data), *title, *slides)

	r := renderer.NewDeckRenderer(nil)
	pptx, err := r.Render(context.Background(), deck, *theme)
	if err != nil {
		log.Fatalf("Failed to render deck: %v", err)
	}

	if err := os.WriteFile(*out, pptx, 0644); err != nil {
		log.Fatalf("Failed to write %s: %v", *out, err)
	}

	fmt.Printf("Wrote %s (%d slides, theme %s)\n", *out, len(deck.Slides), *theme)
}
