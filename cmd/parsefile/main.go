// Command parsefile runs the parsing pipeline on a local OCR text file and
// prints the outcome as JSON.
// Usage: go run ./cmd/parsefile -text invoice.txt [-markup invoice.md]
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"invox/internal/domain"
	"invox/internal/enhance"
	"invox/internal/pipeline"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	textPath := flag.String("text", "", "path to the OCR text file (required)")
	markupPath := flag.String("markup", "", "path to an optional structured markup file")
	flag.Parse()

	if *textPath == "" {
		flag.Usage()
		return fmt.Errorf("missing -text flag")
	}

	text, err := os.ReadFile(*textPath)
	if err != nil {
		return fmt.Errorf("reading text file: %w", err)
	}

	var markup []byte
	if *markupPath != "" {
		markup, err = os.ReadFile(*markupPath)
		if err != nil {
			return fmt.Errorf("reading markup file: %w", err)
		}
	}

	p := pipeline.New(enhance.NewOrchestrator(nil), nil, nil)
	outcome, err := p.Process(context.Background(), domain.RawDocument{
		Text:   string(text),
		Markup: string(markup),
	})
	if err != nil {
		return fmt.Errorf("parsing: %w", err)
	}

	encoded, err := json.MarshalIndent(outcome, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding outcome: %w", err)
	}
	fmt.Println(string(encoded))
	return nil
}
