// Package id generates short, URL-safe identifiers for ingestion runs and requests.
package id

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Lowercase alphanumerics keep ids readable in log lines and file names.
const (
	alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	size     = 12
)

// Generate returns prefix-xxxxxxxxxxxx (e.g. "run-4f9k2m0x8qza").
func Generate(prefix string) (string, error) {
	id, err := gonanoid.Generate(alphabet, size)
	if err != nil {
		return "", fmt.Errorf("generate nanoid: %w", err)
	}
	if prefix == "" {
		return id, nil
	}
	return prefix + "-" + id, nil
}

// MustGenerate is like Generate but panics if ID generation fails.
func MustGenerate(prefix string) string {
	id, err := Generate(prefix)
	if err != nil {
		panic(fmt.Sprintf("failed to generate ID: %v", err))
	}
	return id
}

// RunID returns an identifier for one ingestion run.
func RunID() string {
	return MustGenerate("run")
}
