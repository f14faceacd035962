package main

import (
	"fmt"
	"log"

	"swap24.backend/pkg/crypto"
)

var (
	printfFn      = fmt.Printf
	generateKeyFn = crypto.GenerateAPIKey
	hashKeyFn     = crypto.HashAPIKey
	fatalfFn      = log.Fatalf
)

// Generates a fresh API key and the bcrypt hash the server checks it
// against. The plain key goes to the caller, the hash goes into
// API_KEY_HASH; the plain key is never stored anywhere.
func main() {
	key, err := generateKeyFn()
	if err != nil {
		fatalfFn("Failed to generate api key: %v", err)
	}

	hash, err := hashKeyFn(key)
	if err != nil {
		fatalfFn("Failed to hash api key: %v", err)
	}

	printfFn("Generated API credentials\n")
	printfFn("API_KEY=%s\n", key)
	printfFn("API_KEY_HASH=%s\n", hash)
}
