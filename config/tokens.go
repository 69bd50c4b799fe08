package config

import (
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

// NamedToken is one entry of a tokens file.
type NamedToken struct {
	Name  string `json:"name"`
	Token string `json:"token"`
}

// LoadTokensFromFile loads bearer tokens from a JSON file.
// The file should contain an array of named tokens:
//
//	[
//	  {"name": "api", "token": "3f9c..."},
//	  {"name": "worker", "token": "a81d..."}
//	]
//
// Entries with an empty token are skipped.
func LoadTokensFromFile(path string) ([]string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Path is from trusted config file
	if err != nil {
		return nil, fmt.Errorf("read tokens file: %w", err)
	}

	var entries []NamedToken
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse tokens file: %w", err)
	}

	tokens := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.Token != "" {
			tokens = append(tokens, e.Token)
		}
	}
	return tokens, nil
}

// LoadTokens returns the inline tokens followed by those of TokensFile, if set.
func (c AuthConfig) LoadTokens() ([]string, error) {
	tokens := append([]string(nil), c.Tokens...)

	if c.TokensFile != "" {
		fileTokens, err := LoadTokensFromFile(c.TokensFile)
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, fileTokens...)
	}

	return tokens, nil
}
