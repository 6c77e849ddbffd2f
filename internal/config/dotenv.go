package config

import (
	"os"

	"github.com/joho/godotenv"
)

// dotenvCandidates are checked in order. godotenv never overwrites a
// variable that is already set, so real environment variables win and
// .env.local shadows .env.
var dotenvCandidates = []string{".env.local", ".env"}

// LoadDotEnv loads whichever dotenv files exist in the working
// directory and returns their names.
func LoadDotEnv() []string {
	var found []string
	for _, name := range dotenvCandidates {
		if _, err := os.Stat(name); err == nil {
			found = append(found, name)
		}
	}
	if len(found) > 0 {
		_ = godotenv.Load(found...)
	}
	return found
}
