package environment

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

type EnvConfig struct {
	GithubToken string
	NatsURL     string
	NatsSubject string
	ResSqsURL   string
}

func ReadEnvConfig() *EnvConfig {
	// a .env file is optional; real deployments set variables directly
	_ = godotenv.Load()

	result := &EnvConfig{
		GithubToken: os.Getenv("GITHUB_PA_TOKEN"),
		NatsURL:     os.Getenv("HARVEST_NATS_URL"),
		NatsSubject: os.Getenv("HARVEST_NATS_SUBJECT"),
		ResSqsURL:   os.Getenv("HARVEST_RES_SQS_URL"),
	}

	if result.NatsSubject == "" {
		result.NatsSubject = "harvest.results"
	}

	return result
}

// RequireGithubToken returns the hosting-API bearer token. Every
// hosting-API call needs it, so a missing token aborts the run before
// any contest is processed.
func (c *EnvConfig) RequireGithubToken() (string, error) {
	if c.GithubToken == "" {
		return "", fmt.Errorf("GITHUB_PA_TOKEN is not set")
	}
	return c.GithubToken, nil
}
