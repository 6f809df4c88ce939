package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	Port int `env:"PORT" envDefault:"8080"`

	GroqAPIKey string `env:"GROQ_API_KEY,required,notEmpty"`
	GroqAPIURL string `env:"GROQ_API_URL"                  envDefault:"https://api.groq.com/openai/v1"`
	GroqModel  string `env:"GROQ_MODEL"                    envDefault:"llama-3.3-70b-versatile"`

	OpenAIAPIKey string `env:"OPENAI_API_KEY,required,notEmpty"`
	OpenAIAPIURL string `env:"OPENAI_API_URL"                  envDefault:"https://api.openai.com/v1"`
	OpenAIModel  string `env:"OPENAI_MODEL"                    envDefault:"gpt-4o-mini"`

	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT"     envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM"`
}

// Load reads an optional .env file and then the process environment.
func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	return cfg, nil
}
