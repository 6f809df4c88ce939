package config

import "testing"

func TestLoadAppliesDefaults(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "groq-key")
	t.Setenv("OPENAI_API_KEY", "openai-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != 8080 {
		t.Fatalf("unexpected port: %d", cfg.Port)
	}
	if cfg.GroqAPIURL != "https://api.groq.com/openai/v1" {
		t.Fatalf("unexpected groq URL: %q", cfg.GroqAPIURL)
	}
	if cfg.OpenAIAPIURL != "https://api.openai.com/v1" {
		t.Fatalf("unexpected openai URL: %q", cfg.OpenAIAPIURL)
	}
	if cfg.SMTPPort != 587 {
		t.Fatalf("unexpected SMTP port: %d", cfg.SMTPPort)
	}
}

func TestLoadOverridesFromEnvironment(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "groq-key")
	t.Setenv("OPENAI_API_KEY", "openai-key")
	t.Setenv("PORT", "9090")
	t.Setenv("GROQ_MODEL", "custom-model")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != 9090 {
		t.Fatalf("unexpected port: %d", cfg.Port)
	}
	if cfg.GroqModel != "custom-model" {
		t.Fatalf("unexpected model: %q", cfg.GroqModel)
	}
}

func TestLoadRequiresAPIKeys(t *testing.T) {
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "openai-key")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for empty GROQ_API_KEY")
	}
}
