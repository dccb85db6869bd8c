package provider

import "github.com/aicmt/aicmt/internal/config"

// New selects the backend once at startup: a configured API key picks the
// direct path, otherwise the public relay. The two are never tried in
// sequence.
func New(cfg *config.Config) (Generator, error) {
	template, err := LoadTemplate(cfg.PromptTemplate)
	if err != nil {
		return nil, err
	}

	if cfg.APIKey != "" {
		return NewOpenAIGenerator(OpenAIOptions{
			APIKey:   cfg.APIKey,
			BaseURL:  cfg.APIBase,
			Model:    cfg.Model,
			Template: template,
		}), nil
	}
	return NewRelayGenerator(cfg.RelayURL), nil
}
