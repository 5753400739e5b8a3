package suggestionfx

import (
	"log"
	"os"

	"go.uber.org/fx"

	"roamio/internal/services"
	"roamio/pkg/utils"
)

var Module = fx.Provide(
	provideTextGenerator, provideSuggestionService)

func provideTextGenerator() utils.TextGeneratorInterface {
	provider := os.Getenv("AI_PROVIDER")

	apiKey := os.Getenv("GEMINI_API_KEY")
	model := os.Getenv("GEMINI_MODEL")
	if provider == "openai" {
		apiKey = os.Getenv("OPENAI_API_KEY")
		model = os.Getenv("OPENAI_MODEL")
	}

	generator, err := utils.NewTextGenerator(provider, apiKey, model)
	if err != nil {
		log.Fatalf("Failed to create text generator: %v", err)
	}
	return generator
}

func provideSuggestionService(ai utils.TextGeneratorInterface) services.SuggestionServiceInterface {
	return services.NewSuggestionService(ai)
}
