package embedder

type Provider = string

const (
	ProviderOpenAI      Provider = "OpenAI"
	ProviderCohere      Provider = "Cohere"
	ProviderHuggingFace Provider = "HuggingFace"
)
