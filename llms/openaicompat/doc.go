// Package openaicompat adapts any OpenAI-compatible chat completion
// endpoint to the langchaingo llms.Model interface.
//
// One adapter covers OpenAI itself and every backend speaking the same
// wire format, including a local Ollama server via its /v1 API:
//
//	// Hosted OpenAI
//	llm, err := openaicompat.New(
//		openaicompat.WithAPIKey(os.Getenv("OPENAI_API_KEY")),
//		openaicompat.WithModel("gpt-4o-mini"),
//	)
//
//	// Local Ollama
//	llm, err := openaicompat.New(
//		openaicompat.WithBaseURL("http://localhost:11434/v1"),
//		openaicompat.WithModel("llama3.1"),
//	)
//
// Temperature, TopP, Seed, MaxTokens and stop words from the call options
// are passed through to the request. When llms.WithStreamingFunc is set
// the request streams and each delta is forwarded as it arrives.
package openaicompat
