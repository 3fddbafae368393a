package types

import "errors"

var (
	ErrNoQuestion     = errors.New("no question provided. Pass --question or answer the interactive prompt")
	ErrNoKeyFile      = errors.New("no service account key file provided. Pass --key-file or set GOOGLE_APPLICATION_CREDENTIALS")
	ErrNoAPIKey       = errors.New("no LLM API key found. Set --api-key or the GEMINI_API_KEY/GROQ_API_KEY environment variable")
	ErrEmptyQuery     = errors.New("the model returned an empty query. Try rephrasing your question")
	ErrNotInitialized = errors.New("logging client not initialized. Validate credentials first")
)
