package counsel

// Config holds generation settings.
type Config struct {
	MaxTokens   int
	Temperature float64
	// RecentLimit caps how many past attempts go into the prompt.
	RecentLimit int
}

func DefaultConfig() Config {
	return Config{
		MaxTokens:   600,
		Temperature: 0.4,
		RecentLimit: 5,
	}
}
