package domain

// PromptEntry is a stored template in the prompt library. The library
// database is managed by other tools; this program only reads it.
type PromptEntry struct {
	ID       int64
	Template string
	Tag      string
}

// TagCount pairs a prompt library tag with the number of prompts carrying it.
type TagCount struct {
	Tag   string
	Count int
}
