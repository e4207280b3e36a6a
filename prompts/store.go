package prompts

import "sync"

// Store holds the prompt texts currently in use by the translation client.
// It starts from the package defaults and can be swapped at runtime when
// override files change, so reads take a snapshot under a read lock.
type Store struct {
	mu            sync.RWMutex
	systemPrompt  string
	convertPrompt string
}

// NewStore returns a Store seeded with the default prompts.
func NewStore() *Store {
	return &Store{
		systemPrompt:  SystemPrompt,
		convertPrompt: ConvertPrompt,
	}
}

// Current returns the system instruction and the convert-prompt template
// as a consistent pair.
func (s *Store) Current() (systemPrompt, convertPrompt string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.systemPrompt, s.convertPrompt
}

// Update replaces both prompt texts atomically.
func (s *Store) Update(systemPrompt, convertPrompt string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.systemPrompt = systemPrompt
	s.convertPrompt = convertPrompt
}
