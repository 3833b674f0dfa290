// plugins/wordcount/wordcount.go
package wordcount

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/plugin"
)

// Ensure WordCount implements plugin.Plugin
var _ plugin.Plugin = (*WordCount)(nil)

// SegmentName is the status bar slot this plugin owns.
const SegmentName = "words"

// WordCount counts lines, words and characters in the current note and
// keeps a live word count in the status bar.
type WordCount struct {
	api plugin.EditorAPI
	sub event.SubscriptionID
}

// New creates a new instance of the WordCount plugin.
func New() *WordCount {
	return &WordCount{}
}

// Name returns the unique name of the plugin.
func (p *WordCount) Name() string {
	return "wordcount"
}

// Initialize registers the :wc command and the live counter.
func (p *WordCount) Initialize(api plugin.EditorAPI) error {
	p.api = api

	if err := api.RegisterCommand("wc", p.executeWordCount); err != nil {
		return fmt.Errorf("failed to register 'wc' command: %w", err)
	}
	p.sub = api.SubscribeEvent(event.TypeBufferModified, func(e event.Event) bool {
		if data, ok := e.Data.(event.BufferModifiedData); ok {
			p.updateSegment(data.Markdown)
		}
		return false
	})
	p.updateSegment(api.Markdown())
	return nil
}

// Shutdown drops the event subscription.
func (p *WordCount) Shutdown() error {
	if p.api != nil && p.sub != 0 {
		p.api.UnsubscribeEvent(p.sub)
		p.sub = 0
	}
	return nil
}

func (p *WordCount) updateSegment(markdown string) {
	p.api.SetStatusSegment(SegmentName, fmt.Sprintf("%dw", countWords(markdown)))
}

// executeWordCount is the function called when the :wc command runs.
func (p *WordCount) executeWordCount(args []string) error {
	if p.api == nil {
		return fmt.Errorf("wordcount plugin not initialized with API")
	}
	s := Count(p.api.Markdown())
	p.api.SetStatusMessage("Lines: %d, Words: %d, Chars: %d", s.Lines, s.Words, s.Chars)
	return nil
}

// Stats summarizes a document.
type Stats struct {
	Lines, Words, Chars int
}

// Count computes Stats for markdown. An empty document has zero lines.
func Count(markdown string) Stats {
	s := Stats{Words: countWords(markdown), Chars: len([]rune(markdown))}
	if markdown != "" {
		s.Lines = strings.Count(markdown, "\n") + 1
	}
	return s
}

// countWords counts runs of non-space runes. Markdown punctuation standing
// alone (list dashes, heading hashes) is not a word.
func countWords(markdown string) int {
	count := 0
	for _, field := range strings.FieldsFunc(markdown, unicode.IsSpace) {
		if strings.IndexFunc(field, func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsDigit(r)
		}) >= 0 {
			count++
		}
	}
	return count
}
