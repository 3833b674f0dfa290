// Package highlighter computes per-line style ranges for raw markdown using
// the tree-sitter markdown grammar.
package highlighter

import (
	"context"
	_ "embed"
	"fmt"
	"sort"
	"strings"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	mdgrammar "github.com/smacker/go-tree-sitter/markdown/tree-sitter-markdown"

	"github.com/bethropolis/tidemark/internal/logger"
	"github.com/bethropolis/tidemark/internal/types"
	"github.com/bethropolis/tidemark/internal/utils"
)

//go:embed queries/markdown/highlights.scm
var markdownHighlightsQuery []byte

// HighlightResult maps line number -> styled ranges on that line.
type HighlightResult map[int][]types.StyledRange

// Highlighter parses markdown and runs the highlight query. Calls are
// serialized; a Highlighter may be shared between goroutines.
type Highlighter struct {
	mu     sync.Mutex
	parser *sitter.Parser
	lang   *sitter.Language
	query  *sitter.Query
}

// NewHighlighter compiles the embedded markdown query.
func NewHighlighter() (*Highlighter, error) {
	lang := mdgrammar.GetLanguage()
	query, err := sitter.NewQuery(markdownHighlightsQuery, lang)
	if err != nil {
		return nil, fmt.Errorf("compiling markdown highlight query: %w", err)
	}
	parser := sitter.NewParser()
	parser.SetLanguage(lang)
	return &Highlighter{parser: parser, lang: lang, query: query}, nil
}

// Highlight parses text and returns style ranges per line. Captures that
// span lines are split into one range per line.
func (h *Highlighter) Highlight(ctx context.Context, text string) (HighlightResult, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	source := []byte(text)
	tree, err := h.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parsing markdown: %w", err)
	}
	defer tree.Close()

	lines := strings.Split(text, "\n")
	result := make(HighlightResult)

	qc := sitter.NewQueryCursor()
	defer qc.Close()
	qc.Exec(h.query, tree.RootNode())

	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		match, ok := qc.NextMatch()
		if !ok {
			break
		}
		for _, capture := range match.Captures {
			name := h.query.CaptureNameForId(capture.Index)
			addNodeRanges(result, lines, capture.Node, name)
		}
	}

	// Outer nodes are matched first; sort so inner captures draw last.
	for line := range result {
		ranges := result[line]
		sort.SliceStable(ranges, func(i, j int) bool {
			return ranges[i].EndCol-ranges[i].StartCol > ranges[j].EndCol-ranges[j].StartCol
		})
	}

	logger.Debugf("Highlighter: styled %d lines", len(result))
	return result, nil
}

func addNodeRanges(result HighlightResult, lines []string, node *sitter.Node, captureName string) {
	start, end := node.StartPoint(), node.EndPoint()
	for row := int(start.Row); row <= int(end.Row) && row < len(lines); row++ {
		line := []byte(lines[row])
		startCol := 0
		if row == int(start.Row) {
			startCol = utils.ByteOffsetToRuneIndex(line, int(start.Column))
		}
		endCol := utils.ByteOffsetToRuneIndex(line, len(line))
		if row == int(end.Row) {
			endCol = utils.ByteOffsetToRuneIndex(line, int(end.Column))
		}
		if endCol <= startCol {
			continue
		}
		result[row] = append(result[row], types.StyledRange{
			StartCol:  startCol,
			EndCol:    endCol,
			StyleName: CaptureNameToStyleName(captureName),
		})
	}
}

// CaptureNameToStyleName maps a tree-sitter capture name to a theme style
// name. Themes fall back to the part before the first dot.
func CaptureNameToStyleName(captureName string) string {
	return strings.TrimPrefix(captureName, "@")
}
