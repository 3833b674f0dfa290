// plugins/tasks/tasks.go
package tasks

import (
	"fmt"
	"strings"

	"github.com/bethropolis/tidemark/internal/core/text"
	"github.com/bethropolis/tidemark/internal/event"
	"github.com/bethropolis/tidemark/internal/plugin"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	extast "github.com/yuin/goldmark/extension/ast"
	gtext "github.com/yuin/goldmark/text"
)

var _ plugin.Plugin = (*Tasks)(nil)

// SegmentName is the status bar slot this plugin owns.
const SegmentName = "tasks"

var parser = goldmark.New(goldmark.WithExtensions(extension.TaskList)).Parser()

// Progress counts task list checkboxes in a document.
type Progress struct {
	Done, Total int
}

func (p Progress) String() string {
	if p.Total == 0 {
		return ""
	}
	return fmt.Sprintf("[x] %d/%d", p.Done, p.Total)
}

// Count parses markdown and counts its task list items.
func Count(markdown string) Progress {
	src := []byte(markdown)
	doc := parser.Parse(gtext.NewReader(src))

	var p Progress
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if box, ok := n.(*extast.TaskCheckBox); ok {
			p.Total++
			if box.IsChecked {
				p.Done++
			}
		}
		return ast.WalkContinue, nil
	})
	return p
}

// Tasks shows checklist progress in the status bar and adds a :task
// command that appends a new checkbox row.
type Tasks struct {
	api plugin.EditorAPI
	sub event.SubscriptionID
}

// New creates the plugin.
func New() *Tasks {
	return &Tasks{}
}

func (p *Tasks) Name() string {
	return "tasks"
}

func (p *Tasks) Initialize(api plugin.EditorAPI) error {
	p.api = api
	if err := api.RegisterCommand("tasks", p.executeSummary); err != nil {
		return fmt.Errorf("failed to register 'tasks' command: %w", err)
	}
	if err := api.RegisterCommand("task", p.executeAdd); err != nil {
		return fmt.Errorf("failed to register 'task' command: %w", err)
	}
	p.sub = api.SubscribeEvent(event.TypeBufferModified, func(e event.Event) bool {
		if data, ok := e.Data.(event.BufferModifiedData); ok {
			api.SetStatusSegment(SegmentName, Count(data.Markdown).String())
		}
		return false
	})
	api.SetStatusSegment(SegmentName, Count(api.Markdown()).String())
	return nil
}

func (p *Tasks) Shutdown() error {
	if p.api != nil && p.sub != 0 {
		p.api.UnsubscribeEvent(p.sub)
		p.sub = 0
	}
	return nil
}

func (p *Tasks) executeSummary(args []string) error {
	prog := Count(p.api.Markdown())
	if prog.Total == 0 {
		p.api.SetStatusMessage("No tasks")
		return nil
	}
	p.api.SetStatusMessage("Tasks: %d done, %d open", prog.Done, prog.Total-prog.Done)
	return nil
}

// executeAdd inserts a checkbox row at the cursor's line start, with the
// given words as its label.
func (p *Tasks) executeAdd(args []string) error {
	label := strings.Join(args, " ")
	row := text.CheckboxMarker + label
	if label != "" {
		row += "\n"
	}
	p.api.InsertText(row, text.RowStart)
	return nil
}
