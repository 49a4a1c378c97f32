package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Deepak7704/100xSWE/internal/core"
)

// generationTimeout bounds a single model call. The job itself has no
// deadline; this only turns a hung provider into a stage failure.
const generationTimeout = 5 * time.Minute

// GenerateRequest carries everything the model needs to produce a change
// set: the task, its keywords, the selected files with contents, and a
// paths-only snapshot of the whole tree.
type GenerateRequest struct {
	Task          string
	Keywords      []string
	SelectedFiles []string
	FileContents  map[string]string
	Tree          []string
}

type generationPromptData struct {
	Task          string
	Keywords      string
	Tree          string
	SelectedFiles string
	FileContext   string
}

func (e *llmEngine) Generate(ctx context.Context, req *GenerateRequest) (*core.Generation, error) {
	if req == nil || req.Task == "" {
		return nil, errors.New("generation requires a task")
	}

	data := generationPromptData{
		Task:          req.Task,
		Keywords:      strings.Join(req.Keywords, ", "),
		Tree:          strings.Join(req.Tree, "\n"),
		SelectedFiles: strings.Join(req.SelectedFiles, "\n"),
		FileContext:   buildFileContext(req.SelectedFiles, req.FileContents),
	}

	prompt, err := e.promptMgr.Render(CodeGenerationPrompt, ModelProvider(e.cfg.AI.LLMProvider), data)
	if err != nil {
		return nil, fmt.Errorf("failed to render generation prompt: %w", err)
	}

	e.logger.Debug("requesting change set from model",
		"model", e.cfg.AI.GeneratorModel,
		"prompt_chars", len(prompt),
		"selected_files", len(req.SelectedFiles),
	)

	raw, err := e.generateWithTimeout(ctx, prompt, generationTimeout)
	if err != nil {
		return nil, fmt.Errorf("generation call failed: %w", err)
	}

	gen, err := parseGeneration(raw)
	if err != nil {
		return nil, err
	}

	e.logger.Info("model produced change set",
		"file_operations", len(gen.FileOperations),
		"shell_commands", len(gen.ShellCommands),
	)
	return gen, nil
}

// buildFileContext renders the selected file contents as delimited per-file
// blocks so the model can attribute code to paths.
func buildFileContext(files []string, contents map[string]string) string {
	var b strings.Builder
	for _, path := range files {
		content, ok := contents[path]
		if !ok {
			continue
		}
		b.WriteString("---\n")
		fmt.Fprintf(&b, "File: %s\n\n", path)
		b.WriteString(content)
		if !strings.HasSuffix(content, "\n") {
			b.WriteString("\n")
		}
		b.WriteString("---\n\n")
	}
	return b.String()
}

// generateWithTimeout wraps LLM generation with a hard timeout.
func (e *llmEngine) generateWithTimeout(ctx context.Context, prompt string, timeout time.Duration) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	type result struct {
		resp string
		err  error
	}
	resultCh := make(chan result, 1)

	go func() {
		resp, err := e.model.Call(ctx, prompt)
		select {
		case resultCh <- result{resp, err}:
		case <-ctx.Done():
			// Do not block the goroutine if the parent timed out.
		}
	}()

	select {
	case res := <-resultCh:
		return res.resp, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
