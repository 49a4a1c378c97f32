// Package engine turns a change request and a checked-out working copy into
// a concrete set of file operations. It discovers candidate files, narrows
// them to the ones worth feeding to the model, and asks an LLM to produce
// the change set for the task.
package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode"

	"github.com/sevigo/goframe/llms"

	"github.com/Deepak7704/100xSWE/internal/config"
	"github.com/Deepak7704/100xSWE/internal/core"
)

// Engine is the code-generation collaborator of the pipeline. Discovery and
// selection are heuristic; only Generate talks to the model.
//
//go:generate mockgen -destination=../../mocks/mock_engine.go -package=mocks . Engine
type Engine interface {
	// FindFiles walks the working copy and returns the relative paths of all
	// files that survive the exclusion rules, sorted for determinism.
	FindFiles(repoPath string, repoConfig *core.RepoConfig) ([]string, error)

	// ExtractKeywords tokenizes a task description into significant terms,
	// lowercased and deduplicated in order of first appearance.
	ExtractKeywords(task string) []string

	// SelectFiles ranks the candidates against the task keywords and returns
	// at most limit paths. A non-positive limit applies the package default.
	SelectFiles(candidates, keywords []string, limit int) []string

	// ReadContext loads the full contents of the given files relative to the
	// working copy root.
	ReadContext(repoPath string, files []string) (map[string]string, error)

	// Generate asks the model for the change set that accomplishes the task.
	Generate(ctx context.Context, req *GenerateRequest) (*core.Generation, error)
}

type llmEngine struct {
	cfg       *config.Config
	promptMgr *PromptManager
	model     llms.Model
	logger    *slog.Logger
}

// NewEngine creates the LLM-backed Engine used by the job pipeline.
func NewEngine(cfg *config.Config, promptMgr *PromptManager, model llms.Model, logger *slog.Logger) Engine {
	return &llmEngine{
		cfg:       cfg,
		promptMgr: promptMgr,
		model:     model,
		logger:    logger,
	}
}

func (e *llmEngine) FindFiles(repoPath string, repoConfig *core.RepoConfig) ([]string, error) {
	if repoConfig == nil {
		repoConfig = core.DefaultRepoConfig()
	}

	files, err := listFiles(repoPath, buildExcludeDirs(repoConfig), buildExcludeExts(repoConfig))
	if err != nil {
		return nil, fmt.Errorf("failed to scan working copy %s: %w", repoPath, err)
	}
	sort.Strings(files)

	e.logger.Debug("discovered candidate files", "path", repoPath, "count", len(files))
	return files, nil
}

const minKeywordLen = 3

// stopwords are filler terms that carry no signal about which files a task
// touches.
var stopwords = map[string]struct{}{
	"the": {}, "and": {}, "for": {}, "with": {}, "from": {}, "into": {},
	"that": {}, "this": {}, "are": {}, "was": {}, "were": {}, "will": {},
	"would": {}, "should": {}, "could": {}, "can": {}, "has": {}, "have": {},
	"had": {}, "not": {}, "all": {}, "any": {}, "its": {}, "our": {},
	"your": {}, "you": {}, "they": {}, "them": {}, "please": {}, "then": {},
	"when": {}, "where": {}, "which": {}, "there": {}, "here": {}, "does": {},
	"did": {}, "don": {}, "doesn": {}, "also": {}, "use": {}, "using": {},
	"make": {}, "sure": {}, "need": {}, "needs": {}, "new": {}, "some": {},
}

func (e *llmEngine) ExtractKeywords(task string) []string {
	tokens := strings.FieldsFunc(strings.ToLower(task), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]struct{}, len(tokens))
	var keywords []string
	for _, tok := range tokens {
		if len(tok) < minKeywordLen {
			continue
		}
		if _, ok := stopwords[tok]; ok {
			continue
		}
		if _, ok := seen[tok]; ok {
			continue
		}
		seen[tok] = struct{}{}
		keywords = append(keywords, tok)
	}
	return keywords
}

const defaultMaxContextFiles = 10

func (e *llmEngine) SelectFiles(candidates, keywords []string, limit int) []string {
	if limit <= 0 {
		limit = defaultMaxContextFiles
	}

	type scoredPath struct {
		path  string
		score int
	}
	ranked := make([]scoredPath, 0, len(candidates))
	for _, path := range candidates {
		if score := scorePath(path, keywords); score > 0 {
			ranked = append(ranked, scoredPath{path: path, score: score})
		}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].score != ranked[j].score {
			return ranked[i].score > ranked[j].score
		}
		return ranked[i].path < ranked[j].path
	})
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	selected := make([]string, 0, len(ranked))
	for _, sp := range ranked {
		selected = append(selected, sp.path)
	}
	e.logger.Debug("selected files for context", "candidates", len(candidates), "selected", len(selected))
	return selected
}

// scorePath weighs a keyword hit in the file name above a hit anywhere in
// the path. Zero means the path shares nothing with the task.
func scorePath(path string, keywords []string) int {
	lower := strings.ToLower(filepath.ToSlash(path))
	base := strings.TrimSuffix(filepath.Base(lower), filepath.Ext(lower))

	score := 0
	for _, kw := range keywords {
		switch {
		case base == kw:
			score += 3
		case strings.Contains(base, kw):
			score += 2
		case strings.Contains(lower, kw):
			score++
		}
	}
	return score
}

// maxFileContextBytes caps a single file's contribution to the prompt so one
// oversized file cannot crowd out the rest of the context.
const maxFileContextBytes = 48 * 1024

func (e *llmEngine) ReadContext(repoPath string, files []string) (map[string]string, error) {
	contents := make(map[string]string, len(files))
	for _, rel := range files {
		data, err := os.ReadFile(filepath.Join(repoPath, rel))
		if err != nil {
			return nil, fmt.Errorf("failed to read selected file %s: %w", rel, err)
		}
		if len(data) > maxFileContextBytes {
			e.logger.Debug("truncating oversized context file", "file", rel, "size", len(data))
			data = data[:maxFileContextBytes]
		}
		contents[rel] = string(data)
	}
	return contents, nil
}

var appDefaultExcludeDirs = []string{".git", ".github", "vendor", "node_modules", "target", "build", "dist"}

var appDefaultExcludeExts = []string{
	"png", "jpg", "jpeg", "gif", "ico", "svg", "pdf",
	"zip", "gz", "tar", "exe", "dll", "so", "bin", "woff", "woff2",
}

// buildExcludeDirs creates the final list of directories to exclude,
// combining application defaults with repo-configured exclusions.
func buildExcludeDirs(repoConfig *core.RepoConfig) []string {
	allExcludeDirs := make(map[string]struct{})
	for _, dir := range appDefaultExcludeDirs {
		allExcludeDirs[dir] = struct{}{}
	}
	for _, dir := range repoConfig.ExcludeDirs {
		allExcludeDirs[dir] = struct{}{}
	}

	finalExcludeDirs := make([]string, 0, len(allExcludeDirs))
	for dir := range allExcludeDirs {
		finalExcludeDirs = append(finalExcludeDirs, dir)
	}
	return finalExcludeDirs
}

// buildExcludeExts normalizes extensions to their dot-free form so config
// entries may be written either way.
func buildExcludeExts(repoConfig *core.RepoConfig) []string {
	allExcludeExts := make(map[string]struct{})
	for _, ext := range appDefaultExcludeExts {
		allExcludeExts[strings.TrimPrefix(ext, ".")] = struct{}{}
	}
	for _, ext := range repoConfig.ExcludeExts {
		allExcludeExts[strings.TrimPrefix(ext, ".")] = struct{}{}
	}

	finalExcludeExts := make([]string, 0, len(allExcludeExts))
	for ext := range allExcludeExts {
		finalExcludeExts = append(finalExcludeExts, ext)
	}
	return finalExcludeExts
}

// listFiles recurses the directory and returns the list of relative paths.
func listFiles(root string, excludeDirs, excludeExts []string) ([]string, error) {
	var files []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			if isExcludedDir(info.Name(), excludeDirs) {
				return filepath.SkipDir
			}
			return nil
		}
		if isExcludedExt(info.Name(), excludeExts) {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, rel)
		return nil
	})
	return files, err
}

func isExcludedDir(name string, excludes []string) bool {
	// Hidden directories are always skipped.
	if strings.HasPrefix(name, ".") && name != "." {
		return true
	}
	for _, ex := range excludes {
		if name == ex {
			return true
		}
	}
	return false
}

func isExcludedExt(name string, excludes []string) bool {
	ext := strings.TrimPrefix(filepath.Ext(name), ".")
	for _, ex := range excludes {
		if ext == ex {
			return true
		}
	}
	return false
}
