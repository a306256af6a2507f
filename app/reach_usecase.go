package app

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/ludo-technologies/reach/domain"
	"github.com/ludo-technologies/reach/service"
)

// ReachUseCase composes file collection with the affected-set engine: it
// expands test/changed globs into concrete file lists before handing the
// request to ReachService.
type ReachUseCase struct {
	service    *service.ReachService
	fileHelper *FileHelper
}

// NewReachUseCase creates a new ReachUseCase.
func NewReachUseCase(svc *service.ReachService) *ReachUseCase {
	return &ReachUseCase{
		service:    svc,
		fileHelper: NewFileHelper(),
	}
}

// Execute resolves req.TestFiles and req.ChangedFiles against the
// filesystem (expanding directories into their contained JS/TS files) and
// runs the affected-set analysis.
func (uc *ReachUseCase) Execute(ctx context.Context, req domain.ReachRequest) (*domain.ReachResponse, error) {
	if len(req.TestFiles) == 0 {
		return nil, domain.NewInvalidInputError("no test files or patterns specified", nil)
	}
	if len(req.ChangedFiles) == 0 {
		return nil, domain.NewInvalidInputError("no changed files specified", nil)
	}

	testFiles, err := uc.expand(req.TestFiles)
	if err != nil {
		return nil, domain.NewFileNotFoundError("failed to resolve test files", err)
	}
	if len(testFiles) == 0 {
		return nil, domain.NewInvalidInputError("no JavaScript/TypeScript test files found", nil)
	}

	changedFiles, err := uc.expand(req.ChangedFiles)
	if err != nil {
		return nil, domain.NewFileNotFoundError("failed to resolve changed files", err)
	}
	if len(changedFiles) == 0 {
		return nil, domain.NewInvalidInputError("no JavaScript/TypeScript changed files found", nil)
	}

	req.TestFiles = testFiles
	req.ChangedFiles = changedFiles

	response, err := uc.service.Analyze(ctx, req)
	if err != nil {
		return nil, domain.NewAnalysisError("affected-set analysis failed", err)
	}

	return response, nil
}

// expand turns a list of file paths, directories, and glob patterns into a
// flat, deduplicated list of existing JS/TS files.
func (uc *ReachUseCase) expand(patterns []string) ([]string, error) {
	seen := make(map[string]bool)
	var out []string

	addAll := func(paths []string) {
		for _, p := range paths {
			if !seen[p] {
				seen[p] = true
				out = append(out, p)
			}
		}
	}

	var plain []string
	for _, pattern := range patterns {
		if !strings.ContainsAny(pattern, "*?[") {
			plain = append(plain, pattern)
			continue
		}
		matches, err := filepath.Glob(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
		}
		for _, m := range matches {
			if uc.fileHelper.IsValidJSFile(m) {
				addAll([]string{m})
			}
		}
	}

	if len(plain) > 0 {
		resolved, err := ResolveFilePaths(uc.fileHelper, plain, true, nil, nil)
		if err != nil {
			return nil, err
		}
		addAll(resolved)
	}

	return out, nil
}
