package service

import (
	"context"
	"path/filepath"
	"time"

	"github.com/ludo-technologies/reach/domain"
	"github.com/ludo-technologies/reach/internal/affected"
	"github.com/ludo-technologies/reach/internal/resolver"
	"github.com/ludo-technologies/reach/internal/version"
)

// ReachService wires domain.ReachRequest to the affected-set engine. It has
// no behavior beyond marshalling: building a resolver from ResolveOptions,
// invoking CollectAffected, and shaping the result into a ReachResponse.
type ReachService struct {
	progress domain.ProgressManager
}

// NewReachService creates a new ReachService. progress may be nil, in which
// case CollectAffected runs without any task reporting.
func NewReachService(progress domain.ProgressManager) *ReachService {
	return &ReachService{progress: progress}
}

// Analyze runs the affected-set traversal for req and returns the subset of
// req.TestFiles reachable from req.ChangedFiles through the import graph.
func (s *ReachService) Analyze(ctx context.Context, req domain.ReachRequest) (*domain.ReachResponse, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	cwd, err := filepath.Abs(".")
	if err != nil {
		return nil, domain.NewAnalysisError("failed to resolve working directory", err)
	}

	res := resolver.New(req.ResolveOptions)

	paths, diagnostics, err := affected.CollectAffected(cwd, req.TestFiles, req.ChangedFiles, res, s.progress)
	if err != nil {
		return nil, domain.NewAnalysisError("affected-set traversal failed", err)
	}

	return &domain.ReachResponse{
		Paths:       paths,
		Errors:      affected.FormatDiagnostics(cwd, diagnostics),
		GeneratedAt: time.Now().Format(time.RFC3339),
		Version:     version.GetVersion(),
	}, nil
}
