package artifacts

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"
	"github.com/trebuchet-org/smithy/internal/domain"
	"github.com/trebuchet-org/smithy/internal/domain/config"
	"github.com/trebuchet-org/smithy/internal/domain/models"
	"github.com/trebuchet-org/smithy/internal/usecase"
)

// maxSuggestions bounds the names offered when an artifact is missing
const maxSuggestions = 3

// Repository discovers and indexes compiled artifacts
type Repository struct {
	projectRoot  string
	artifactDirs []string
	build        bool
	builder      usecase.ArtifactBuilder
	selector     usecase.ArtifactSelector
	log          *slog.Logger

	mu      sync.RWMutex
	byKey   map[string]*models.Artifact   // key: "path:Name"
	byName  map[string][]*models.Artifact // key: contract name
	indexed bool
}

// NewRepository creates a new artifact repository
func NewRepository(
	cfg *config.RuntimeConfig,
	builder usecase.ArtifactBuilder,
	selector usecase.ArtifactSelector,
	log *slog.Logger,
) *Repository {
	return &Repository{
		projectRoot:  cfg.ProjectRoot,
		artifactDirs: cfg.ArtifactDirs,
		build:        cfg.Build,
		builder:      builder,
		selector:     selector,
		log:          log.With("component", "ArtifactRepository"),
		byKey:        make(map[string]*models.Artifact),
		byName:       make(map[string][]*models.Artifact),
	}
}

// Index builds the project when configured to and discovers all artifacts
func (r *Repository) Index(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexed {
		return nil
	}

	if r.build && r.builder != nil {
		if err := r.builder.Build(ctx); err != nil {
			return fmt.Errorf("failed to build contracts: %w", err)
		}
	}

	// Reset indexes
	r.byKey = make(map[string]*models.Artifact)
	r.byName = make(map[string][]*models.Artifact)

	for _, dir := range r.artifactDirs {
		root := dir
		if !filepath.IsAbs(root) {
			root = filepath.Join(r.projectRoot, dir)
		}
		if _, err := os.Stat(root); os.IsNotExist(err) {
			r.log.Debug("artifact directory missing", "dir", root)
			continue
		}

		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if d.Name() == "build-info" || d.Name() == "cache" {
					return filepath.SkipDir
				}
				return nil
			}
			if filepath.Ext(path) != ".json" || strings.HasSuffix(path, ".dbg.json") {
				return nil
			}
			return r.processArtifact(path)
		})
		if err != nil {
			return fmt.Errorf("failed to index %s: %w", dir, err)
		}
	}

	r.indexed = true
	r.log.Debug("indexed artifacts", "count", len(r.byKey))
	return nil
}

// processArtifact processes a single artifact file
func (r *Repository) processArtifact(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	artifact := parseArtifact(path, data)
	if artifact == nil {
		// Not an artifact
		return nil
	}

	if rel, err := filepath.Rel(r.projectRoot, path); err == nil {
		artifact.ArtifactPath = rel
	} else {
		artifact.ArtifactPath = path
	}

	key := artifact.FullyQualifiedName()
	if _, exists := r.byKey[key]; exists {
		// Same contract emitted into several artifact dirs; first one wins
		return nil
	}
	r.byKey[key] = artifact
	r.byName[artifact.Name] = append(r.byName[artifact.Name], artifact)
	return nil
}

// GetArtifact retrieves an artifact by name or path:Name
func (r *Repository) GetArtifact(ctx context.Context, name string) (*models.Artifact, error) {
	if err := r.Index(ctx); err != nil {
		return nil, err
	}

	r.mu.RLock()
	var candidates []*models.Artifact
	if strings.Contains(name, ":") {
		if artifact, ok := r.byKey[name]; ok {
			candidates = []*models.Artifact{artifact}
		}
	} else {
		candidates = append(candidates, r.byName[name]...)
	}
	names := lo.Keys(r.byName)
	r.mu.RUnlock()

	switch len(candidates) {
	case 0:
		return nil, &domain.ArtifactNotFoundError{Name: name, Suggestions: suggest(name, names)}
	case 1:
		return candidates[0], nil
	}

	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].SourcePath < candidates[j].SourcePath
	})

	if r.selector != nil {
		selected, err := r.selector.SelectArtifact(ctx, candidates, fmt.Sprintf("Multiple artifacts named %s, select one", name))
		if err == nil {
			return selected, nil
		}
		r.log.Debug("artifact selection unavailable", "error", err)
	}

	return nil, &domain.AmbiguousArtifactError{
		Name: name,
		Candidates: lo.Map(candidates, func(a *models.Artifact, _ int) string {
			return a.FullyQualifiedName()
		}),
	}
}

// ListArtifacts returns all indexed artifacts
func (r *Repository) ListArtifacts(ctx context.Context) ([]*models.Artifact, error) {
	if err := r.Index(ctx); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()

	return lo.Values(r.byKey), nil
}

// suggest returns the closest known names to a missing one
func suggest(name string, known []string) []string {
	sort.Strings(known)
	matches := fuzzy.Find(strings.ToLower(name), lo.Map(known, func(k string, _ int) string {
		return strings.ToLower(k)
	}))
	suggestions := make([]string, 0, maxSuggestions)
	for _, m := range matches {
		if len(suggestions) == maxSuggestions {
			break
		}
		suggestions = append(suggestions, known[m.Index])
	}
	return suggestions
}

// Ensure the adapter implements the interface
var _ usecase.ArtifactRepository = (*Repository)(nil)
