package usecase

import (
	"context"
	"sort"
	"strings"

	"github.com/samber/lo"
	"github.com/trebuchet-org/smithy/internal/domain/models"
)

// ListArtifactsFilter narrows the listed artifacts
type ListArtifactsFilter struct {
	Query          string
	DeployableOnly bool
}

// ArtifactListResult contains the result of listing artifacts
type ArtifactListResult struct {
	Artifacts []*models.Artifact
	Total     int
	ByFormat  map[models.ArtifactFormat]int
}

// ListArtifacts is a use case for listing resolvable artifacts
type ListArtifacts struct {
	repo ArtifactRepository
}

// NewListArtifacts creates a new ListArtifacts use case
func NewListArtifacts(repo ArtifactRepository) *ListArtifacts {
	return &ListArtifacts{repo: repo}
}

// Run lists artifacts matching the filter, sorted by name then path
func (uc *ListArtifacts) Run(ctx context.Context, filter ListArtifactsFilter) (*ArtifactListResult, error) {
	artifacts, err := uc.repo.ListArtifacts(ctx)
	if err != nil {
		return nil, err
	}

	query := strings.ToLower(filter.Query)
	artifacts = lo.Filter(artifacts, func(a *models.Artifact, _ int) bool {
		if filter.DeployableOnly && !a.Deployable() {
			return false
		}
		return query == "" || strings.Contains(strings.ToLower(a.FullyQualifiedName()), query)
	})

	sort.Slice(artifacts, func(i, j int) bool {
		if artifacts[i].Name != artifacts[j].Name {
			return artifacts[i].Name < artifacts[j].Name
		}
		return artifacts[i].SourcePath < artifacts[j].SourcePath
	})

	return &ArtifactListResult{
		Artifacts: artifacts,
		Total:     len(artifacts),
		ByFormat: lo.CountValuesBy(artifacts, func(a *models.Artifact) models.ArtifactFormat {
			return a.Format
		}),
	}, nil
}
