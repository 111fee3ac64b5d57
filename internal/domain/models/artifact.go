package models

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ArtifactFormat identifies the toolchain that produced an artifact
type ArtifactFormat string

const (
	FoundryArtifact ArtifactFormat = "foundry"
	HardhatArtifact ArtifactFormat = "hardhat"
)

// Artifact is a compiled contract: creation bytecode plus interface metadata
type Artifact struct {
	Name            string          `json:"name"`
	SourcePath      string          `json:"sourcePath"`
	ArtifactPath    string          `json:"artifactPath,omitempty"`
	Format          ArtifactFormat  `json:"format"`
	CompilerVersion string          `json:"compilerVersion,omitempty"`
	ABI             json.RawMessage `json:"abi"`
	Bytecode        string          `json:"bytecode"`
	LinkReferences  map[string]any  `json:"linkReferences,omitempty"`
}

// FullyQualifiedName returns the "path:Name" form of the artifact
func (a *Artifact) FullyQualifiedName() string {
	return fmt.Sprintf("%s:%s", a.SourcePath, a.Name)
}

// Deployable reports whether the artifact carries creation bytecode
func (a *Artifact) Deployable() bool {
	code := strings.TrimPrefix(a.Bytecode, "0x")
	return code != ""
}

// NeedsLinking reports whether the bytecode has unresolved library placeholders
func (a *Artifact) NeedsLinking() bool {
	return len(a.LinkReferences) > 0 || strings.Contains(a.Bytecode, "__$")
}
