package artifacts

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"github.com/trebuchet-org/smithy/internal/domain/models"
)

const hardhatFormat = "hh-sol-artifact-1"

// foundryBytecode represents bytecode information in a Foundry artifact
type foundryBytecode struct {
	Object         string         `json:"object"`
	LinkReferences map[string]any `json:"linkReferences"`
}

// foundryArtifact represents a Foundry compilation artifact
type foundryArtifact struct {
	ABI      json.RawMessage `json:"abi"`
	Bytecode foundryBytecode `json:"bytecode"`
	Metadata struct {
		Compiler struct {
			Version string `json:"version"`
		} `json:"compiler"`
		Settings struct {
			CompilationTarget map[string]string `json:"compilationTarget"`
		} `json:"settings"`
	} `json:"metadata"`
}

// hardhatArtifact represents a Hardhat compilation artifact
type hardhatArtifact struct {
	Format         string          `json:"_format"`
	ContractName   string          `json:"contractName"`
	SourceName     string          `json:"sourceName"`
	ABI            json.RawMessage `json:"abi"`
	Bytecode       string          `json:"bytecode"`
	LinkReferences map[string]any  `json:"linkReferences"`
}

// parseArtifact decodes a Foundry or Hardhat artifact. It returns nil for JSON
// files that are not artifacts.
func parseArtifact(path string, data []byte) *models.Artifact {
	var probe struct {
		Format   string          `json:"_format"`
		ABI      json.RawMessage `json:"abi"`
		Bytecode json.RawMessage `json:"bytecode"`
	}
	if err := json.Unmarshal(data, &probe); err != nil || len(probe.ABI) == 0 {
		return nil
	}

	if probe.Format == hardhatFormat {
		return parseHardhat(data)
	}
	if len(probe.Bytecode) > 0 && probe.Bytecode[0] == '{' {
		return parseFoundry(path, data)
	}
	return nil
}

func parseHardhat(data []byte) *models.Artifact {
	var raw hardhatArtifact
	if err := json.Unmarshal(data, &raw); err != nil || raw.ContractName == "" {
		return nil
	}
	return &models.Artifact{
		Name:           raw.ContractName,
		SourcePath:     raw.SourceName,
		Format:         models.HardhatArtifact,
		ABI:            raw.ABI,
		Bytecode:       raw.Bytecode,
		LinkReferences: nonEmpty(raw.LinkReferences),
	}
}

func parseFoundry(path string, data []byte) *models.Artifact {
	var raw foundryArtifact
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil
	}

	// Extract contract name and source from compilation target
	var contractName, sourceName string
	for source, contract := range raw.Metadata.Settings.CompilationTarget {
		sourceName = source
		contractName = contract
		break // There should only be one entry
	}

	// Artifacts built without metadata live at out/<File>.sol/<Name>.json
	if contractName == "" {
		contractName = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		sourceName = filepath.Base(filepath.Dir(path))
	}

	return &models.Artifact{
		Name:            contractName,
		SourcePath:      sourceName,
		Format:          models.FoundryArtifact,
		CompilerVersion: raw.Metadata.Compiler.Version,
		ABI:             raw.ABI,
		Bytecode:        raw.Bytecode.Object,
		LinkReferences:  nonEmpty(raw.Bytecode.LinkReferences),
	}
}

func nonEmpty(m map[string]any) map[string]any {
	if len(m) == 0 {
		return nil
	}
	return m
}
