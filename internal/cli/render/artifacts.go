package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/samber/lo"
	"github.com/trebuchet-org/smithy/internal/domain/config"
	"github.com/trebuchet-org/smithy/internal/domain/models"
	"github.com/trebuchet-org/smithy/internal/usecase"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

var (
	nameStyle     = color.New(color.FgWhite, color.Bold)
	pathStyle     = color.New(color.FgBlue)
	faintStyle    = color.New(color.Faint)
	notDeployable = color.New(color.FgYellow)
)

// artifactView is the machine readable shape of a listed artifact
type artifactView struct {
	Name       string `json:"name" yaml:"name"`
	Source     string `json:"source" yaml:"source"`
	Format     string `json:"format" yaml:"format"`
	Compiler   string `json:"compiler,omitempty" yaml:"compiler,omitempty"`
	Deployable bool   `json:"deployable" yaml:"deployable"`
}

// ArtifactsRenderer renders artifact listings
type ArtifactsRenderer struct {
	out    io.Writer
	format string
}

// NewArtifactsRenderer creates a new artifacts renderer
func NewArtifactsRenderer(out io.Writer, format string) *ArtifactsRenderer {
	return &ArtifactsRenderer{out: out, format: format}
}

// Render prints the artifacts as a table, JSON or YAML
func (r *ArtifactsRenderer) Render(result *usecase.ArtifactListResult) error {
	views := lo.Map(result.Artifacts, func(a *models.Artifact, _ int) artifactView {
		return artifactView{
			Name:       a.Name,
			Source:     a.SourcePath,
			Format:     string(a.Format),
			Compiler:   a.CompilerVersion,
			Deployable: a.Deployable(),
		}
	})

	switch r.format {
	case config.OutputJSON:
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(views)
	case config.OutputYAML:
		return yaml.NewEncoder(r.out).Encode(views)
	}

	if result.Total == 0 {
		fmt.Fprintln(r.out, "No artifacts found")
		return nil
	}

	title := cases.Title(language.English)

	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleLight)
	t.Style().Options.DrawBorder = false
	t.Style().Options.SeparateColumns = false
	t.Style().Options.SeparateRows = false
	t.AppendHeader(table.Row{"Artifact", "Source", "Format", "Compiler"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignLeft},
		{Number: 3, Align: text.AlignLeft},
		{Number: 4, Align: text.AlignLeft},
	})

	for _, a := range result.Artifacts {
		name := nameStyle.Sprint(a.Name)
		if !a.Deployable() {
			name += " " + notDeployable.Sprint("(not deployable)")
		}
		t.AppendRow(table.Row{name, pathStyle.Sprint(a.SourcePath), title.String(string(a.Format)), faintStyle.Sprint(a.CompilerVersion)})
	}
	t.Render()

	formats := lo.Keys(result.ByFormat)
	sort.Slice(formats, func(i, j int) bool { return formats[i] < formats[j] })
	summary := lo.Map(formats, func(f models.ArtifactFormat, _ int) string {
		return fmt.Sprintf("%d %s", result.ByFormat[f], title.String(string(f)))
	})

	fmt.Fprintln(r.out)
	fmt.Fprintln(r.out, faintStyle.Sprintf("%d artifacts (%s)", result.Total, strings.Join(summary, ", ")))
	return nil
}

var _ Renderer[*usecase.ArtifactListResult] = (*ArtifactsRenderer)(nil)
