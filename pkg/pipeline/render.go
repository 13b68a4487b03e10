package pipeline

import (
	"bytes"
	"context"

	"github.com/matzehuels/relviz/pkg/config"
	"github.com/matzehuels/relviz/pkg/io"
	"github.com/matzehuels/relviz/pkg/model"
	"github.com/matzehuels/relviz/pkg/render"
)

// Render produces the graph in format.
func Render(ctx context.Context, g *model.Graph, format string) ([]byte, error) {
	if err := ValidateFormat(format); err != nil {
		return nil, err
	}
	switch format {
	case config.FormatJSON:
		var buf bytes.Buffer
		if err := io.WriteJSON(g, &buf); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case config.FormatSVG:
		return render.RenderSVG(ctx, render.ToDOT(g, render.Options{}))
	default:
		return []byte(render.ToDOT(g, render.Options{})), nil
	}
}
