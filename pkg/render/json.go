package render

import (
	"context"
	"encoding/json"
	"fmt"
)

// JSONRenderer emits the Page as JSON, for scripted clients and debugging.
type JSONRenderer struct{}

// Name reports the renderer identifier.
func (JSONRenderer) Name() string { return "json" }

// ContentType reports the media type of Render's output.
func (JSONRenderer) ContentType() string { return "application/json" }

// Render encodes page. Options are ignored.
func (JSONRenderer) Render(ctx context.Context, page Page, _ RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := json.Marshal(page)
	if err != nil {
		return nil, fmt.Errorf("render: encode page: %w", err)
	}
	return out, nil
}
