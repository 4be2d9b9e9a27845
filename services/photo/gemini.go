// Package photosvc is the Photo Studio's image-editing collaborator.
package photosvc

import (
	"context"
	"encoding/base64"

	"github.com/pkg/errors"
	"google.golang.org/genai"

	"github.com/crpaedu/backstage/core"
)

const editModel = "gemini-2.5-flash-image"

type (
	// Editor rewrites an image according to a free-text instruction.
	// An empty result with a nil error means the model returned no image;
	// callers keep the original photo in that case.
	Editor interface {
		EditImage(ctx context.Context, imageB64, mimeType, instruction string) (string, error)
	}

	geminiEditor struct {
		client *genai.Client
	}
)

var _ Editor = (*geminiEditor)(nil)

// NewGeminiEditor dials the Gemini API. Callers should skip construction
// entirely when no API key is configured; the rest of the portal works
// without the Photo Studio.
func NewGeminiEditor(ctx context.Context, conf *core.Config) (Editor, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  conf.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, errors.Wrap(err, "dialing gemini")
	}
	return &geminiEditor{client: client}, nil
}

func (e *geminiEditor) EditImage(ctx context.Context, imageB64, mimeType, instruction string) (string, error) {
	img, err := base64.StdEncoding.DecodeString(imageB64)
	if err != nil {
		return "", core.NewValidationError(errors.New("image is not valid base64"))
	}

	contents := []*genai.Content{{
		Parts: []*genai.Part{
			{InlineData: &genai.Blob{Data: img, MIMEType: mimeType}},
			{Text: instruction},
		},
	}}

	resp, err := e.client.Models.GenerateContent(ctx, editModel, contents, nil)
	if err != nil {
		return "", errors.Wrap(err, "generating content")
	}

	// find the image part, if any
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return base64.StdEncoding.EncodeToString(part.InlineData.Data), nil
			}
		}
	}
	return "", nil
}
