package responses

import (
	"github.com/janhq/imagine-api/internal/domain/imagine"
)

// GenerationResponse is the body returned by every generation endpoint.
type GenerationResponse struct {
	ID    string `json:"id" example:"1180000000000000002"`
	Flags int    `json:"flags" example:"0"`
	Hash  string `json:"hash" example:"0f1e2d3c-aaaa-bbbb-cccc-1234567890ab"`
	URI   string `json:"uri" example:"https://cdn.discordapp.com/attachments/1/2/fox.png"`
}

// BuildGenerationResponse creates the response from a domain result.
func BuildGenerationResponse(result imagine.GenerationResult) GenerationResponse {
	return GenerationResponse{
		ID:    result.ID,
		Flags: result.Flags,
		Hash:  result.Hash,
		URI:   result.URI,
	}
}
