package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/petmatch/internal/core/domain"
)

// uriScheme is the custom URI scheme for petmatch resources.
const uriScheme = "petmatch://"

// registerResources registers all resource handlers with the MCP server.
func (s *Server) registerResources() {
	s.server.AddResource(&mcp.Resource{
		URI:         uriScheme + "questions",
		Name:        "questions",
		Description: "The adopter questionnaire with the accepted answer values",
		MIMEType:    "application/json",
	}, s.handleQuestionsResource)

	s.server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: uriScheme + "animals/{id}",
		Name:        "animal",
		Description: "Full catalog record of one adoptable animal",
		MIMEType:    "application/json",
	}, s.handleAnimalResource)
}

// handleQuestionsResource returns the questionnaire.
func (s *Server) handleQuestionsResource(
	_ context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	data, err := json.MarshalIndent(domain.Questions(), "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling questions: %w", err)
	}
	return jsonResult(req.Params.URI, data), nil
}

// handleAnimalResource returns one animal.
func (s *Server) handleAnimalResource(
	ctx context.Context,
	req *mcp.ReadResourceRequest,
) (*mcp.ReadResourceResult, error) {
	id, ok := extractAnimalID(req.Params.URI)
	if !ok {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}

	animal, err := s.ports.Match.LookupAnimal(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, mcp.ResourceNotFoundError(req.Params.URI)
	}
	if err != nil {
		return nil, fmt.Errorf("looking up animal: %w", err)
	}

	data, err := json.MarshalIndent(animal, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshalling animal: %w", err)
	}
	return jsonResult(req.Params.URI, data), nil
}

func jsonResult(uri string, data []byte) *mcp.ReadResourceResult {
	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		}},
	}
}

// animalURI returns the resource URI of an animal.
func animalURI(id int64) string {
	return uriScheme + "animals/" + strconv.FormatInt(id, 10)
}

// extractAnimalID extracts the ID from a URI like petmatch://animals/{id}.
func extractAnimalID(uri string) (int64, bool) {
	const prefix = uriScheme + "animals/"

	if !strings.HasPrefix(uri, prefix) {
		return 0, false
	}
	id, err := strconv.ParseInt(strings.TrimPrefix(uri, prefix), 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}
