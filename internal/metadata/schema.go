package metadata

import (
	"encoding/json"
	"strings"

	"github.com/6529-Collections/nftactions/internal/nfterrors"
	"github.com/xeipuuv/gojsonschema"
)

const documentSchema = `{
	"type": "object",
	"required": ["name", "image"],
	"properties": {
		"name":  {"type": "string", "minLength": 1},
		"image": {"type": "string", "minLength": 1}
	}
}`

var schema *gojsonschema.Schema

func init() {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(documentSchema))
	if err != nil {
		panic("failed to compile metadata schema: " + err.Error())
	}
	schema = compiled
}

// Parse validates raw against the metadata schema and decodes it. Invalid
// JSON is a fetch failure; valid JSON without a name or image is incomplete.
func Parse(raw []byte, gateway string) (*Document, error) {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(raw))
	if err != nil {
		return nil, nfterrors.Wrap(nfterrors.KindMetadataFetchFailed, err, "metadata is not valid JSON")
	}
	if !result.Valid() {
		problems := make([]string, 0, len(result.Errors()))
		for _, e := range result.Errors() {
			problems = append(problems, e.String())
		}
		return nil, nfterrors.New(nfterrors.KindMetadataIncomplete, "%s", strings.Join(problems, "; "))
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, nfterrors.Wrap(nfterrors.KindMetadataFetchFailed, err, "failed to decode metadata")
	}
	doc.ImageURL = ResolveURI(doc.Image, gateway)
	return &doc, nil
}
