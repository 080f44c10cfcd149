// pkg/registry/registry.go
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	chassiserrors "adaptive-chassis/internal/common/errors"
)

// DefaultRegistry returns the built-in four typologies of the adaptive
// chassis study. Weight columns match the published sheet headers.
func DefaultRegistry() *TypologyRegistry {
	return &TypologyRegistry{
		Version: "builtin",
		Typologies: []Typology{
			{ID: "Housing", DisplayName: "Housing", WeightColumn: "Housing Weight"},
			{ID: "Education", DisplayName: "Education", WeightColumn: "Education Weight"},
			{ID: "Lab", DisplayName: "Lab", WeightColumn: "Lab Weight"},
			{ID: "Data Center", DisplayName: "Data Center", WeightColumn: "Data Center Weight"},
		},
	}
}

// LoadRegistry reads and validates a registry document from path.
func LoadRegistry(path string) (*TypologyRegistry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	if err := validate(data); err != nil {
		return nil, err
	}

	var reg TypologyRegistry
	if err := json.Unmarshal(data, &reg); err != nil {
		return nil, chassiserrors.NewRegistryInvalidError(err.Error())
	}

	if err := checkDuplicates(&reg); err != nil {
		return nil, err
	}

	return &reg, nil
}

func validate(document []byte) error {
	schemaLoader := gojsonschema.NewGoLoader(registrySchema)
	documentLoader := gojsonschema.NewBytesLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return chassiserrors.NewRegistryInvalidError(err.Error())
	}

	if !result.Valid() {
		errs := make([]string, len(result.Errors()))
		for i, desc := range result.Errors() {
			errs[i] = desc.String()
		}
		return chassiserrors.NewRegistryInvalidError(strings.Join(errs, "; "))
	}

	return nil
}

func checkDuplicates(reg *TypologyRegistry) error {
	seen := make(map[string]bool, len(reg.Typologies))
	for _, t := range reg.Typologies {
		if seen[t.ID] {
			return chassiserrors.NewRegistryInvalidError(fmt.Sprintf("duplicate typology id: %s", t.ID))
		}
		seen[t.ID] = true
	}
	return nil
}
