// pkg/registry/schema.go
package registry

// TypologyRegistry is the versioned set of occupancy typologies the tool
// scores against. Order is canonical: outputs and tie-breaks follow it.
type TypologyRegistry struct {
	Version     string     `json:"version"`
	LastUpdated string     `json:"lastUpdated"`
	Typologies  []Typology `json:"typologies"`
}

// Typology describes one occupancy program and where its weights live in the
// criteria sheet.
type Typology struct {
	ID           string `json:"id"`
	DisplayName  string `json:"displayName"`
	WeightColumn string `json:"weightColumn"`
}

// IDs returns the typology ids in registry order.
func (r *TypologyRegistry) IDs() []string {
	out := make([]string, len(r.Typologies))
	for i, t := range r.Typologies {
		out[i] = t.ID
	}
	return out
}

// Lookup finds a typology by id.
func (r *TypologyRegistry) Lookup(id string) (Typology, bool) {
	for _, t := range r.Typologies {
		if t.ID == id {
			return t, true
		}
	}
	return Typology{}, false
}

// registrySchema is the JSON schema every registry document must satisfy.
var registrySchema = map[string]interface{}{
	"type":     "object",
	"required": []interface{}{"version", "typologies"},
	"properties": map[string]interface{}{
		"version":     map[string]interface{}{"type": "string"},
		"lastUpdated": map[string]interface{}{"type": "string"},
		"typologies": map[string]interface{}{
			"type":     "array",
			"minItems": 1,
			"items": map[string]interface{}{
				"type":     "object",
				"required": []interface{}{"id", "displayName", "weightColumn"},
				"properties": map[string]interface{}{
					"id":           map[string]interface{}{"type": "string", "minLength": 1},
					"displayName":  map[string]interface{}{"type": "string", "minLength": 1},
					"weightColumn": map[string]interface{}{"type": "string", "minLength": 1},
				},
			},
		},
	},
}
