package catalog

import (
	"encoding/json"
	"strings"

	"github.com/agentstation/genaicheck/pkg/constants"
	"github.com/agentstation/genaicheck/pkg/errors"
)

// Descriptor is a model as reported by a catalog. Catalog clients disagree
// on the name of the capability list, so both spellings are carried.
type Descriptor struct {
	Name        string `json:"name" yaml:"name"`
	DisplayName string `json:"displayName,omitempty" yaml:"display_name,omitempty"`

	// SupportedGenerationMethods is the REST and legacy client field.
	SupportedGenerationMethods []string `json:"supportedGenerationMethods,omitempty" yaml:"supported_generation_methods,omitempty"`
	// SupportedActions is the genai SDK field.
	SupportedActions []string `json:"supportedActions,omitempty" yaml:"supported_actions,omitempty"`
}

// Methods returns the capability list of the model. The generation methods
// field wins over the actions field; ok is false when neither is populated.
func (d Descriptor) Methods() (methods []string, ok bool) {
	switch {
	case len(d.SupportedGenerationMethods) > 0:
		return d.SupportedGenerationMethods, true
	case len(d.SupportedActions) > 0:
		return d.SupportedActions, true
	default:
		return nil, false
	}
}

// MethodsString renders the capability list for logging, or "?" when the
// model reports none.
func (d Descriptor) MethodsString() string {
	methods, ok := d.Methods()
	if !ok {
		return constants.UnknownMethods
	}
	return "[" + strings.Join(methods, " ") + "]"
}

// DecodeDescriptor decodes a model resource in either field spelling.
func DecodeDescriptor(data []byte) (Descriptor, error) {
	var d Descriptor
	if err := json.Unmarshal(data, &d); err != nil {
		return Descriptor{}, errors.WrapParse("json", "", err)
	}
	if d.Name == "" {
		return Descriptor{}, errors.NewValidationError("name", nil, "model descriptor has no name")
	}
	return d, nil
}
