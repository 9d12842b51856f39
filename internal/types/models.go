package types

import (
	"fmt"
	"strings"
)

// DefaultModelAlias is used when the caller specifies no model at all.
const DefaultModelAlias = "flash"

// modelAliases maps shorthand aliases to fully qualified model identifiers.
// Several shorthands may point at the same model.
var modelAliases = map[string]string{
	// gemini-2.5-flash
	"flash":     "gemini-2.5-flash",
	"2.5-flash": "gemini-2.5-flash",
	// gemini-2.5-flash-lite
	"flash-lite": "gemini-2.5-flash-lite",
	"lite":       "gemini-2.5-flash-lite",
	// gemini-2.5-pro
	"pro":     "gemini-2.5-pro",
	"2.5-pro": "gemini-2.5-pro",
}

// SupportedModelAliases returns the primary shorthand for each distinct model,
// in a stable order suitable for error messages and help text.
func SupportedModelAliases() []string {
	return []string{"flash", "flash-lite", "pro"}
}

// InvalidModelError indicates the caller asked for an unknown model shorthand
// without supplying an explicit model string.
type InvalidModelError struct {
	Alias     string
	Supported []string
}

func (e *InvalidModelError) Error() string {
	return fmt.Sprintf("unsupported model %q; choose one of: %s (or pass an exact model string)",
		e.Alias, strings.Join(e.Supported, ", "))
}

// ResolveModelChoice returns a fully qualified model identifier from either a
// shorthand alias or an explicit model string. The explicit string is an
// escape hatch and is accepted unchecked. Supplying both is an error; an
// unknown alias is rejected before any network call.
func ResolveModelChoice(alias, modelString string) (string, error) {
	if alias != "" && modelString != "" {
		return "", fmt.Errorf("specify either a model alias or a model string, not both")
	}

	if modelString != "" {
		cleaned := strings.TrimSpace(modelString)
		if cleaned == "" {
			return "", fmt.Errorf("model string cannot be empty")
		}
		return cleaned, nil
	}

	if alias == "" {
		alias = DefaultModelAlias
	}
	alias = strings.ToLower(strings.TrimSpace(alias))
	if model, ok := modelAliases[alias]; ok {
		return model, nil
	}

	return "", &InvalidModelError{Alias: alias, Supported: SupportedModelAliases()}
}
