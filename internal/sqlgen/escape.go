package sqlgen

import (
	"fmt"
	"strings"

	"github.com/Rana718/jsonsql/internal/types"
)

var quoteStripper = strings.NewReplacer(`"`, "", "`", "", "[", "", "]", "")

// EscapeIdentifier strips any existing quoting from name and wraps it in double
// quotes. Escaping an already escaped identifier yields the same output.
func EscapeIdentifier(name string) (string, error) {
	cleaned := strings.TrimSpace(quoteStripper.Replace(strings.TrimSpace(name)))
	if cleaned == "" {
		return "", fmt.Errorf("%w: identifier %q is blank", types.ErrInvalidIdentifier, name)
	}
	return `"` + cleaned + `"`, nil
}

// QualifiedName returns "schema"."table", or just "table" when the mapping has
// no schema.
func QualifiedName(m types.TableMapping) (string, error) {
	table, err := EscapeIdentifier(m.Name)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(m.Schema) == "" {
		return table, nil
	}
	schema, err := EscapeIdentifier(m.Schema)
	if err != nil {
		return "", err
	}
	return schema + "." + table, nil
}
