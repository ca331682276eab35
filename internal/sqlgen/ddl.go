package sqlgen

import (
	"strings"

	"github.com/Rana718/jsonsql/internal/types"
)

// GenerateCreateTable renders a CREATE TABLE statement. Primary key columns are
// collected in mapping order into a single trailing PRIMARY KEY clause.
func GenerateCreateTable(m types.TableMapping) (string, error) {
	table, err := QualifiedName(m)
	if err != nil {
		return "", err
	}

	lines := make([]string, 0, len(m.Columns)+1)
	var primaryKeys []string

	for _, col := range m.Columns {
		name, err := EscapeIdentifier(col.Name)
		if err != nil {
			return "", err
		}

		line := "  " + name + " " + col.SQLType
		if !col.Nullable {
			line += " NOT NULL"
		}
		if col.AutoGenerated {
			line += " AUTO_INCREMENT"
		}
		if col.PrimaryKey {
			primaryKeys = append(primaryKeys, name)
		}
		lines = append(lines, line)
	}

	if len(primaryKeys) > 0 {
		lines = append(lines, "  PRIMARY KEY ("+strings.Join(primaryKeys, ", ")+")")
	}

	return "CREATE TABLE " + table + " (\n" + strings.Join(lines, ",\n") + "\n);", nil
}

func GenerateDropTable(m types.TableMapping, ifExists bool) (string, error) {
	table, err := QualifiedName(m)
	if err != nil {
		return "", err
	}
	if ifExists {
		return "DROP TABLE IF EXISTS " + table + ";", nil
	}
	return "DROP TABLE " + table + ";", nil
}
