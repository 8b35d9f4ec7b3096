// internal/core/services/fields.go
package services

// Header vocabularies accepted by the CSV importer, in lookup order.
var (
	nameColumns        = []string{"name", "nome"}
	descriptionColumns = []string{"description", "descricao"}
	priceColumns       = []string{"price", "preco"}
	quantityColumns    = []string{"quantity", "quantidade"}
)

// resolveField returns the first non-empty cell among candidates, or def.
// Cells are returned as read; a whitespace-only cell counts as present.
func resolveField(row map[string]string, candidates []string, def string) string {
	for _, c := range candidates {
		if v := row[c]; v != "" {
			return v
		}
	}
	return def
}
