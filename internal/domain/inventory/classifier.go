package inventory

import "strings"

// Category clasifica un producto para los reportes de alertas y reposición.
type Category string

const (
	CategoryFeed       Category = "feed"       // alimento / concentrado
	CategoryMedicine   Category = "medicine"   // medicamentos y vacunas
	CategorySanitation Category = "sanitation" // desinfección y aseo
	CategoryOther      Category = "other"
)

// Classifier deduce la categoría de un producto a partir de su nombre.
// Es una capacidad inyectable: el default infiere por subcadenas, pero puede
// reemplazarse por una implementación respaldada por el catálogo.
type Classifier interface {
	Classify(productName string) Category
}

// NameClassifier clasifica por coincidencia de subcadenas normalizadas.
type NameClassifier struct{}

var categoryKeywords = map[Category][]string{
	CategoryFeed:       {"concentrado", "alimento", "maiz", "harina", "forraje", "premezcla"},
	CategoryMedicine:   {"vacuna", "antibiotico", "vitamina", "desparasitante", "ivermectina", "hierro"},
	CategorySanitation: {"desinfectante", "cal", "yodo", "detergente", "amonio"},
}

// Classify devuelve la primera categoría cuyos términos aparecen en el nombre.
func (NameClassifier) Classify(productName string) Category {
	name := NormalizeName(productName)
	if name == "" {
		return CategoryOther
	}
	for _, cat := range []Category{CategoryFeed, CategoryMedicine, CategorySanitation} {
		for _, kw := range categoryKeywords[cat] {
			if strings.Contains(name, kw) {
				return cat
			}
		}
	}
	return CategoryOther
}
