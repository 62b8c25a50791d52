package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agrostock/agrostock-api/internal/domain/inventory"
)

func TestNormalizeName_QuitaTildesYMayusculas(t *testing.T) {
	assert.Equal(t, "concentrado lechon", inventory.NormalizeName("Concentrado Lechón"))
	assert.Equal(t, "maiz amarillo", inventory.NormalizeName("  MAÍZ Amarillo "))
	assert.Equal(t, "", inventory.NormalizeName("   "))
}

func TestNameMatches_InsensibleAAcentos(t *testing.T) {
	assert.True(t, inventory.NameMatches("Concentrado Lechón", "concentrado lechon"))
	assert.True(t, inventory.NameMatches("Concentrado Lechón Fase 2", "lechón"),
		"subcadena del nombre también coincide")
	assert.True(t, inventory.NameMatches("Maíz", "maiz amarillo"),
		"la coincidencia por subcadena corre en ambos sentidos")
	assert.False(t, inventory.NameMatches("Concentrado Lechón", "vacuna"))
	assert.False(t, inventory.NameMatches("", "algo"))
	assert.False(t, inventory.NameMatches("algo", ""))
}

func TestNameClassifier_PorPalabrasClave(t *testing.T) {
	c := inventory.NameClassifier{}
	assert.Equal(t, inventory.CategoryFeed, c.Classify("Concentrado Lechón"))
	assert.Equal(t, inventory.CategoryFeed, c.Classify("MAÍZ molido"))
	assert.Equal(t, inventory.CategoryMedicine, c.Classify("Vacuna peste porcina"))
	assert.Equal(t, inventory.CategoryMedicine, c.Classify("Hierro inyectable"))
	assert.Equal(t, inventory.CategorySanitation, c.Classify("Desinfectante yodado"))
	assert.Equal(t, inventory.CategoryOther, c.Classify("Comedero plástico"))
	assert.Equal(t, inventory.CategoryOther, c.Classify(""))
}
