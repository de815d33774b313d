package catalog_test

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PabloGalante/farum-calm/internal/catalog"
	"github.com/PabloGalante/farum-calm/internal/domain"
)

func TestDefaultCatalogLoads(t *testing.T) {
	c := catalog.Default()

	p, err := c.GetByID("breathing-478")
	require.NoError(t, err)
	assert.Equal(t, domain.KindBreathing, p.Kind)
	assert.Equal(t, 4, p.Cycles)
	require.Len(t, p.Steps, 3)
	assert.Equal(t, 76, p.TotalSeconds())

	body, err := c.GetByID("shake-it-off")
	require.NoError(t, err)
	assert.Equal(t, 60, body.TimerSeconds)
}

func TestGetByIDUnknown(t *testing.T) {
	_, err := catalog.Default().GetByID("nope")
	require.ErrorIs(t, err, domain.ErrPracticeNotFound)
}

func TestListByCategory(t *testing.T) {
	c := catalog.Default()

	quick := c.ListByCategory(domain.CategoryQuick)
	assert.Len(t, quick, 5)

	breathing := c.ListByCategory(domain.CategoryBreathing)
	ids := make([]string, 0, len(breathing))
	for _, p := range breathing {
		ids = append(ids, p.ID)
	}
	assert.Equal(t, []string{"breathing-478", "breathing-box"}, ids)

	sos := c.ListByCategory(domain.CategorySOS)
	require.Len(t, sos, 1)
	assert.Equal(t, "sos-breathing", sos[0].ID)

	assert.Empty(t, c.ListByCategory("unknown"))
	assert.Len(t, c.Categories(), 4)
}

func TestParseRejectsMalformedPractice(t *testing.T) {
	data := []byte(`
practices:
  - id: broken
    type: breathing
    cycles: 2
`)
	_, err := catalog.Parse(data)
	require.ErrorIs(t, err, domain.ErrInvalidPractice)

	var cfgErr *domain.ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, "broken", cfgErr.PracticeID)
}

func TestParseRejectsDuplicateIDs(t *testing.T) {
	data := []byte(`
practices:
  - id: twice
    type: body
    body_steps: [stand]
    timer_seconds: 10
  - id: twice
    type: body
    body_steps: [stand]
    timer_seconds: 10
`)
	_, err := catalog.Parse(data)
	require.ErrorIs(t, err, domain.ErrInvalidPractice)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := catalog.Parse([]byte("practices:\n  - id: x\n    colour: red\n"))
	require.Error(t, err)
}

func TestAnchorIsDeterministicWithSeed(t *testing.T) {
	c := catalog.Default()
	a := c.Anchor(rand.New(rand.NewPCG(1, 2)))
	b := c.Anchor(rand.New(rand.NewPCG(1, 2)))
	assert.NotEmpty(t, a)
	assert.Equal(t, a, b)
}
