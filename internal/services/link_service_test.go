package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/korwin-dev/citelinks-be/internal/models"
	"github.com/korwin-dev/citelinks-be/internal/services"
)

func seedLinks(t *testing.T, links *services.LinkService) {
	t.Helper()

	count, err := links.Import([]models.Link{
		{DocIDFrom: 1, DocIDTo: 2, ToDocTitle: "On Citation Graphs", CitationsNumber: 3,
			ContextsList: `["as shown in"]`, PositionsList: `[[10, 20]]`},
		{DocIDFrom: 1, DocIDTo: 3, ToDocTitle: "Edge Cases", CitationsNumber: 1},
		{DocIDFrom: 4, DocIDTo: 2, ToDocTitle: "On Citation Graphs", CitationsNumber: 2},
	})
	require.NoError(t, err)
	require.Equal(t, 3, count)
}

func TestSearchBothConstrained(t *testing.T) {
	links := services.NewLinkService(newTestDB(t))
	seedLinks(t, links)

	found, err := links.Search(1, 2)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, int64(1), found[0].DocIDFrom)
	assert.Equal(t, int64(2), found[0].DocIDTo)
	assert.Equal(t, "On Citation Graphs", found[0].ToDocTitle)
	assert.Equal(t, 3, found[0].CitationsNumber)
	assert.Equal(t, `["as shown in"]`, found[0].ContextsList)
	assert.Equal(t, `[[10, 20]]`, found[0].PositionsList)
}

func TestSearchSingleFilter(t *testing.T) {
	links := services.NewLinkService(newTestDB(t))
	seedLinks(t, links)

	from, err := links.Search(1, services.UnconstrainedDoc)
	require.NoError(t, err)
	assert.Len(t, from, 2)

	to, err := links.Search(services.UnconstrainedDoc, 2)
	require.NoError(t, err)
	assert.Len(t, to, 2)
}

func TestSearchUnconstrainedIsError(t *testing.T) {
	links := services.NewLinkService(newTestDB(t))
	seedLinks(t, links)

	// Neither endpoint constrained means "nothing", never "everything".
	_, err := links.Search(services.UnconstrainedDoc, services.UnconstrainedDoc)
	assert.ErrorIs(t, err, services.ErrNoResults)
}

func TestSearchEmptyResultIsError(t *testing.T) {
	links := services.NewLinkService(newTestDB(t))
	seedLinks(t, links)

	_, err := links.Search(99, services.UnconstrainedDoc)
	assert.ErrorIs(t, err, services.ErrNoResults)
}

func TestImportAssignsIDs(t *testing.T) {
	links := services.NewLinkService(newTestDB(t))

	count, err := links.Import([]models.Link{{DocIDFrom: 7, DocIDTo: 8}})
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	found, err := links.Search(7, 8)
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.NotEmpty(t, found[0].ID)
}
