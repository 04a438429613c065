package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"TidyElephant/config"
	pkgerrors "TidyElephant/pkg/errors"
)

func TestParseCategoryIDs(t *testing.T) {
	s := &ProviderService{}

	a := uuid.New()
	b := uuid.New()

	ids, err := s.parseCategoryIDs([]string{a.String(), b.String()})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, b}, ids)

	_, err = s.parseCategoryIDs(nil)
	assert.Equal(t, pkgerrors.CategorySelectionEmpty, err)

	_, err = s.parseCategoryIDs([]string{"not-a-uuid"})
	assert.Equal(t, pkgerrors.CategoryInvalid, err)

	_, err = s.parseCategoryIDs([]string{a.String(), a.String()})
	assert.Equal(t, pkgerrors.CategoryDuplicate, err)

	tooMany := make([]string, config.Cfg.ProviderMaxCategories+1)
	for i := range tooMany {
		tooMany[i] = uuid.New().String()
	}
	_, err = s.parseCategoryIDs(tooMany)
	assert.Equal(t, pkgerrors.CategorySelectionBounds, err)
}
