package service_test

import (
	"context"
	"testing"

	"kegiatan-kampus/internal/db/dbtest"
	"kegiatan-kampus/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityRoundTrip(t *testing.T) {
	ctx := context.Background()
	activities := service.NewActivityService(dbtest.New(t))

	created, err := activities.Create(ctx, service.ActivityRequest{
		Name: "Seminar AI", Start: "2025-01-01", End: "2025-01-10",
	})
	require.NoError(t, err)
	assert.Equal(t, "", created.Description)

	list, err := activities.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Seminar AI", list[0].Name)

	_, err = activities.Update(ctx, created.ID, service.ActivityRequest{
		Name: "Seminar ML", Description: "Machine learning", Start: "2025-01-01", End: "2025-01-10",
	})
	require.NoError(t, err)

	got, err := activities.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Seminar ML", got.Name)
	assert.Equal(t, "Machine learning", got.Description)

	require.NoError(t, activities.Delete(ctx, created.ID))

	list, err = activities.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = activities.Get(ctx, created.ID)
	assert.ErrorIs(t, err, service.ErrActivityNotFound)
}

func TestActivityValidation(t *testing.T) {
	ctx := context.Background()
	activities := service.NewActivityService(dbtest.New(t))

	tests := []struct {
		name string
		req  service.ActivityRequest
	}{
		{"missing name", service.ActivityRequest{Start: "2025-01-01", End: "2025-01-02"}},
		{"missing start", service.ActivityRequest{Name: "x", End: "2025-01-02"}},
		{"missing end", service.ActivityRequest{Name: "x", Start: "2025-01-01"}},
		{"bad date", service.ActivityRequest{Name: "x", Start: "01/01/2025", End: "2025-01-02"}},
		{"end before start", service.ActivityRequest{Name: "x", Start: "2025-01-02", End: "2025-01-01"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := activities.Create(ctx, tt.req)
			assert.ErrorIs(t, err, service.ErrValidation)

			_, err = activities.Update(ctx, 1, tt.req)
			assert.ErrorIs(t, err, service.ErrValidation)
		})
	}

	list, err := activities.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestActivityMissingIDIsNoop(t *testing.T) {
	ctx := context.Background()
	activities := service.NewActivityService(dbtest.New(t))

	_, err := activities.Update(ctx, 42, service.ActivityRequest{Name: "x", Start: "2025-01-01", End: "2025-01-01"})
	assert.NoError(t, err)
	assert.NoError(t, activities.Delete(ctx, 42))
}
