package rowstore

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beetracked/fleet-ops/internal/domain/types"
)

func TestIDMatches(t *testing.T) {
	tests := []struct {
		cell, id string
		want     bool
	}{
		{"3", "3", true},
		{"3.0", "3", true},
		{"3", "3.0", true},
		{" 3 ", "3", true},
		{"03", "3", true},
		{"3", "4", false},
		{"abc", "abc", true},
		{"abc", "abd", false},
		{"", "0", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IDMatches(tt.cell, tt.id), "cell=%q id=%q", tt.cell, tt.id)
	}
}

func TestSanitizeSheetTitle(t *testing.T) {
	assert.Equal(t, "Juan Perez", SanitizeSheetTitle("Juan Perez"))
	assert.Equal(t, "a b c", SanitizeSheetTitle("a:b[c]"))
	assert.Equal(t, "x y", SanitizeSheetTitle("  x   y  "))
	assert.Equal(t, "SinNombre", SanitizeSheetTitle(""))
	assert.Equal(t, "SinNombre", SanitizeSheetTitle(":/\\?*[]"))

	long := strings.Repeat("a", 150)
	assert.Len(t, SanitizeSheetTitle(long), 100)
}

func TestZipRecord(t *testing.T) {
	headers := []string{"ID", "Nombre", "Estado"}
	rec := ZipRecord(headers, []string{"1", "Patricia"})

	assert.Equal(t, "1", rec["ID"])
	assert.Equal(t, "Patricia", rec["Nombre"])
	assert.Equal(t, "", rec["Estado"])
}

func TestMemoryFindByID(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.Seed("BeeZero", [][]string{
		{"ID", "Abejita", "Estado"},
		{"1", "Patricia", "CERRADO"},
		{"2", "Carla", "INICIADO"},
	})

	rec, err := m.FindByID(ctx, "BeeZero", "2")
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "Carla", rec["Abejita"])
	assert.Equal(t, "INICIADO", rec["Estado"])

	rec, err = m.FindByID(ctx, "BeeZero", "99")
	require.NoError(t, err)
	assert.Nil(t, rec)
}

func TestMemoryUpdateByID(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.Seed("BeeZero", [][]string{
		{"ID", "Abejita", "Estado"},
		{"1", "Patricia", "INICIADO"},
	})

	err := m.UpdateByID(ctx, "BeeZero", "1", []string{"1", "Patricia", "CERRADO"})
	require.NoError(t, err)

	rec, err := m.FindByID(ctx, "BeeZero", "1")
	require.NoError(t, err)
	assert.Equal(t, "CERRADO", rec["Estado"])

	err = m.UpdateByID(ctx, "BeeZero", "99", []string{"99"})
	assert.ErrorIs(t, err, types.ErrRowNotFound)
}

func TestMemoryEnsureSheet(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	headers := []string{"DeliveryId", "Biker"}

	title, err := m.EnsureSheet(ctx, "ss1", "Juan/Perez", headers)
	require.NoError(t, err)
	assert.Equal(t, "Juan Perez", title)

	count, err := m.RowCount(ctx, "ss1", title)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	// creating again is a no-op
	title2, err := m.EnsureSheet(ctx, "ss1", "Juan/Perez", headers)
	require.NoError(t, err)
	assert.Equal(t, title, title2)

	require.NoError(t, m.AppendTo(ctx, "ss1", title, []string{"0", "Juan Perez"}))

	rows, err := m.DataRows(ctx, "ss1", title)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "0", rows[0][0])

	titles, err := m.SheetTitles(ctx, "ss1")
	require.NoError(t, err)
	assert.Equal(t, []string{"Juan Perez"}, titles)
}
