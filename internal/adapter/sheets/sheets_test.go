package sheets

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCallDeadline(t *testing.T) {
	ctx, cancel := callCtx(context.Background())
	defer cancel()

	deadline, ok := ctx.Deadline()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now().Add(callTimeout), deadline, time.Second)
}

func TestToStringRows(t *testing.T) {
	rows := toStringRows([][]any{
		{"ID", "Abejita"},
		{float64(1), "Maya", nil},
	})

	assert.Equal(t, [][]string{
		{"ID", "Abejita"},
		{"1", "Maya", ""},
	}, rows)
}

func TestColumnLetter(t *testing.T) {
	assert.Equal(t, "A", columnLetter(1))
	assert.Equal(t, "O", columnLetter(15))
}
