package store

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMatch(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		query       string
		description string
		want        bool
	}{
		{"empty query matches", "", "Buy milk", true},
		{"substring", "milk", "Buy milk", true},
		{"case insensitive", "MILK", "buy milk", true},
		{"near miss on a word", "mlk", "Buy milk", true},
		{"unrelated", "plumber", "Buy milk", false},
		{"short typo", "bya", "Buy milk", false},
		{"accented close match", "resume", "Update résumé", true},
		{"accented distance counted in runes", "resime", "Update résumé", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, Match(tt.query, tt.description))
		})
	}
}

func TestFilterKeepsOrder(t *testing.T) {
	t.Parallel()

	tasks := []Task{
		{ID: "1", Description: "Buy milk"},
		{ID: "2", Description: "Call plumber"},
		{ID: "3", Description: "Buy bread"},
	}

	got := Filter(tasks, "buy")
	require.Len(t, got, 2)
	require.Equal(t, "1", got[0].ID)
	require.Equal(t, "3", got[1].ID)

	all := Filter(tasks, "")
	require.Equal(t, tasks, all)
}
