package repository

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEscapeLikeTerm(t *testing.T) {
	t.Parallel()

	t.Run("plain terms pass through", func(t *testing.T) {
		require.Equal(t, "alice", escapeLikeTerm("alice"))
	})

	t.Run("wildcards match literally", func(t *testing.T) {
		require.Equal(t, `\%`, escapeLikeTerm("%"))
		require.Equal(t, `a\_b`, escapeLikeTerm("a_b"))
		require.Equal(t, `100\%\_done`, escapeLikeTerm("100%_done"))
	})

	t.Run("escape character itself is escaped", func(t *testing.T) {
		require.Equal(t, `a\\b`, escapeLikeTerm(`a\b`))
		require.Equal(t, `\\\%`, escapeLikeTerm(`\%`))
	})
}
