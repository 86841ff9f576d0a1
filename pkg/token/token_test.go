package token

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticToken(t *testing.T) {
	tok, err := NewStaticToken("  abc123\n")
	require.NoError(t, err)
	assert.Equal(t, "abc123", tok.Token())

	_, err = NewStaticToken(" ")
	assert.ErrorIs(t, err, ErrEmptyToken)
}

func TestEnvToken(t *testing.T) {
	t.Setenv("CH_TEST_KEY", "from-env")

	tok, err := NewEnvToken("CH_TEST_KEY")
	require.NoError(t, err)
	assert.Equal(t, "from-env", tok.Token())

	_, err = NewEnvToken("CH_TEST_KEY_UNSET")
	assert.ErrorIs(t, err, ErrEmptyToken)
}

func TestFileToken_Reload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(path, []byte("first\n"), 0o600))

	tok, err := NewFileToken(path)
	require.NoError(t, err)
	defer tok.Close()

	assert.Equal(t, "first", tok.Token())

	require.NoError(t, os.WriteFile(path, []byte("second\n"), 0o600))

	assert.Eventually(t, func() bool {
		return tok.Token() == "second"
	}, 2*time.Second, 10*time.Millisecond)
}

func TestFileToken_Missing(t *testing.T) {
	_, err := NewFileToken(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}

func TestFileToken_Empty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key")
	require.NoError(t, os.WriteFile(path, []byte("\n"), 0o600))

	_, err := NewFileToken(path)
	assert.ErrorIs(t, err, ErrEmptyToken)
}
