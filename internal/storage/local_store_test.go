package storage

import (
	"context"
	"net/url"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *LocalStore {
	t.Helper()
	s, err := NewLocalStore(t.TempDir(), "http://files.test/", "secret")
	require.NoError(t, err)
	s.now = func() time.Time { return time.Unix(1_700_000_000, 0) }
	return s
}

func TestLocalStore_PutAndPath(t *testing.T) {
	s := newTestStore(t)
	key := NewResumeKey("CV.PDF")
	assert.True(t, strings.HasPrefix(key, "resumes/"))
	assert.True(t, strings.HasSuffix(key, ".pdf"))

	require.NoError(t, s.Put(context.Background(), key, []byte("resume")))
	p, err := s.Path(key)
	require.NoError(t, err)
	data, err := os.ReadFile(p)
	require.NoError(t, err)
	assert.Equal(t, "resume", string(data))

	require.NoError(t, s.Delete(context.Background(), key))
	require.NoError(t, s.Delete(context.Background(), key), "deleting twice is fine")
}

func TestLocalStore_RejectsEscapingKeys(t *testing.T) {
	s := newTestStore(t)
	for _, key := range []string{"", "/etc/passwd", "../secret", "resumes/../../x"} {
		_, err := s.Path(key)
		assert.ErrorIs(t, err, ErrInvalidKey, key)
	}
}

func TestLocalStore_SignedURLRoundTrip(t *testing.T) {
	s := newTestStore(t)
	raw, err := s.SignedURL("resumes/a.pdf", ResumeURLTTL)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "files.test", u.Host)
	assert.Equal(t, "/files/resumes/a.pdf", u.Path)
	assert.Equal(t, "1700003600", u.Query().Get("expires"))

	sig := u.Query().Get("signature")
	assert.NoError(t, s.Verify("resumes/a.pdf", "1700003600", sig))
	assert.ErrorIs(t, s.Verify("resumes/b.pdf", "1700003600", sig), ErrBadSignature)
	assert.ErrorIs(t, s.Verify("resumes/a.pdf", "1700009999", sig), ErrBadSignature)
	assert.ErrorIs(t, s.Verify("resumes/a.pdf", "soon", sig), ErrBadSignature)

	s.now = func() time.Time { return time.Unix(1_700_003_601, 0) }
	assert.ErrorIs(t, s.Verify("resumes/a.pdf", "1700003600", sig), ErrExpired)
}
