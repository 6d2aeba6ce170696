package storage

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ResumeURLTTL is how long a resume link handed to recruiters stays valid.
const ResumeURLTTL = time.Hour

var (
	ErrInvalidKey   = errors.New("invalid object key")
	ErrExpired      = errors.New("signed url expired")
	ErrBadSignature = errors.New("signed url signature mismatch")
)

// LocalStore keeps objects on the local filesystem and hands out
// HMAC-signed download URLs served by the /files route.
type LocalStore struct {
	dir     string
	baseURL string
	key     []byte
	now     func() time.Time
}

func NewLocalStore(dir, baseURL, signingKey string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("create storage dir: %w", err)
	}
	return &LocalStore{
		dir:     dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		key:     []byte(signingKey),
		now:     time.Now,
	}, nil
}

// NewResumeKey builds a unique object key for an uploaded resume.
func NewResumeKey(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	return path.Join("resumes", time.Now().UTC().Format("2006/01"), uuid.NewString()+ext)
}

func (s *LocalStore) Put(_ context.Context, key string, data []byte) error {
	p, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return fmt.Errorf("create object dir: %w", err)
	}
	if err := os.WriteFile(p, data, 0o640); err != nil {
		return fmt.Errorf("write object: %w", err)
	}
	return nil
}

func (s *LocalStore) Delete(_ context.Context, key string) error {
	p, err := s.Path(key)
	if err != nil {
		return err
	}
	if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// Path resolves key to a file under the storage dir. Keys that would escape
// the dir are rejected.
func (s *LocalStore) Path(key string) (string, error) {
	clean := path.Clean("/" + key)
	if key == "" || clean == "/" || strings.Contains(key, "..") || strings.HasPrefix(key, "/") {
		return "", ErrInvalidKey
	}
	return filepath.Join(s.dir, filepath.FromSlash(strings.TrimPrefix(clean, "/"))), nil
}

// SignedURL returns a download link for key valid for ttl.
func (s *LocalStore) SignedURL(key string, ttl time.Duration) (string, error) {
	if _, err := s.Path(key); err != nil {
		return "", err
	}
	expires := s.now().Add(ttl).Unix()
	q := url.Values{}
	q.Set("expires", strconv.FormatInt(expires, 10))
	q.Set("signature", s.sign(key, expires))
	return fmt.Sprintf("%s/files/%s?%s", s.baseURL, key, q.Encode()), nil
}

// Verify checks a signature produced by SignedURL.
func (s *LocalStore) Verify(key, expires, signature string) error {
	exp, err := strconv.ParseInt(expires, 10, 64)
	if err != nil {
		return ErrBadSignature
	}
	if !hmac.Equal([]byte(s.sign(key, exp)), []byte(signature)) {
		return ErrBadSignature
	}
	if s.now().Unix() > exp {
		return ErrExpired
	}
	return nil
}

func (s *LocalStore) sign(key string, expires int64) string {
	mac := hmac.New(sha256.New, s.key)
	fmt.Fprintf(mac, "%s\n%d", key, expires)
	return hex.EncodeToString(mac.Sum(nil))
}
