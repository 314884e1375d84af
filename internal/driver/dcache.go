package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"ember/internal/source"
	"ember/internal/token"
)

// bump when tokenPayload or the lexer output changes shape
const tokenCacheSchema uint16 = 1

// Digest keys the token cache.
type Digest [32]byte

func (d Digest) String() string { return hex.EncodeToString(d[:]) }

// TokenKey derives the cache key of content lexed with the given trivia
// setting. The schema version is part of the key.
func TokenKey(content []byte, keepWhitespace bool) Digest {
	h := sha256.New()
	_, _ = h.Write([]byte{byte(tokenCacheSchema >> 8), byte(tokenCacheSchema)})
	if keepWhitespace {
		_, _ = h.Write([]byte{1})
	} else {
		_, _ = h.Write([]byte{0})
	}
	_, _ = h.Write(content)
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

// TokenCache stores lexer output on disk as msgpack, keyed by TokenKey.
// Safe for concurrent use.
type TokenCache struct {
	mu  sync.RWMutex
	dir string
}

type tokenPayload struct {
	Schema uint16        `msgpack:"schema"`
	Tokens []cachedToken `msgpack:"tokens"`
}

// FileID is not stored; Get rebinds spans to the requesting file.
type cachedToken struct {
	Kind   uint8  `msgpack:"k"`
	Text   string `msgpack:"t,omitempty"`
	Start  uint32 `msgpack:"s"`
	End    uint32 `msgpack:"e"`
	Line   uint32 `msgpack:"l"`
	Column uint32 `msgpack:"c"`
}

// OpenTokenCache opens the cache under $XDG_CACHE_HOME/<app> (or
// ~/.cache/<app>).
func OpenTokenCache(app string) (*TokenCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		base = filepath.Join(home, ".cache")
	}
	return NewTokenCache(filepath.Join(base, app))
}

// NewTokenCache opens a cache rooted at dir, creating it if needed.
func NewTokenCache(dir string) (*TokenCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &TokenCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *TokenCache) Dir() string { return c.dir }

func (c *TokenCache) pathFor(key Digest) string {
	// подкаталог, чтобы было проще чистить руками
	return filepath.Join(c.dir, "tokens", key.String()+".mp")
}

// Put stores tokens under key. The file is written to a temp name and
// renamed, so readers never see a partial entry.
func (c *TokenCache) Put(key Digest, tokens []token.Token) (err error) {
	if c == nil {
		return nil
	}
	payload := tokenPayload{Schema: tokenCacheSchema, Tokens: make([]cachedToken, len(tokens))}
	for i, tok := range tokens {
		payload.Tokens[i] = cachedToken{
			Kind:   uint8(tok.Kind),
			Text:   tok.Text,
			Start:  tok.Span.Start,
			End:    tok.Span.End,
			Line:   tok.Pos.Line,
			Column: tok.Pos.Column,
		}
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = f.Close()
			_ = os.Remove(f.Name())
		}
	}()
	if err = msgpack.NewEncoder(f).Encode(&payload); err != nil {
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	return os.Rename(f.Name(), p)
}

// Get loads the tokens stored under key with their spans bound to file.
// A missing entry or one written by another schema is a miss.
func (c *TokenCache) Get(key Digest, file source.FileID) ([]token.Token, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close()

	var payload tokenPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, err
	}
	if payload.Schema != tokenCacheSchema {
		return nil, false, nil
	}
	tokens := make([]token.Token, len(payload.Tokens))
	for i, ct := range payload.Tokens {
		tokens[i] = token.Token{
			Kind: token.Kind(ct.Kind),
			Text: ct.Text,
			Span: source.Span{File: file, Start: ct.Start, End: ct.End},
			Pos:  token.Position{Offset: ct.Start, Line: ct.Line, Column: ct.Column},
		}
	}
	return tokens, true, nil
}

// DropAll removes every entry.
func (c *TokenCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	// переименовываем, чтобы параллельный Put не писал в удаляемый каталог
	old := c.dir + ".old-" + time.Now().Format("20060102150405.000000000")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}
