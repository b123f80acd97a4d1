package service

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"math"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	codecDomain "github.com/allisson/textcodec/internal/codec/domain"
	apperrors "github.com/allisson/textcodec/internal/errors"
)

const testSecret = "0123456789abcdef-test-secret"

func newTestCodec(t *testing.T, secret string, mode codecDomain.Mode) *SymmetricTextCodec {
	t.Helper()
	codec, err := NewSymmetricTextCodec([]byte(secret), mode)
	require.NoError(t, err)
	return codec
}

func TestNewSymmetricTextCodec(t *testing.T) {
	t.Run("Success_AllModes", func(t *testing.T) {
		for _, mode := range codecDomain.AllModes() {
			codec, err := NewSymmetricTextCodec([]byte(testSecret), mode)
			require.NoError(t, err, mode)
			assert.Equal(t, mode, codec.Mode())
		}
	})

	t.Run("Success_ShortSecretWithECB", func(t *testing.T) {
		codec, err := NewSymmetricTextCodec([]byte("test-secret-001"), codecDomain.AES256ECB)
		require.NoError(t, err)
		assert.NotNil(t, codec)
	})

	t.Run("Error_ShortSecretWithCBC", func(t *testing.T) {
		codec, err := NewSymmetricTextCodec([]byte("test-secret-001"), codecDomain.AES256CBC)
		assert.Nil(t, codec)
		assert.ErrorIs(t, err, codecDomain.ErrSecretTooShort)
		assert.ErrorIs(t, err, codecDomain.ErrConfiguration)
	})

	t.Run("Error_EmptySecret", func(t *testing.T) {
		codec, err := NewSymmetricTextCodec(nil, codecDomain.AES256ECB)
		assert.Nil(t, codec)
		assert.ErrorIs(t, err, codecDomain.ErrEmptySecret)
	})

	t.Run("Error_UnsupportedMode", func(t *testing.T) {
		codec, err := NewSymmetricTextCodec([]byte(testSecret), codecDomain.Mode("aes-128-ofb"))
		assert.Nil(t, codec)
		assert.ErrorIs(t, err, codecDomain.ErrUnsupportedMode)
		assert.ErrorIs(t, err, apperrors.ErrMisconfigured)
	})
}

func TestSymmetricTextCodec_KnownAnswers(t *testing.T) {
	t.Run("ECB hello world", func(t *testing.T) {
		codec := newTestCodec(t, "test-secret-001", codecDomain.AES256ECB)

		ciphertext, err := codec.Encrypt([]byte("hello world"))
		require.NoError(t, err)
		assert.Equal(t, "+0r4FUUB9eJ1gmyQogEMwg==", ciphertext)

		plaintext, err := codec.Decrypt(ciphertext)
		require.NoError(t, err)
		assert.Equal(t, "hello world", string(plaintext))
	})

	t.Run("ECB empty plaintext", func(t *testing.T) {
		codec := newTestCodec(t, "test-secret-001", codecDomain.AES256ECB)

		ciphertext, err := codec.Encrypt([]byte{})
		require.NoError(t, err)
		assert.Equal(t, "xfd3Gt6AEgM3gv2pzWpWew==", ciphertext)
	})

	t.Run("ECB json object", func(t *testing.T) {
		codec := newTestCodec(t, "test-secret-001", codecDomain.AES256ECB)

		ciphertext, err := codec.EncryptJSON(map[string]int{"a": 1})
		require.NoError(t, err)
		assert.Equal(t, "nd0RYweMauFl1IJBGC/3+w==", ciphertext)
	})

	t.Run("CBC hello world", func(t *testing.T) {
		codec := newTestCodec(t, "0123456789abcdef-secret", codecDomain.AES256CBC)

		ciphertext, err := codec.Encrypt([]byte("hello world"))
		require.NoError(t, err)
		assert.Equal(t, "TFwVOIuRjdhIN35FeLNxTw==", ciphertext)
	})
}

func TestSymmetricTextCodec_RoundTrip(t *testing.T) {
	inputs := [][]byte{
		[]byte(""),
		[]byte("a"),
		[]byte("exactly16bytes!!"),
		[]byte("hello world"),
		[]byte(strings.Repeat("long plaintext ", 100)),
		{0x00, 0xff, 0x10, 0x10, 0x10},
	}

	random := make([]byte, 1000)
	_, err := rand.Read(random)
	require.NoError(t, err)
	inputs = append(inputs, random)

	for _, mode := range codecDomain.AllModes() {
		t.Run(mode.String(), func(t *testing.T) {
			codec := newTestCodec(t, testSecret, mode)
			for _, in := range inputs {
				ciphertext, err := codec.Encrypt(in)
				require.NoError(t, err)

				out, err := codec.Decrypt(ciphertext)
				require.NoError(t, err)
				assert.Equal(t, len(in), len(out))
				assert.True(t, string(in) == string(out))
			}
		})
	}
}

func TestSymmetricTextCodec_Determinism(t *testing.T) {
	for _, mode := range codecDomain.AllModes() {
		t.Run(mode.String(), func(t *testing.T) {
			codec := newTestCodec(t, testSecret, mode)

			c1, err := codec.Encrypt([]byte("same input"))
			require.NoError(t, err)
			c2, err := codec.Encrypt([]byte("same input"))
			require.NoError(t, err)

			if mode.Deterministic() {
				assert.Equal(t, c1, c2)
			} else {
				assert.NotEqual(t, c1, c2)
			}
		})
	}

	t.Run("separate instances with same secret agree", func(t *testing.T) {
		a := newTestCodec(t, testSecret, codecDomain.AES256ECB)
		b := newTestCodec(t, testSecret, codecDomain.AES256ECB)

		ca, err := a.Encrypt([]byte("token"))
		require.NoError(t, err)
		cb, err := b.Encrypt([]byte("token"))
		require.NoError(t, err)
		assert.Equal(t, ca, cb)
	})

	t.Run("ECB repeats identical blocks", func(t *testing.T) {
		codec := newTestCodec(t, testSecret, codecDomain.AES256ECB)

		ciphertext, err := codec.Encrypt([]byte(strings.Repeat("A", 32)))
		require.NoError(t, err)

		raw, err := base64.StdEncoding.DecodeString(ciphertext)
		require.NoError(t, err)
		require.Len(t, raw, 48)
		assert.Equal(t, raw[0:16], raw[16:32])
	})
}

func TestSymmetricTextCodec_Decrypt_Errors(t *testing.T) {
	for _, mode := range codecDomain.AllModes() {
		t.Run(mode.String(), func(t *testing.T) {
			codec := newTestCodec(t, testSecret, mode)

			t.Run("not base64", func(t *testing.T) {
				var (
					out []byte
					err error
				)
				assert.NotPanics(t, func() { out, err = codec.Decrypt("not-base64!!") })
				assert.Nil(t, out)
				assert.ErrorIs(t, err, codecDomain.ErrEncodingFailure)
				assert.ErrorIs(t, err, apperrors.ErrInvalidInput)
			})

			t.Run("empty string", func(t *testing.T) {
				_, err := codec.Decrypt("")
				assert.ErrorIs(t, err, codecDomain.ErrCryptoBackendFailure)
			})

			t.Run("truncated ciphertext", func(t *testing.T) {
				ciphertext, err := codec.Encrypt([]byte("hello world, this is long enough"))
				require.NoError(t, err)
				raw, err := base64.StdEncoding.DecodeString(ciphertext)
				require.NoError(t, err)

				_, err = codec.Decrypt(base64.StdEncoding.EncodeToString(raw[:len(raw)-3]))
				assert.ErrorIs(t, err, codecDomain.ErrCryptoBackendFailure)
			})
		})
	}

	t.Run("non-canonical base64 padding bits rejected", func(t *testing.T) {
		codec := newTestCodec(t, "test-secret-001", codecDomain.AES256ECB)
		// "+0r4FUUB9eJ1gmyQogEMwg==" with the last data character's padding bits set.
		_, err := codec.Decrypt("+0r4FUUB9eJ1gmyQogEMwh==")
		assert.ErrorIs(t, err, codecDomain.ErrEncodingFailure)
	})
}

func TestSymmetricTextCodec_TamperDetection(t *testing.T) {
	for _, mode := range []codecDomain.Mode{codecDomain.AES256GCM, codecDomain.ChaCha20Poly1305} {
		t.Run(mode.String(), func(t *testing.T) {
			codec := newTestCodec(t, testSecret, mode)

			ciphertext, err := codec.Encrypt([]byte("hello world"))
			require.NoError(t, err)
			raw, err := base64.StdEncoding.DecodeString(ciphertext)
			require.NoError(t, err)

			raw[len(raw)/2] ^= 0x01
			_, err = codec.Decrypt(base64.StdEncoding.EncodeToString(raw))
			assert.ErrorIs(t, err, codecDomain.ErrCryptoBackendFailure)
		})
	}
}

func TestSymmetricTextCodec_CrossSecretIsolation(t *testing.T) {
	for _, mode := range codecDomain.AllModes() {
		t.Run(mode.String(), func(t *testing.T) {
			a := newTestCodec(t, "0123456789abcdef-secret-a", mode)
			b := newTestCodec(t, "fedcba9876543210-secret-b", mode)

			ciphertext, err := a.Encrypt([]byte("hello world"))
			require.NoError(t, err)

			out, err := b.Decrypt(ciphertext)
			if err == nil {
				assert.NotEqual(t, "hello world", string(out))
			} else {
				assert.ErrorIs(t, err, codecDomain.ErrCryptoBackendFailure)
			}

			if mode.Authenticated() {
				assert.Error(t, err)
			}
		})
	}
}

func TestSymmetricTextCodec_JSON(t *testing.T) {
	type session struct {
		UserID int      `json:"user_id"`
		Email  string   `json:"email"`
		Roles  []string `json:"roles"`
	}

	for _, mode := range codecDomain.AllModes() {
		t.Run(mode.String(), func(t *testing.T) {
			codec := newTestCodec(t, testSecret, mode)

			t.Run("associative keeps exact numbers", func(t *testing.T) {
				ciphertext, err := codec.EncryptJSON(map[string]any{
					"id":    9007199254740993,
					"name":  "alice",
					"tags":  []string{"a", "b"},
					"admin": true,
				})
				require.NoError(t, err)

				value, err := codec.DecryptJSON(ciphertext, true)
				require.NoError(t, err)

				m, ok := value.(map[string]any)
				require.True(t, ok)
				assert.Equal(t, json.Number("9007199254740993"), m["id"])
				assert.Equal(t, "alice", m["name"])
				assert.Equal(t, []any{"a", "b"}, m["tags"])
				assert.Equal(t, true, m["admin"])
			})

			t.Run("non-associative uses float64", func(t *testing.T) {
				ciphertext, err := codec.EncryptJSON(map[string]any{"n": 42})
				require.NoError(t, err)

				value, err := codec.DecryptJSON(ciphertext, false)
				require.NoError(t, err)
				assert.Equal(t, map[string]any{"n": float64(42)}, value)
			})

			t.Run("scalars and arrays", func(t *testing.T) {
				for _, v := range []any{"text", true, nil, []any{"x", true}} {
					ciphertext, err := codec.EncryptJSON(v)
					require.NoError(t, err)

					value, err := codec.DecryptJSON(ciphertext, false)
					require.NoError(t, err)
					assert.Equal(t, v, value)
				}
			})

			t.Run("into struct", func(t *testing.T) {
				in := session{UserID: 7, Email: "a@example.com", Roles: []string{"admin"}}
				ciphertext, err := codec.EncryptJSON(in)
				require.NoError(t, err)

				var out session
				require.NoError(t, codec.DecryptJSONInto(ciphertext, &out))
				assert.Equal(t, in, out)
			})

			t.Run("unserializable value", func(t *testing.T) {
				_, err := codec.EncryptJSON(math.Inf(1))
				assert.ErrorIs(t, err, codecDomain.ErrEncodingFailure)

				_, err = codec.EncryptJSON(make(chan int))
				assert.ErrorIs(t, err, codecDomain.ErrEncodingFailure)
			})

			t.Run("plaintext is not json", func(t *testing.T) {
				ciphertext, err := codec.Encrypt([]byte("not json"))
				require.NoError(t, err)

				_, err = codec.DecryptJSON(ciphertext, true)
				assert.ErrorIs(t, err, codecDomain.ErrEncodingFailure)
			})

			t.Run("trailing data", func(t *testing.T) {
				ciphertext, err := codec.Encrypt([]byte(`{"a":1} {"b":2}`))
				require.NoError(t, err)

				_, err = codec.DecryptJSON(ciphertext, false)
				assert.ErrorIs(t, err, codecDomain.ErrEncodingFailure)

				var out map[string]int
				err = codec.DecryptJSONInto(ciphertext, &out)
				assert.ErrorIs(t, err, codecDomain.ErrEncodingFailure)
			})

			t.Run("bad ciphertext", func(t *testing.T) {
				_, err := codec.DecryptJSON("not-base64!!", true)
				assert.ErrorIs(t, err, codecDomain.ErrEncodingFailure)
			})
		})
	}
}

func TestSymmetricTextCodec_ConcurrentUse(t *testing.T) {
	for _, mode := range codecDomain.AllModes() {
		t.Run(mode.String(), func(t *testing.T) {
			codec := newTestCodec(t, testSecret, mode)

			var wg sync.WaitGroup
			errs := make(chan error, 50)
			for i := 0; i < 50; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					ciphertext, err := codec.Encrypt([]byte("concurrent"))
					if err != nil {
						errs <- err
						return
					}
					if _, err := codec.Decrypt(ciphertext); err != nil {
						errs <- err
					}
				}()
			}
			wg.Wait()
			close(errs)

			for err := range errs {
				assert.NoError(t, err)
			}
		})
	}
}
