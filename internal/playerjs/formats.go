package playerjs

import (
	"errors"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/famomatic/ytinfo/internal/types"
)

var errNoTokens = errors.New("format is ciphered but no player script is available")

// DecipherFormats returns a copy of formats with signature ciphers resolved
// into playable URLs and the "n" parameter transformed. The input slice is
// not modified. A ciphered format that cannot be deciphered fails the call;
// a failing n transform only logs a warning and keeps the original value.
// With debug set every rewritten format is logged.
func DecipherFormats(formats []types.Format, tokens *Tokens, debug bool, logger zerolog.Logger) ([]types.Format, error) {
	out := make([]types.Format, len(formats))
	for i, f := range formats {
		deciphered, err := decipherFormat(f, tokens, logger)
		if err != nil {
			return nil, err
		}
		if debug && deciphered.URL != f.URL {
			logger.Info().
				Str("format", f.ID).
				Bool("ciphered", f.Ciphered).
				Str("url", deciphered.URL).
				Msg("format deciphered")
		}
		out[i] = deciphered
	}
	return out, nil
}

func decipherFormat(f types.Format, tokens *Tokens, logger zerolog.Logger) (types.Format, error) {
	cipher := f.SignatureCipher
	if cipher == "" {
		cipher = f.Cipher
	}
	if cipher != "" && f.URL == "" {
		if tokens == nil {
			return f, &DecipherError{Err: errNoTokens}
		}
		resolved, err := resolveCipher(cipher, tokens)
		if err != nil {
			return f, err
		}
		f.URL = resolved
	}
	if f.URL == "" || tokens == nil {
		return f, nil
	}

	u, err := url.Parse(f.URL)
	if err != nil {
		logger.Warn().Err(err).Str("format", f.ID).Msg("unparseable format url")
		return f, nil
	}
	q := u.Query()
	n := q.Get("n")
	if n == "" {
		return f, nil
	}
	transformed, err := tokens.N(n)
	if err != nil {
		logger.Warn().Err(err).Str("format", f.ID).Msg("n parameter transform failed")
		return f, nil
	}
	q.Set("n", transformed)
	u.RawQuery = q.Encode()
	f.URL = u.String()
	return f, nil
}

// resolveCipher turns a "s=..&sp=..&url=.." cipher into a signed URL.
func resolveCipher(cipher string, tokens *Tokens) (string, error) {
	params, err := url.ParseQuery(cipher)
	if err != nil {
		return "", &DecipherError{PlayerURL: tokens.PlayerURL, Err: err}
	}
	raw := params.Get("url")
	if raw == "" {
		return "", &DecipherError{PlayerURL: tokens.PlayerURL, Err: errors.New("cipher carries no url")}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", &DecipherError{PlayerURL: tokens.PlayerURL, Err: err}
	}

	s := params.Get("s")
	if s == "" {
		return u.String(), nil
	}
	sig, err := tokens.Signature(s)
	if err != nil {
		return "", err
	}
	key := params.Get("sp")
	if key == "" {
		key = "signature"
	}
	q := u.Query()
	q.Set(key, sig)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
