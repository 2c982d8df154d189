package playerjs

import (
	"errors"
	"fmt"
	"sync"
)

// DecipherError reports a player script whose decipher routines could not
// be located or executed.
type DecipherError struct {
	PlayerURL string
	Err       error
}

func (e *DecipherError) Error() string {
	return fmt.Sprintf("decipher with player %s: %v", e.PlayerURL, e.Err)
}

func (e *DecipherError) Unwrap() error {
	return e.Err
}

// Tokens holds the decipher routines extracted from one player script. A
// Tokens value is safe for concurrent use.
type Tokens struct {
	PlayerURL string

	js     string
	sigOps []sigOp
	nFunc  *nTransform

	runtimeOnce sync.Once
	runtime     *playerRuntime
	runtimeErr  error
}

// ParseTokens extracts the signature and n routines from a player script.
// It fails only when neither routine nor a runtime entry point is present.
func ParseTokens(playerURL, js string) (*Tokens, error) {
	t := &Tokens{PlayerURL: playerURL, js: js}

	ops, sigErr := extractSignatureOps([]byte(js))
	t.sigOps = ops

	var nErr error
	if name, err := nFunctionName([]byte(js)); err != nil {
		nErr = err
	} else if source, err := extractFunctionSource([]byte(js), name); err != nil {
		nErr = err
	} else {
		t.nFunc, nErr = newNTransform(source)
	}

	if sigErr != nil && nErr != nil && !hasRuntimeExports(js) {
		return nil, &DecipherError{PlayerURL: playerURL, Err: errors.Join(sigErr, nErr)}
	}
	return t, nil
}

// Signature deciphers the scrambled "s" value of a signatureCipher.
func (t *Tokens) Signature(s string) (string, error) {
	if len(t.sigOps) > 0 {
		return applySignatureOps(t.sigOps, s), nil
	}
	rt, err := t.loadRuntime()
	if err != nil {
		return "", &DecipherError{PlayerURL: t.PlayerURL, Err: err}
	}
	out, err := rt.signature(s)
	if err != nil {
		return "", &DecipherError{PlayerURL: t.PlayerURL, Err: err}
	}
	return out, nil
}

// N transforms the throttling "n" query value.
func (t *Tokens) N(n string) (string, error) {
	var staticErr error
	if t.nFunc != nil {
		out, err := t.nFunc.apply(n)
		if err == nil {
			return out, nil
		}
		staticErr = err
	}
	rt, err := t.loadRuntime()
	if err == nil {
		var out string
		if out, err = rt.n(n); err == nil {
			return out, nil
		}
	}
	return "", &DecipherError{PlayerURL: t.PlayerURL, Err: errors.Join(staticErr, err)}
}

func (t *Tokens) loadRuntime() (*playerRuntime, error) {
	t.runtimeOnce.Do(func() {
		t.runtime, t.runtimeErr = newPlayerRuntime(t.js)
	})
	return t.runtime, t.runtimeErr
}
