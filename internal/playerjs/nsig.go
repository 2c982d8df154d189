package playerjs

import (
	"bytes"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"sync"

	"github.com/dop251/goja"
)

var nFunctionPatterns = []*regexp.Regexp{
	// b=XY[0](b)||ZZ with a fallback symbol.
	regexp.MustCompile(`\.get\("n"\)\)\s*&&\s*\(b=([a-zA-Z0-9$]+)\[(\d+)\]\([a-zA-Z0-9$]+\).+\|\|([a-zA-Z0-9$]+)`),
	// b=XY(b)
	regexp.MustCompile(`\.get\("n"\)\)\s*&&\s*\(b=([a-zA-Z0-9$]+)\([a-zA-Z0-9$]+\)`),
	regexp.MustCompile(`\.get\("n"\).*?&&.*?([a-zA-Z0-9$]+)\([a-zA-Z0-9$]+\)`),
}

// nFunctionName finds the name of the throttling transform applied to the
// "n" query parameter.
func nFunctionName(js []byte) (string, error) {
	for _, re := range nFunctionPatterns {
		m := re.FindSubmatch(js)
		if len(m) == 0 {
			continue
		}
		if len(m) == 4 {
			if idx, err := strconv.Atoi(string(m[2])); err == nil && idx == 0 {
				return string(m[3]), nil
			}
		}
		return string(m[1]), nil
	}
	return "", errors.New("n function name not found")
}

// extractFunctionSource returns the full source of a named function
// definition by balancing braces from its opening brace. Braces inside string
// literals are ignored.
func extractFunctionSource(js []byte, name string) (string, error) {
	name = strings.TrimSpace(name)
	start := -1
	for _, def := range []string{name + "=function(", name + " = function(", "function " + name + "("} {
		if start = bytes.Index(js, []byte(def)); start >= 0 {
			break
		}
	}
	if start < 0 {
		return "", fmt.Errorf("definition of %s not found", name)
	}

	open := bytes.IndexByte(js[start:], '{')
	if open < 0 {
		return "", fmt.Errorf("body of %s not found", name)
	}
	pos := start + open + 1
	var quote byte
	for depth := 1; depth > 0; pos++ {
		if pos >= len(js) {
			return "", fmt.Errorf("unterminated body of %s", name)
		}
		c := js[pos]
		switch c {
		case '{', '}':
			if quote != 0 {
				continue
			}
			if c == '{' {
				depth++
			} else {
				depth--
			}
		case '`', '"', '\'':
			if pos > 1 && js[pos-1] == '\\' && js[pos-2] != '\\' {
				continue
			}
			if quote == 0 {
				quote = c
			} else if quote == c {
				quote = 0
			}
		}
	}
	source := string(js[start:pos])
	if strings.HasPrefix(source, "function ") {
		return source, nil
	}
	// "name=function(...){...}" becomes an anonymous function expression.
	return source[strings.Index(source, "function("):], nil
}

// nTransform evaluates the extracted n function in its own goja runtime.
// goja runtimes are not goroutine-safe, so calls are serialised.
type nTransform struct {
	mu sync.Mutex
	vm *goja.Runtime
	fn goja.Callable
}

func newNTransform(source string) (*nTransform, error) {
	vm := goja.New()
	v, err := vm.RunString("(" + source + ")")
	if err != nil {
		return nil, fmt.Errorf("compile n function: %w", err)
	}
	fn, ok := goja.AssertFunction(v)
	if !ok {
		return nil, errors.New("n function is not callable")
	}
	return &nTransform{vm: vm, fn: fn}, nil
}

func (t *nTransform) apply(n string) (string, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	out, err := t.fn(goja.Undefined(), t.vm.ToValue(n))
	if err != nil {
		return "", err
	}
	return out.String(), nil
}
