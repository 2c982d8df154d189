package playerjs

import (
	"errors"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/dop251/goja"
)

// playerRuntime executes the complete player script inside goja and calls
// its exported decipher entry points directly. It is the fallback for player
// builds whose helpers the static patterns no longer recognise.
type playerRuntime struct {
	mu   sync.Mutex
	vm   *goja.Runtime
	sig  goja.Callable
	nURL goja.Callable
}

var (
	runtimeSigPattern  = regexp.MustCompile(`const\s+[A-Za-z0-9_$]+=([A-Za-z0-9_$]+)\(16,decodeURIComponent\([^\)]*\.s\)\)`)
	runtimeNURLPattern = regexp.MustCompile(`([A-Za-z0-9_$]+)=function\(b\)\{try\{const\s+[A-Za-z0-9_$]+=\(new\s+g\.[A-Za-z0-9_$]+\(b,!0\)\)\.get\("n"\)`)
	nPathSegment       = regexp.MustCompile(`/n/([^/?]+)`)
)

const (
	playerWrapperEnd = "})(_yt_player);"
	exportSig        = "__ytinfo_sig"
	exportNURL       = "__ytinfo_nurl"
)

func hasRuntimeExports(js string) bool {
	return strings.Contains(js, playerWrapperEnd) &&
		(runtimeSigPattern.MatchString(js) || runtimeNURLPattern.MatchString(js))
}

func newPlayerRuntime(js string) (*playerRuntime, error) {
	var inject strings.Builder
	if m := runtimeSigPattern.FindStringSubmatch(js); len(m) > 1 {
		inject.WriteString("g." + exportSig + "=" + m[1] + ";")
	}
	if m := runtimeNURLPattern.FindStringSubmatch(js); len(m) > 1 {
		inject.WriteString("g." + exportNURL + "=" + m[1] + ";")
	}
	if inject.Len() == 0 {
		return nil, errors.New("player exposes no runtime decipher entry points")
	}
	at := strings.LastIndex(js, playerWrapperEnd)
	if at < 0 {
		return nil, errors.New("player wrapper not found")
	}
	js = js[:at] + inject.String() + js[at:]

	vm := goja.New()
	if _, err := vm.RunString(browserShim); err != nil {
		return nil, err
	}
	if _, err := vm.RunString(js); err != nil {
		return nil, err
	}
	root := vm.Get("_yt_player")
	if root == nil || goja.IsUndefined(root) || goja.IsNull(root) {
		return nil, errors.New("player root object missing")
	}
	obj := root.ToObject(vm)

	rt := &playerRuntime{vm: vm}
	rt.sig = exportedFunc(obj, exportSig)
	rt.nURL = exportedFunc(obj, exportNURL)
	if rt.sig == nil && rt.nURL == nil {
		return nil, errors.New("runtime decipher exports are not callable")
	}
	return rt, nil
}

func exportedFunc(obj *goja.Object, name string) goja.Callable {
	v := obj.Get(name)
	if v == nil || goja.IsUndefined(v) || goja.IsNull(v) {
		return nil
	}
	fn, _ := goja.AssertFunction(v)
	return fn
}

func (rt *playerRuntime) signature(s string) (string, error) {
	if rt.sig == nil {
		return "", errors.New("runtime signature function unavailable")
	}
	rt.mu.Lock()
	defer rt.mu.Unlock()
	out, err := rt.sig(goja.Undefined(), rt.vm.ToValue(16), rt.vm.ToValue(s))
	if err != nil {
		return "", err
	}
	return out.String(), nil
}

// n runs the player's URL rewriting routine on a synthetic URL carrying n
// both as a path segment and as a query value, then reads the rewritten
// path segment back.
func (rt *playerRuntime) n(n string) (string, error) {
	if rt.nURL == nil {
		return "", errors.New("runtime n function unavailable")
	}
	in := "https://www.youtube.com/videoplayback/n/" + url.PathEscape(n) + "/x?n=" + url.QueryEscape(n)

	rt.mu.Lock()
	out, err := rt.nURL(goja.Undefined(), rt.vm.ToValue(in))
	rt.mu.Unlock()
	if err != nil {
		return "", err
	}
	m := nPathSegment.FindStringSubmatch(out.String())
	if len(m) < 2 {
		return "", errors.New("runtime n output has no /n/ segment")
	}
	return url.PathUnescape(m[1])
}

// browserShim stubs the globals the player script touches at load time.
const browserShim = `
var globalThis = this;
var window = this;
var self = this;
var document = {
	createElement: function(){ return { style: {}, setAttribute: function(){}, appendChild: function(){}, canPlayType: function(){ return ''; } }; },
	getElementsByTagName: function(){ return []; },
	querySelectorAll: function(){ return []; },
	addEventListener: function(){},
	documentElement: { style: {} }
};
var navigator = { userAgent: '' };
var location = {
	href: 'https://www.youtube.com/watch',
	protocol: 'https:',
	host: 'www.youtube.com',
	hostname: 'www.youtube.com',
	pathname: '/watch',
	search: '',
	hash: '',
	origin: 'https://www.youtube.com'
};
window.location = location;
window.navigator = navigator;
window.document = document;
window.top = window;
window.parent = window;
window.setTimeout = function(){ return 0; };
window.clearTimeout = function(){};
window.setInterval = function(){ return 0; };
window.clearInterval = function(){};
window.addEventListener = function(){};
window.removeEventListener = function(){};
window.matchMedia = function(){ return { matches: false, addListener: function(){} }; };
window.performance = { now: function(){ return 0; } };
window.localStorage = { getItem: function(){ return null; }, setItem: function(){}, removeItem: function(){} };
var XMLHttpRequest = function(){};
XMLHttpRequest.prototype = { open: function(){}, send: function(){}, setRequestHeader: function(){} };
window.XMLHttpRequest = XMLHttpRequest;
`
