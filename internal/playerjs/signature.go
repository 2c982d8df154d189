package playerjs

import (
	"fmt"
	"regexp"
	"strconv"
)

// sigOp is one step of the player's signature scrambling routine.
type sigOp func([]byte) []byte

const (
	jsIdent    = `[a-zA-Z_\$][a-zA-Z_0-9]*`
	reverseDef = `:function\(a\)\{(?:return )?a\.reverse\(\)\}`
	spliceDef  = `:function\(a,b\)\{a\.splice\(0,b\)\}`
	swapDef    = `:function\(a,b\)\{var c=a\[0\];a\[0\]=a\[b(?:%a\.length)?\];a\[b(?:%a\.length)?\]=c(?:;return a)?\}`
)

var (
	helperObjectPattern = regexp.MustCompile(fmt.Sprintf(
		`(?:var|let|const)\s+(%[1]s)=\{((?:(?:%[1]s%[2]s|%[1]s%[3]s|%[1]s%[4]s),?\n?)+)\}\s*;?`,
		jsIdent, swapDef, spliceDef, reverseDef))

	reverseKeyPattern = regexp.MustCompile(fmt.Sprintf(`(?m)(?:^|,)(%s)%s`, jsIdent, reverseDef))
	spliceKeyPattern  = regexp.MustCompile(fmt.Sprintf(`(?m)(?:^|,)(%s)%s`, jsIdent, spliceDef))
	swapKeyPattern    = regexp.MustCompile(fmt.Sprintf(`(?m)(?:^|,)(%s)%s`, jsIdent, swapDef))

	scrambleBody  = fmt.Sprintf(`\(a\)\{a=a\.split\([^\)]*\);\s*((?:(?:a=)?%[1]s(?:\.%[1]s|\[[^\]]+\])\(a,\d+\);?\s*)+)return a\.join\([^\)]*\)\}`, jsIdent)
	scrambleFuncs = []*regexp.Regexp{
		regexp.MustCompile(fmt.Sprintf(`function(?:\s+%s)?%s`, jsIdent, scrambleBody)),
		regexp.MustCompile(fmt.Sprintf(`%s\s*=\s*function%s`, jsIdent, scrambleBody)),
	}
)

// extractSignatureOps locates the helper object and the scrambling function
// in the player source and translates the call sequence into sigOps.
func extractSignatureOps(js []byte) ([]sigOp, error) {
	obj := helperObjectPattern.FindSubmatch(js)
	var calls []byte
	for _, re := range scrambleFuncs {
		if m := re.FindSubmatch(js); len(m) > 1 {
			calls = m[1]
			break
		}
	}
	if len(obj) < 3 || len(calls) == 0 {
		return nil, fmt.Errorf("signature helpers not found (object=%t, function=%t)", len(obj) >= 3, len(calls) > 0)
	}

	keyOf := func(re *regexp.Regexp) string {
		if m := re.FindSubmatch(obj[2]); len(m) > 1 {
			return string(m[1])
		}
		return ""
	}
	reverseKey, spliceKey, swapKey := keyOf(reverseKeyPattern), keyOf(spliceKeyPattern), keyOf(swapKeyPattern)

	keys := regexp.QuoteMeta(reverseKey) + "|" + regexp.QuoteMeta(spliceKey) + "|" + regexp.QuoteMeta(swapKey)
	callPattern, err := regexp.Compile(fmt.Sprintf(
		`(?:a=)?%s(?:\.(%s)|\[(?:"(%s)"|'(%s)')\])\(a,(\d+)\)`,
		regexp.QuoteMeta(string(obj[1])), keys, keys, keys))
	if err != nil {
		return nil, err
	}

	var ops []sigOp
	for _, call := range callPattern.FindAllSubmatch(calls, -1) {
		key := firstNonEmpty(call[1], call[2], call[3])
		arg, _ := strconv.Atoi(string(call[4]))
		switch key {
		case reverseKey:
			ops = append(ops, reverseOp)
		case spliceKey:
			ops = append(ops, spliceOp(arg))
		case swapKey:
			ops = append(ops, swapOp(arg))
		}
	}
	if len(ops) == 0 {
		return nil, fmt.Errorf("signature function has no recognised operations")
	}
	return ops, nil
}

func applySignatureOps(ops []sigOp, s string) string {
	b := []byte(s)
	for _, op := range ops {
		b = op(b)
	}
	return string(b)
}

func reverseOp(b []byte) []byte {
	for l, r := 0, len(b)-1; l < r; l, r = l+1, r-1 {
		b[l], b[r] = b[r], b[l]
	}
	return b
}

func spliceOp(n int) sigOp {
	return func(b []byte) []byte {
		if n < 0 || n > len(b) {
			return b
		}
		return b[n:]
	}
}

func swapOp(n int) sigOp {
	return func(b []byte) []byte {
		if len(b) == 0 {
			return b
		}
		i := n % len(b)
		b[0], b[i] = b[i], b[0]
		return b
	}
}

func firstNonEmpty(groups ...[]byte) string {
	for _, g := range groups {
		if len(g) > 0 {
			return string(g)
		}
	}
	return ""
}
