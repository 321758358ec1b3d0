package buckets

import "strings"

// RenderOptions controls the blob format.
type RenderOptions struct {
	// TrailingNewline terminates every non-empty blob with "\n".
	TrailingNewline bool
}

// DefaultRenderOptions matches the files written by the CLI.
var DefaultRenderOptions = RenderOptions{TrailingNewline: true}

// Render produces one blob per letter of alphabet. Letters without a bucket
// map to "". The result always has one key per distinct rune of alphabet.
func Render(alphabet string, buckets Map, opts RenderOptions) map[string]string {
	out := make(map[string]string, len(alphabet))
	for _, r := range alphabet {
		letter := string(r)
		out[letter] = RenderBucket(buckets[letter], opts)
	}
	return out
}

// RenderBucket renders a single bucket. An empty bucket renders as "".
func RenderBucket(bucket []WordByCount, opts RenderOptions) string {
	if len(bucket) == 0 {
		return ""
	}

	var b strings.Builder
	for i, wc := range bucket {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(wc.String())
	}
	if opts.TrailingNewline {
		b.WriteByte('\n')
	}
	return b.String()
}

// Unbucketed returns the keys of buckets whose letter is not in alphabet.
// Those words are dropped from the rendered output.
func Unbucketed(alphabet string, buckets Map) []string {
	var missing []string
	for _, k := range buckets.Keys() {
		if !strings.Contains(alphabet, k) {
			missing = append(missing, k)
		}
	}
	return missing
}
