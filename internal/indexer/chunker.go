package indexer

import "strings"

// separators tried in order when a span is too long. Paragraph breaks first,
// then line breaks, sentence boundaries, and finally single spaces.
var separators = []string{"\n\n", "\n", ". ", " "}

// Chunker splits transcript text into overlapping chunks of bounded size.
type Chunker struct {
	chunkSize int
	overlap   int
}

// NewChunker creates a chunker. chunkSize is the maximum chunk length in bytes;
// overlap is the maximum number of bytes repeated between adjacent chunks.
func NewChunker(chunkSize, overlap int) *Chunker {
	if chunkSize <= 0 {
		chunkSize = 800
	}
	if overlap < 0 || overlap >= chunkSize {
		overlap = 0
	}
	return &Chunker{chunkSize: chunkSize, overlap: overlap}
}

// Split splits text into chunks no longer than chunkSize, preferring to break
// at paragraph, line, and sentence boundaries. Adjacent chunks share up to
// overlap bytes of trailing context. Empty input yields no chunks; input that
// fits in one chunk is returned whole.
func (c *Chunker) Split(text string) []string {
	if text == "" {
		return nil
	}
	if len(text) <= c.chunkSize {
		return []string{text}
	}
	return c.merge(c.atomize(text, separators))
}

// atomize breaks text into units no longer than chunkSize. Separators stay
// attached to the unit they terminate, so concatenating the units reproduces
// the input exactly. A span with no usable separator is hard-cut.
func (c *Chunker) atomize(text string, seps []string) []string {
	if len(text) <= c.chunkSize {
		if text == "" {
			return nil
		}
		return []string{text}
	}
	if len(seps) == 0 {
		var out []string
		for len(text) > c.chunkSize {
			out = append(out, text[:c.chunkSize])
			text = text[c.chunkSize:]
		}
		if text != "" {
			out = append(out, text)
		}
		return out
	}
	var out []string
	for _, part := range strings.SplitAfter(text, seps[0]) {
		if part == "" {
			continue
		}
		if len(part) <= c.chunkSize {
			out = append(out, part)
		} else {
			out = append(out, c.atomize(part, seps[1:])...)
		}
	}
	return out
}

// merge packs units into chunks of at most chunkSize bytes. When a chunk
// closes, its trailing units (up to overlap bytes) seed the next chunk. The
// seed shrinks from the front if keeping it all would push the next chunk
// over chunkSize.
func (c *Chunker) merge(units []string) []string {
	var chunks []string
	var cur []string
	curLen := 0
	for _, u := range units {
		if curLen > 0 && curLen+len(u) > c.chunkSize {
			chunks = append(chunks, strings.Join(cur, ""))
			var tail []string
			tailLen := 0
			for i := len(cur) - 1; i >= 0; i-- {
				if tailLen+len(cur[i]) > c.overlap {
					break
				}
				tail = append([]string{cur[i]}, tail...)
				tailLen += len(cur[i])
			}
			for tailLen > 0 && tailLen+len(u) > c.chunkSize {
				tailLen -= len(tail[0])
				tail = tail[1:]
			}
			cur = tail
			curLen = tailLen
		}
		cur = append(cur, u)
		curLen += len(u)
	}
	if curLen > 0 {
		chunks = append(chunks, strings.Join(cur, ""))
	}
	return chunks
}
