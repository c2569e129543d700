// Package key provides the spreading key shared between watermark embedding
// and extraction, together with its one-line text form.
package key

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

var (
	ErrParse = errors.New("invalid key")
)

// Key is a spreading sequence. Each element is expected to be +1 or -1 and
// the length equals the number of samples allotted to one message bit.
type Key []int16

// Valid reports whether every element has magnitude 1.
func (k Key) Valid() bool {
	for _, v := range k {
		if v != 1 && v != -1 {
			return false
		}
	}
	return true
}

// String formats the key as comma separated decimal values.
func (k Key) String() string {
	return Format(k)
}

// Format joins the key values with "," and no trailing separator.
func Format(k Key) string {
	var sb strings.Builder
	for i, v := range k {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatInt(int64(v), 10))
	}
	return sb.String()
}

// Write writes the formatted key to w as a single line.
func Write(w io.Writer, k Key) error {
	_, err := io.WriteString(w, Format(k))
	return err
}

// Parse parses the first line of s. Values are not checked for magnitude.
func Parse(s string) (Key, error) {
	line, _, _ := strings.Cut(s, "\n")
	line = strings.TrimSpace(line)
	if line == "" {
		return Key{}, nil
	}
	tokens := strings.Split(line, ",")
	k := make(Key, len(tokens))
	for i, tok := range tokens {
		v, err := strconv.ParseInt(tok, 10, 16)
		if err != nil {
			return nil, fmt.Errorf("%w: token %d %q: %w", ErrParse, i, tok, err)
		}
		k[i] = int16(v)
	}
	return k, nil
}

// Read parses the first line read from r.
func Read(r io.Reader) (Key, error) {
	line, err := bufio.NewReader(r).ReadString('\n')
	if err != nil && err != io.EOF {
		return nil, err
	}
	return Parse(line)
}
