package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"github.com/itchyny/gojq"
)

// Apply runs a jq expression against data. A single result is returned as
// is; several results are returned as a slice. An empty expression returns
// data unchanged.
func Apply(data any, expression string) (any, error) {
	expression = strings.TrimSpace(expression)
	if expression == "" {
		return data, nil
	}

	results, err := evaluate(data, expression)
	if err != nil {
		return nil, err
	}
	return collapse(results), nil
}

// Write encodes data as indented JSON after applying expression. Plain
// string results are written without quotes so they can be piped. An
// expression that yields nothing writes nothing.
func Write(w io.Writer, data any, expression string) error {
	normalized, err := normalize(data)
	if err != nil {
		return err
	}

	expression = strings.TrimSpace(expression)
	if expression == "" {
		return encode(w, normalized)
	}

	results, err := evaluate(normalized, expression)
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return nil
	}

	result := collapse(results)
	if s, ok := result.(string); ok {
		_, err := fmt.Fprintln(w, s)
		return err
	}
	return encode(w, result)
}

func evaluate(data any, expression string) ([]any, error) {
	// zsh escapes ! even inside single quotes, which breaks !=.
	expression = strings.ReplaceAll(expression, `\!`, `!`)

	query, err := gojq.Parse(expression)
	if err != nil {
		return nil, fmt.Errorf("output: invalid jq expression: %w", err)
	}

	normalized, err := normalize(data)
	if err != nil {
		return nil, err
	}

	iter := query.Run(normalized)
	var results []any
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, ok := v.(error); ok {
			return nil, fmt.Errorf("output: jq: %w", err)
		}
		results = append(results, v)
	}
	return results, nil
}

func collapse(results []any) any {
	if len(results) == 1 {
		return results[0]
	}
	return results
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// normalize round-trips data through encoding/json so gojq only sees the
// types it understands. Integers keep their exact value as int or *big.Int.
func normalize(data any) (any, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("output: encode: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("output: decode: %w", err)
	}
	return numbers(v), nil
}

func numbers(v any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, item := range x {
			x[k] = numbers(item)
		}
		return x
	case []any:
		for i, item := range x {
			x[i] = numbers(item)
		}
		return x
	case json.Number:
		s := x.String()
		if i, err := strconv.Atoi(s); err == nil {
			return i
		}
		if n, ok := new(big.Int).SetString(s, 10); ok {
			return n
		}
		f, _ := x.Float64()
		return f
	default:
		return v
	}
}
