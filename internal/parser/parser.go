package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	stderrors "errors" // Standard errors package

	"github.com/mcncl/jsonpeek/internal/errors" // Custom errors package
	"github.com/mcncl/jsonpeek/internal/models"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Parse reads a JSON object from reader and returns its top-level entries in
// document order.
func Parse(reader io.Reader) (models.Document, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.Document{}, errors.NewInputError("failed to read input", err)
	}
	return ParseBytes(data)
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.Document, error) {
	return ParseBytes([]byte(jsonString))
}

// ParseBytes decodes data as text (UTF-8 unless a UTF-16 byte order mark says
// otherwise) and parses the JSON object it contains.
func ParseBytes(data []byte) (models.Document, error) {
	text, _, err := transform.Bytes(unicode.BOMOverride(unicode.UTF8.NewDecoder()), data)
	if err != nil {
		return models.Document{}, errors.NewInputError("failed to decode input text", err)
	}
	if len(bytes.TrimSpace(text)) == 0 {
		return models.Document{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}
	return parseObject(text)
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (models.Document, error) {
	if strings.TrimSpace(filePath) == "" {
		return models.Document{}, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return models.Document{}, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.ErrFileNotFound,
			)
		}
		return models.Document{}, errors.NewInputError(
			fmt.Sprintf("failed to open file '%s'", filePath),
			err,
		)
	}
	return ParseBytes(data)
}

// parseObject walks the root object token by token so that key order is
// kept. Member values are captured raw and only their kind is inspected.
func parseObject(text []byte) (models.Document, error) {
	decoder := json.NewDecoder(bytes.NewReader(text))
	decoder.UseNumber()

	tok, err := decoder.Token()
	if err != nil {
		return models.Document{}, syntaxError(text, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return models.Document{}, errors.NewParsingError(
			fmt.Sprintf("top-level JSON value is %s, expected an object", describeToken(tok)),
			errors.ErrRootNotObject,
		)
	}

	var doc models.Document
	for decoder.More() {
		keyTok, err := decoder.Token()
		if err != nil {
			return models.Document{}, syntaxError(text, err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return models.Document{}, errors.NewParsingError(
				fmt.Sprintf("object key is %s, expected a string", describeToken(keyTok)),
				errors.ErrInvalidJSON,
			)
		}

		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			return models.Document{}, syntaxError(text, err)
		}
		value, err := valueOf(raw)
		if err != nil {
			return models.Document{}, errors.NewParsingError(
				fmt.Sprintf("invalid value for key %q: %v", key, err),
				errors.ErrInvalidJSON,
			)
		}
		doc.Set(key, value)
	}

	if _, err := decoder.Token(); err != nil {
		return models.Document{}, syntaxError(text, err)
	}

	// Only whitespace may follow the root object.
	if _, err := decoder.Token(); err == nil {
		return models.Document{}, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
	} else if !stderrors.Is(err, io.EOF) {
		return models.Document{}, syntaxError(text, err)
	}

	return doc, nil
}

// valueOf turns one raw top-level member into a Value without looking inside
// containers.
func valueOf(raw json.RawMessage) (models.Value, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return models.Value{}, stderrors.New("empty value")
	}
	switch trimmed[0] {
	case '{':
		return models.ObjectValue(), nil
	case '[':
		return models.ArrayValue(), nil
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return models.Value{}, err
		}
		return models.StringValue(s), nil
	case 't', 'f':
		var b bool
		if err := json.Unmarshal(trimmed, &b); err != nil {
			return models.Value{}, err
		}
		return models.BoolValue(b), nil
	case 'n':
		return models.NullValue(), nil
	default:
		return models.NumberValue(json.Number(trimmed)), nil
	}
}

// syntaxError converts decoder failures into parsing errors that carry the
// decoder's message and the position of the failure.
func syntaxError(text []byte, err error) error {
	var syntaxErr *json.SyntaxError
	switch {
	case stderrors.As(err, &syntaxErr):
		line, col := position(text, syntaxErr.Offset)
		return errors.NewParsingError(
			fmt.Sprintf("%s (line %d, column %d)", syntaxErr.Error(), line, col),
			errors.ErrInvalidJSON,
		)
	case stderrors.Is(err, io.EOF), stderrors.Is(err, io.ErrUnexpectedEOF):
		line, col := position(text, int64(len(text)))
		return errors.NewParsingError(
			fmt.Sprintf("unexpected end of JSON input (line %d, column %d)", line, col),
			errors.ErrInvalidJSON,
		)
	default:
		return errors.NewParsingError(fmt.Sprintf("failed to decode JSON: %v", err), errors.ErrInvalidJSON)
	}
}

// position converts a byte offset into a 1-based line and column.
func position(text []byte, offset int64) (int, int) {
	if offset > int64(len(text)) {
		offset = int64(len(text))
	}
	if offset < 0 {
		offset = 0
	}
	prefix := text[:offset]
	line := bytes.Count(prefix, []byte{'\n'}) + 1
	col := len(prefix) - bytes.LastIndexByte(prefix, '\n')
	return line, col
}

func describeToken(tok json.Token) string {
	switch t := tok.(type) {
	case json.Delim:
		if t == '[' {
			return "an array"
		}
		return fmt.Sprintf("%q", t.String())
	case string:
		return "a string"
	case json.Number:
		return "a number"
	case bool:
		return "a boolean"
	case nil:
		return "null"
	default:
		return fmt.Sprintf("%T", t)
	}
}
