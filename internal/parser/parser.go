package parser

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	stderrors "errors" // Standard errors package

	"github.com/mcncl/jsonsieve/internal/errors"
	"github.com/mcncl/jsonsieve/internal/models"
)

// Decode parses text as strict JSON and returns the decoded value tree.
// Unlike a plain json.Unmarshal into map[string]interface{}, decoding runs
// over the token stream so that object key order is preserved in
// models.Object. Numbers are kept as json.Number.
func Decode(text string) (models.Value, error) {
	// TrimSpace is important here because an empty string reader will give
	// io.EOF to Token, but a string with only spaces behaves the same way
	// and both deserve the more specific error.
	if strings.TrimSpace(text) == "" {
		return nil, errors.NewDecodeError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}
	return DecodeReader(strings.NewReader(text))
}

// DecodeReader parses strict JSON from an io.Reader.
func DecodeReader(reader io.Reader) (models.Value, error) {
	decoder := json.NewDecoder(reader)
	decoder.UseNumber() // Ensure numbers are read as json.Number

	value, err := decodeValue(decoder)
	if err != nil {
		var syntaxError *json.SyntaxError
		if stderrors.As(err, &syntaxError) {
			return nil, errors.NewDecodeError(
				fmt.Sprintf("JSON syntax error at offset %d", syntaxError.Offset),
				errors.ErrInvalidJSON,
			)
		}
		// Token reports truncated input as either EOF flavour depending on
		// where the stream gave out; both mean the document never finished.
		if stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
			return nil, errors.NewDecodeError("unexpected end of JSON input", errors.ErrInvalidJSON)
		}
		return nil, errors.NewDecodeError("failed to decode JSON", err)
	}

	// Anything after the first value means the input was not a single JSON
	// document. Trailing whitespace alone yields io.EOF and is fine.
	if _, err := decoder.Token(); err != io.EOF {
		return nil, errors.NewDecodeError("trailing data after first JSON value", errors.ErrInvalidJSON)
	}

	return value, nil
}

// decodeValue reads the next complete value from the token stream.
func decodeValue(decoder *json.Decoder) (models.Value, error) {
	token, err := decoder.Token()
	if err != nil {
		return nil, err
	}

	switch t := token.(type) {
	case json.Delim:
		switch t {
		case '{':
			return decodeObject(decoder)
		case '[':
			return decodeArray(decoder)
		default:
			// Closing delimiters are consumed by decodeObject/decodeArray, so
			// one here means the stream is unbalanced.
			return nil, fmt.Errorf("unexpected delimiter %q", t.String())
		}
	default:
		// string, json.Number, bool or nil
		return t, nil
	}
}

func decodeObject(decoder *json.Decoder) (models.Value, error) {
	object := models.NewObject()
	for decoder.More() {
		keyToken, err := decoder.Token()
		if err != nil {
			return nil, err
		}
		key, ok := keyToken.(string)
		if !ok {
			return nil, fmt.Errorf("object key is not a string: %v", keyToken)
		}
		value, err := decodeValue(decoder)
		if err != nil {
			return nil, err
		}
		object.Set(key, value)
	}
	// Consume the closing '}'
	if _, err := decoder.Token(); err != nil {
		return nil, err
	}
	return object, nil
}

func decodeArray(decoder *json.Decoder) (models.Value, error) {
	array := models.Array{}
	for decoder.More() {
		value, err := decodeValue(decoder)
		if err != nil {
			return nil, err
		}
		array = append(array, value)
	}
	// Consume the closing ']'
	if _, err := decoder.Token(); err != nil {
		return nil, err
	}
	return array, nil
}
