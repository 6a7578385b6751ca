package parser

import (
	"encoding/json"
	"reflect"
	"testing"

	stderrors "errors"

	"github.com/mcncl/jsonsieve/internal/errors"
	"github.com/mcncl/jsonsieve/internal/models"
)

func TestDecode_SimpleObject(t *testing.T) {
	value, err := Decode(`{"name": "John Doe", "age": 30, "isStudent": false, "city": null}`)
	if err != nil {
		t.Fatalf("Decode() error = %v, wantErr nil", err)
	}

	expected := models.NewObject()
	expected.Set("name", "John Doe")
	expected.Set("age", json.Number("30"))
	expected.Set("isStudent", false)
	expected.Set("city", nil)

	object, ok := value.(*models.Object)
	if !ok {
		t.Fatalf("Decode() root is not a *models.Object, got %T", value)
	}
	if !reflect.DeepEqual(object, expected) {
		t.Errorf("Decode() root = %v, want %v", object, expected)
	}
}

func TestDecode_ObjectKeyOrder(t *testing.T) {
	value, err := Decode(`{"zebra": 1, "apple": 2, "mango": 3}`)
	if err != nil {
		t.Fatalf("Decode() error = %v, wantErr nil", err)
	}

	object, ok := value.(*models.Object)
	if !ok {
		t.Fatalf("Decode() root is not a *models.Object, got %T", value)
	}

	keys := object.Keys()
	want := []string{"zebra", "apple", "mango"}
	if !reflect.DeepEqual(keys, want) {
		t.Errorf("Decode() keys = %v, want %v", keys, want)
	}
}

func TestDecode_SimpleArray(t *testing.T) {
	value, err := Decode(`[1, "test", true, null, 3.14]`)
	if err != nil {
		t.Fatalf("Decode() error = %v, wantErr nil", err)
	}

	expected := models.Array{
		json.Number("1"),
		"test",
		true,
		nil,
		json.Number("3.14"),
	}
	array, ok := value.(models.Array)
	if !ok {
		t.Fatalf("Decode() root is not a models.Array, got %T", value)
	}
	if !reflect.DeepEqual(array, expected) {
		t.Errorf("Decode() root = %v, want %v", array, expected)
	}
}

func TestDecode_NestedStructure(t *testing.T) {
	value, err := Decode(`{"user": {"name": "Jane Doe", "id": 123}, "tags": ["go", "json"]}`)
	if err != nil {
		t.Fatalf("Decode() error = %v, wantErr nil", err)
	}

	user := models.NewObject()
	user.Set("name", "Jane Doe")
	user.Set("id", json.Number("123"))

	expected := models.NewObject()
	expected.Set("user", user)
	expected.Set("tags", models.Array{"go", "json"})

	if !reflect.DeepEqual(value, models.Value(expected)) {
		t.Errorf("Decode() root = %v, want %v", value, expected)
	}
}

func TestDecode_ScalarRoots(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  models.Value
	}{
		{"string", `"hello"`, "hello"},
		{"number", `42`, json.Number("42")},
		{"negative number", `-3.5`, json.Number("-3.5")},
		{"true", `true`, true},
		{"null", `null`, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			value, err := Decode(tt.input)
			if err != nil {
				t.Fatalf("Decode(%q) error = %v, wantErr nil", tt.input, err)
			}
			if !reflect.DeepEqual(value, tt.want) {
				t.Errorf("Decode(%q) = %v (%T), want %v (%T)", tt.input, value, value, tt.want, tt.want)
			}
		})
	}
}

func TestDecode_DuplicateKeysLastWriteWins(t *testing.T) {
	value, err := Decode(`{"a": 1, "a": 2}`)
	if err != nil {
		t.Fatalf("Decode() error = %v, wantErr nil", err)
	}

	object := value.(*models.Object)
	if object.Len() != 1 {
		t.Fatalf("Decode() object.Len() = %d, want 1", object.Len())
	}
	if got := object.Value("a"); got != json.Number("2") {
		t.Errorf("Decode() object[a] = %v, want 2", got)
	}
}

func TestDecode_SyntaxError(t *testing.T) {
	_, err := Decode(`{"a": }`)
	if err == nil {
		t.Fatal("Decode() error = nil, want syntax error")
	}
	if !stderrors.Is(err, errors.ErrInvalidJSON) {
		t.Errorf("Decode() error = %v, want wrapped ErrInvalidJSON", err)
	}
	var appErr *errors.AppError
	if !stderrors.As(err, &appErr) || appErr.Type != errors.ErrorTypeDecode {
		t.Errorf("Decode() error = %v, want *AppError of decode type", err)
	}
}

func TestDecode_TruncatedInput(t *testing.T) {
	_, err := Decode(`{"a": [1, 2`)
	if err == nil {
		t.Fatal("Decode() error = nil, want error for truncated input")
	}
	if !stderrors.Is(err, errors.ErrInvalidJSON) {
		t.Errorf("Decode() error = %v, want wrapped ErrInvalidJSON", err)
	}
}

func TestDecode_TrailingData(t *testing.T) {
	_, err := Decode(`{"a": 1} {"b": 2}`)
	if err == nil {
		t.Fatal("Decode() error = nil, want error for trailing data")
	}
	if !stderrors.Is(err, errors.ErrInvalidJSON) {
		t.Errorf("Decode() error = %v, want wrapped ErrInvalidJSON", err)
	}
}

func TestDecode_TrailingWhitespaceAllowed(t *testing.T) {
	value, err := Decode("{\"a\": 1}  \n\t")
	if err != nil {
		t.Fatalf("Decode() error = %v, wantErr nil", err)
	}
	if _, ok := value.(*models.Object); !ok {
		t.Errorf("Decode() root is not a *models.Object, got %T", value)
	}
}

func TestDecode_EmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n\t"} {
		_, err := Decode(input)
		if err == nil {
			t.Fatalf("Decode(%q) error = nil, want error for empty input", input)
		}
		if !stderrors.Is(err, errors.ErrEmptyInput) {
			t.Errorf("Decode(%q) error = %v, want wrapped ErrEmptyInput", input, err)
		}
	}
}
