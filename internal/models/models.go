package models

import (
	"bytes"
	"encoding/json"
)

// Value is a generic type to represent any decoded JSON value.
// Concrete types are string, json.Number, bool, nil, Array and *Object.
type Value interface{}

// Array represents a JSON array. Element order matches the source text.
type Array []Value

// Object represents a JSON object. Unlike a plain map it remembers the order
// in which keys first appeared, so re-serialising an extracted value keeps
// the shape of the source text.
type Object struct {
	keys   []string
	values map[string]Value
}

// NewObject returns an empty Object ready for use.
func NewObject() *Object {
	return &Object{values: make(map[string]Value)}
}

// Set stores value under key. A repeated key keeps its original position but
// takes the new value, matching encoding/json's last-write-wins behaviour for
// duplicate keys.
func (o *Object) Set(key string, value Value) {
	if _, exists := o.values[key]; !exists {
		o.keys = append(o.keys, key)
	}
	o.values[key] = value
}

// Get returns the value stored under key and whether the key is present.
func (o *Object) Get(key string) (Value, bool) {
	v, ok := o.values[key]
	return v, ok
}

// Has reports whether the object owns key directly.
func (o *Object) Has(key string) bool {
	_, ok := o.values[key]
	return ok
}

// Value returns the value stored under key, or nil when the key is absent.
func (o *Object) Value(key string) Value {
	return o.values[key]
}

// Keys returns the object's keys in insertion order.
func (o *Object) Keys() []string {
	keys := make([]string, len(o.keys))
	copy(keys, o.keys)
	return keys
}

// Len returns the number of keys in the object.
func (o *Object) Len() int {
	return len(o.keys)
}

// MarshalJSON writes the object back out with keys in insertion order.
func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, key := range o.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		keyJSON, err := json.Marshal(key)
		if err != nil {
			return nil, err
		}
		buf.Write(keyJSON)
		buf.WriteByte(':')
		valueJSON, err := json.Marshal(o.values[key])
		if err != nil {
			return nil, err
		}
		buf.Write(valueJSON)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
