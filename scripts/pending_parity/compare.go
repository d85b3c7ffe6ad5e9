package main

import (
	"bytes"
	"encoding/json"
	"reflect"

	"github.com/noah-isme/sma-leave-gateway/internal/service"
)

// bodiesEqual compares two leave list responses. Both bodies are unwrapped the
// way the gateway reads them, so a bare array and a {"data": [...]} envelope
// with the same items are equal.
func bodiesEqual(a, b []byte) bool {
	if bytes.Equal(bytes.TrimSpace(a), bytes.TrimSpace(b)) {
		return true
	}

	aj, ok := decodeList(a)
	if !ok {
		return false
	}
	bj, ok := decodeList(b)
	if !ok {
		return false
	}
	normalize(&aj)
	normalize(&bj)
	return reflect.DeepEqual(aj, bj)
}

func decodeList(body []byte) (interface{}, bool) {
	raw, err := service.UnwrapLeaveList(body)
	if err != nil {
		raw = body
	}
	var v interface{}
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false
	}
	if v == nil {
		v = []interface{}{}
	}
	return v, true
}

// normalize folds integral floats so 1 and 1.0 compare equal.
func normalize(v *interface{}) {
	switch val := (*v).(type) {
	case map[string]interface{}:
		for k, v2 := range val {
			normalize(&v2)
			val[k] = v2
		}
	case []interface{}:
		for i, v2 := range val {
			normalize(&v2)
			val[i] = v2
		}
	case float64:
		if val == float64(int64(val)) {
			*v = int64(val)
		}
	}
}
