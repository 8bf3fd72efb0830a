package statethunk

import (
	"encoding/json"

	"github.com/tidwall/gjson"
)

// Action is a minimal action record. The package never interprets actions;
// Action exists for callers that have no action type of their own.
type Action struct {
	Type    string `json:"type"`
	Payload any    `json:"payload,omitempty"`
}

// ActionType implements Typer.
func (a Action) ActionType() string { return a.Type }

// Typer is implemented by actions that can name their discriminant.
type Typer interface {
	ActionType() string
}

// TypeField is the field consulted for map and JSON encoded actions.
const TypeField = "type"

// TypeOf returns the discriminant of an action when one can be found. It
// understands Typer values, maps keyed by string, and JSON objects given as
// []byte, json.RawMessage or string. It is used for logging and hooks only;
// dispatch never depends on it.
func TypeOf(action any) (string, bool) {
	switch a := action.(type) {
	case Typer:
		return a.ActionType(), true
	case map[string]any:
		s, ok := a[TypeField].(string)
		return s, ok
	case map[string]string:
		s, ok := a[TypeField]
		return s, ok
	case json.RawMessage:
		return jsonType([]byte(a))
	case []byte:
		return jsonType(a)
	case string:
		return jsonType([]byte(a))
	}
	return "", false
}

func jsonType(raw []byte) (string, bool) {
	if !gjson.ValidBytes(raw) {
		return "", false
	}
	r := gjson.GetBytes(raw, TypeField)
	if !r.Exists() || r.Type != gjson.String {
		return "", false
	}
	return r.String(), true
}
