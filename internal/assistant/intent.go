package assistant

import (
	"encoding/json"
	"strings"
)

// Intent is the structured action parsed out of a model reply.
type Intent struct {
	Explanation string
	Action      string // "create", "update" or "none"
	Data        map[string]any
}

// ExtractIntent pulls the first JSON object out of a free-form model
// reply. The model is asked to answer with a single JSON object, but it
// often wraps it in prose or a code fence, so we take everything from
// the first '{' to the last '}' and try to parse that. This is a
// heuristic, not a parser: stray braces in the surrounding prose can
// make it over- or under-capture. Anything unparseable degrades to
// action "none" with the raw reply as explanation.
func ExtractIntent(raw string) Intent {
	none := Intent{Action: "none", Explanation: raw}

	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end <= start {
		return none
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err != nil {
		return none
	}

	intent := Intent{Action: "none", Explanation: raw}
	if action, ok := parsed["action"].(string); ok {
		intent.Action = action
	}
	if data, ok := parsed["data"].(map[string]any); ok {
		intent.Data = data
	}
	if explanation, ok := parsed["explanation"].(string); ok {
		intent.Explanation = explanation
	}
	return intent
}
