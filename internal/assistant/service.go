package assistant

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/ProjectMate/go-project-backend/internal/projects/domain"
	"github.com/ProjectMate/go-project-backend/internal/projects/service"
)

const defaultTemplate = "engineering-design-process"

// Generator produces a completion for a prompt. Satisfied by
// *genai.Client; narrowed here so tests can fake the model.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Assistant turns a natural-language request into a project action:
// it shows the model the current project list, parses the proposed
// intent out of the reply and executes create/update against the
// project service.
type Assistant struct {
	gen      Generator
	projects *service.Service
}

func New(gen Generator, projects *service.Service) *Assistant {
	return &Assistant{gen: gen, projects: projects}
}

// Result is the assistant's answer. Project holds the created or
// updated project on success, a map with an "error" key when the store
// action failed, or nil when no action ran.
type Result struct {
	Answer  string         `json:"answer"`
	Action  string         `json:"action"`
	Data    map[string]any `json:"data"`
	Project any            `json:"project"`
}

// Run executes one assistant round trip. A failed project listing is
// degraded to an empty list so the model can still answer; a failed
// generation call is a hard error.
func (a *Assistant) Run(ctx context.Context, userPrompt string) (*Result, error) {
	projects, err := a.projects.List(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("assistant: listing projects failed, continuing with empty list")
		projects = nil
	}

	raw, err := a.gen.Generate(ctx, buildPrompt(projects, userPrompt))
	if err != nil {
		return nil, err
	}

	intent := ExtractIntent(raw)
	res := &Result{
		Answer: intent.Explanation,
		Action: intent.Action,
		Data:   intent.Data,
	}

	switch {
	case intent.Action == "create" && intent.Data != nil:
		res.Project = a.create(ctx, intent.Data)
	case intent.Action == "update" && intent.Data != nil:
		res.Project = a.update(ctx, projects, intent.Data)
	}
	return res, nil
}

// create normalizes the model-proposed payload and creates the project.
// Failures are reported inline so the explanation still reaches the
// caller.
func (a *Assistant) create(ctx context.Context, data map[string]any) any {
	payload := map[string]any{
		"template":    defaultTemplate,
		"title":       "Untitled Project",
		"description": "",
		"submitted":   false,
		"published":   false,
	}
	if tpl, ok := data["template"].(string); ok && tpl != "" {
		payload["template"] = tpl
	}
	if title, ok := data["title"].(string); ok && title != "" {
		payload["title"] = title
	}
	if desc, ok := data["description"].(string); ok {
		payload["description"] = desc
	}
	if submitted, ok := data["submitted"].(bool); ok {
		payload["submitted"] = submitted
	}
	if published, ok := data["published"].(bool); ok {
		payload["published"] = published
	}

	p, err := a.projects.Create(ctx, payload)
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	return p
}

// update resolves the target project (explicit id, else exact title
// match against the list loaded earlier) and patches it.
func (a *Assistant) update(ctx context.Context, projects []domain.Project, data map[string]any) any {
	var targetID string
	if id, ok := data["id"].(string); ok && id != "" {
		targetID = id
	} else if currentTitle, ok := data["currentTitle"].(string); ok && currentTitle != "" {
		for _, p := range projects {
			if p.Title == currentTitle {
				targetID = p.ID
				break
			}
		}
	}
	if targetID == "" {
		return map[string]any{"error": "missing project id for update"}
	}

	patch := map[string]any{}
	for _, field := range []string{"title", "description"} {
		if v, ok := data[field].(string); ok {
			patch[field] = v
		}
	}
	for _, field := range []string{"submitted", "published"} {
		if v, ok := data[field].(bool); ok {
			patch[field] = v
		}
	}

	p, err := a.projects.Update(ctx, targetID, patch)
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	return p
}

func buildPrompt(projects []domain.Project, userPrompt string) string {
	// A nil list (listing failed) is shown to the model as an empty array,
	// not null.
	if projects == nil {
		projects = []domain.Project{}
	}
	list, err := json.Marshal(projects)
	if err != nil {
		list = []byte("[]")
	}
	request, _ := json.Marshal(userPrompt)

	return fmt.Sprintf(`You are helping manage projects. Consider the current list and the user request.

CurrentProjects: %s
UserRequest: %s

Return ONLY a single JSON object with keys: explanation (string), action ("create" | "update" | "none"), data (object|null).
- If action is "create", the data MUST include at least: template (one of: "engineering-design-process", "thesis-or-research-project"), title, description (can be short), and any optional fields you infer.
- If action is "update", the data MUST include an identifier for the target project: id (preferred). If id is missing, you may provide an exact currentTitle to match by title. Include only the fields to change among: title, description, submitted, published.
- Prefer template "engineering-design-process" when unsure.
- Do not include any additional commentary outside the JSON.
`, list, request)
}
