// Package kakao models the Kakao open builder skill payload and response
// envelope. The inbound payload is loosely typed: parameter values arrive
// as plain scalars, as objects wrapping the scalar in value/origin metadata,
// as decomposed year/month/day objects, or as arrays of any of these.
// ParamValue models those shapes explicitly; see param.go.
package kakao

import (
	"strings"
	"unicode"
)

// Intent is the open builder intent block.
type Intent struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
}

// Action carries the skill action name and its parameter maps.
// DetailParams mirrors Params with richer nested metadata; the same
// unwrapping rules apply to both.
type Action struct {
	ID           string         `json:"id,omitempty"`
	Name         string         `json:"name"`
	Params       map[string]any `json:"params"`
	DetailParams map[string]any `json:"detailParams"`
}

// User identifies the chat user.
type User struct {
	ID string `json:"id"`
}

// UserRequest carries the raw utterance and user identity.
type UserRequest struct {
	Utterance string `json:"utterance"`
	User      User   `json:"user"`
}

// SkillRequest is the inbound webhook payload.
// All fields are optional; a zero SkillRequest resolves to the help reply.
type SkillRequest struct {
	Intent      Intent      `json:"intent"`
	Action      Action      `json:"action"`
	UserRequest UserRequest `json:"userRequest"`
}

// Utterance returns the free-text utterance, if any.
func (r *SkillRequest) Utterance() string {
	if r == nil {
		return ""
	}
	return r.UserRequest.Utterance
}

// UserID returns the Kakao user ID, if any.
func (r *SkillRequest) UserID() string {
	if r == nil {
		return ""
	}
	return r.UserRequest.User.ID
}

// Param looks up a logical parameter and unwraps it to a primitive string.
// Lookup tries, in order: action.params[key], action.params[snake(key)],
// action.detailParams[key], action.detailParams[snake(key)]. The first
// entry whose value unwraps to a defined primitive wins.
func (r *SkillRequest) Param(key string) (string, bool) {
	if r == nil {
		return "", false
	}
	for _, source := range []map[string]any{r.Action.Params, r.Action.DetailParams} {
		if source == nil {
			continue
		}
		for _, k := range []string{key, SnakeCase(key)} {
			raw, present := source[k]
			if !present {
				continue
			}
			if v, ok := Classify(raw).Unwrap(); ok {
				return v, true
			}
		}
	}
	return "", false
}

// SnakeCase converts a camelCase key to snake_case ("mealType" -> "meal_type").
// Keys without uppercase letters pass through unchanged.
func SnakeCase(key string) string {
	var b strings.Builder
	b.Grow(len(key) + 2)
	for i, r := range key {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
