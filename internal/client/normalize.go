package client

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/tidwall/gjson"
)

// collection finds the array of entity records in body. The API nests
// lists in several ways; anything unrecognized yields an empty list.
func collection(body []byte, entity string) gjson.Result {
	paths := []string{
		entity + ".data",
		entity,
		"data." + entity + ".data",
		"data." + entity,
		"data.data",
		"data",
	}
	for _, p := range paths {
		if r := gjson.GetBytes(body, p); r.IsArray() {
			return r
		}
	}
	if r := gjson.ParseBytes(body); r.IsArray() {
		return r
	}
	return gjson.Parse("[]")
}

// object returns the first path in body that holds an object.
func object(body []byte, paths ...string) (gjson.Result, bool) {
	for _, p := range paths {
		if r := gjson.GetBytes(body, p); r.IsObject() {
			return r, true
		}
	}
	return gjson.Result{}, false
}

// decodeList decodes each element of the entity collection. Elements that
// do not decode are skipped.
func decodeList[T any](body []byte, entity string, fix func(gjson.Result, *T)) ([]T, error) {
	if len(body) > 0 && !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("failed to decode %s: invalid JSON", entity)
	}
	arr := collection(body, entity).Array()
	out := make([]T, 0, len(arr))
	for _, el := range arr {
		var rec T
		if err := json.Unmarshal([]byte(el.Raw), &rec); err != nil {
			log.Warn().Err(err).Str("entity", entity).Msg("Skipping malformed record")
			continue
		}
		if fix != nil {
			fix(el, &rec)
		}
		out = append(out, rec)
	}
	return out, nil
}
