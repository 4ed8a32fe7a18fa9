package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"gorm.io/datatypes"

	types "github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/domain"
	"github.com/Denis060/Smart-Hustle-AI-CMS-sub000/internal/platform/apierr"
)

// ImageUpload is an image attached to a course write.
type ImageUpload struct {
	Name   string
	Reader io.Reader
}

// CourseInput carries course fields exactly as a client sent them, keyed by
// their camelCase names. Values are whatever the transport produced: JSON
// scalars and arrays, or strings from a form.
type CourseInput struct {
	fields map[string]any
	Image  *ImageUpload
}

var courseFieldAliases = map[string]string{
	"owned_by_platform": "ownedByPlatform",
	"category_id":       "categoryId",
	"learning_outcomes": "learningOutcomes",
	"image_url":         "imageUrl",
}

func NewCourseInput(fields map[string]any) CourseInput {
	in := CourseInput{fields: map[string]any{}}
	for k, v := range fields {
		if alias, ok := courseFieldAliases[k]; ok {
			k = alias
		}
		in.fields[k] = v
	}
	return in
}

// CourseInputFromJSON decodes a JSON object body. Numbers stay as
// json.Number so coercion sees the original text.
func CourseInputFromJSON(body []byte) (CourseInput, error) {
	fields := map[string]any{}
	if len(bytes.TrimSpace(body)) == 0 {
		return NewCourseInput(fields), nil
	}
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&fields); err != nil {
		return CourseInput{}, apierr.Validation("body", "request body must be a JSON object")
	}
	return NewCourseInput(fields), nil
}

// CourseInputFromForm takes multipart or urlencoded values. A repeated key is
// kept as a list, which only sequence fields make use of.
func CourseInputFromForm(values map[string][]string) CourseInput {
	fields := map[string]any{}
	for k, vs := range values {
		switch len(vs) {
		case 0:
		case 1:
			fields[k] = vs[0]
		default:
			list := make([]any, 0, len(vs))
			for _, v := range vs {
				list = append(list, v)
			}
			fields[k] = list
		}
	}
	return NewCourseInput(fields)
}

func (in CourseInput) Has(field string) bool {
	_, ok := in.fields[field]
	return ok
}

func (in CourseInput) get(field string) (any, bool) {
	v, ok := in.fields[field]
	return v, ok
}

// courseChanges is the typed result of parsing a CourseInput. Nil pointers
// were absent from the input.
type courseChanges struct {
	Title            *string
	Description      *string
	OwnedByPlatform  *bool
	Status           *types.CourseStatus
	CategorySet      bool
	CategoryID       *uint
	Price            *float64
	Currency         *string
	Difficulty       *types.Difficulty
	Tags             *[]string
	Prerequisites    *[]string
	LearningOutcomes *[]string
	Featured         *bool
	ImageURL         *string
}

func parseCourseInput(in CourseInput, creating bool) (*courseChanges, error) {
	ch := &courseChanges{}

	if v, ok := in.get("title"); ok {
		title := strings.TrimSpace(coerceString(v))
		if title == "" {
			return nil, apierr.Validation("title", "title must not be empty")
		}
		ch.Title = &title
	} else if creating {
		return nil, apierr.Validation("title", "title is required")
	}

	if v, ok := in.get("description"); ok {
		desc := strings.TrimSpace(coerceString(v))
		ch.Description = &desc
	}

	if v, ok := in.get("ownedByPlatform"); ok {
		owned := coerceBool(v)
		ch.OwnedByPlatform = &owned
	}

	if v, ok := in.get("status"); ok {
		status := types.CourseStatus(strings.ToLower(strings.TrimSpace(coerceString(v))))
		if !status.Valid() {
			return nil, apierr.Validation("status", "status must be one of draft, published, archived")
		}
		ch.Status = &status
	}

	if v, ok := in.get("categoryId"); ok {
		ch.CategorySet = true
		if id := coerceUint(v); id > 0 {
			ch.CategoryID = &id
		}
	}

	if v, ok := in.get("price"); ok {
		price := coercePrice(v)
		ch.Price = &price
	}

	if v, ok := in.get("currency"); ok {
		currency := strings.ToUpper(strings.TrimSpace(coerceString(v)))
		if currency == "" {
			currency = types.DefaultCurrency
		}
		if err := validate.Var(currency, "len=3,alpha"); err != nil {
			return nil, apierr.Validation("currency", "currency must be a 3-letter code")
		}
		ch.Currency = &currency
	}

	if v, ok := in.get("difficulty"); ok {
		difficulty := types.Difficulty(strings.ToLower(strings.TrimSpace(coerceString(v))))
		if !difficulty.Valid() {
			return nil, apierr.Validation("difficulty", "difficulty must be one of beginner, intermediate, advanced, expert")
		}
		ch.Difficulty = &difficulty
	}

	if v, ok := in.get("tags"); ok {
		tags := coerceStringList(v)
		ch.Tags = &tags
	}
	if v, ok := in.get("prerequisites"); ok {
		prereqs := coerceStringList(v)
		ch.Prerequisites = &prereqs
	}
	if v, ok := in.get("learningOutcomes"); ok {
		outcomes := coerceStringList(v)
		ch.LearningOutcomes = &outcomes
	}

	if v, ok := in.get("featured"); ok {
		featured := coerceBool(v)
		ch.Featured = &featured
	}

	if v, ok := in.get("imageUrl"); ok {
		imageURL := strings.TrimSpace(coerceString(v))
		ch.ImageURL = &imageURL
	}

	return ch, nil
}

// newCourse applies create defaults: platform-owned, draft, USD, beginner,
// free, empty sequences.
func (ch *courseChanges) newCourse() *types.Course {
	c := &types.Course{
		OwnedByPlatform:  true,
		Status:           types.CourseStatusDraft,
		Currency:         types.DefaultCurrency,
		Difficulty:       types.DifficultyBeginner,
		Tags:             datatypes.JSONSlice[string]{},
		Prerequisites:    datatypes.JSONSlice[string]{},
		LearningOutcomes: datatypes.JSONSlice[string]{},
	}
	if ch.Title != nil {
		c.Title = *ch.Title
	}
	if ch.Description != nil {
		c.Description = *ch.Description
	}
	if ch.OwnedByPlatform != nil {
		c.OwnedByPlatform = *ch.OwnedByPlatform
	}
	if ch.Status != nil {
		c.Status = *ch.Status
	}
	c.CategoryID = ch.CategoryID
	if ch.Price != nil {
		c.Price = *ch.Price
	}
	if ch.Currency != nil {
		c.Currency = *ch.Currency
	}
	if ch.Difficulty != nil {
		c.Difficulty = *ch.Difficulty
	}
	if ch.Tags != nil {
		c.Tags = *ch.Tags
	}
	if ch.Prerequisites != nil {
		c.Prerequisites = *ch.Prerequisites
	}
	if ch.LearningOutcomes != nil {
		c.LearningOutcomes = *ch.LearningOutcomes
	}
	if ch.Featured != nil {
		c.Featured = *ch.Featured
	}
	if ch.ImageURL != nil {
		c.ImageURL = *ch.ImageURL
	}
	return c
}

// columnUpdates maps present fields to columns. Ownership is a single column,
// so the computed isExternal follows it without a separate write.
func (ch *courseChanges) columnUpdates() map[string]interface{} {
	updates := map[string]interface{}{}
	if ch.Title != nil {
		updates["title"] = *ch.Title
	}
	if ch.Description != nil {
		updates["description"] = *ch.Description
	}
	if ch.OwnedByPlatform != nil {
		updates["owned_by_platform"] = *ch.OwnedByPlatform
	}
	if ch.Status != nil {
		updates["status"] = *ch.Status
	}
	if ch.CategorySet {
		updates["category_id"] = ch.CategoryID
	}
	if ch.Price != nil {
		updates["price"] = *ch.Price
	}
	if ch.Currency != nil {
		updates["currency"] = *ch.Currency
	}
	if ch.Difficulty != nil {
		updates["difficulty"] = *ch.Difficulty
	}
	if ch.Tags != nil {
		updates["tags"] = datatypes.JSONSlice[string](*ch.Tags)
	}
	if ch.Prerequisites != nil {
		updates["prerequisites"] = datatypes.JSONSlice[string](*ch.Prerequisites)
	}
	if ch.LearningOutcomes != nil {
		updates["learning_outcomes"] = datatypes.JSONSlice[string](*ch.LearningOutcomes)
	}
	if ch.Featured != nil {
		updates["featured"] = *ch.Featured
	}
	if ch.ImageURL != nil {
		updates["image_url"] = *ch.ImageURL
	}
	return updates
}

func coerceString(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case json.Number:
		return t.String()
	case []any:
		if len(t) > 0 {
			return coerceString(t[0])
		}
		return ""
	default:
		return fmt.Sprint(t)
	}
}

// coerceBool accepts JSON booleans, numbers and the usual form spellings.
// Anything unrecognised is false.
func coerceBool(v any) bool {
	switch t := v.(type) {
	case bool:
		return t
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case float64:
		return t != 0
	default:
		switch strings.ToLower(strings.TrimSpace(coerceString(v))) {
		case "1", "true", "yes", "on":
			return true
		default:
			return false
		}
	}
}

func coerceFloat(v any) float64 {
	var f float64
	switch t := v.(type) {
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case float64:
		f = t
	default:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(coerceString(v)), 64)
		if err != nil {
			return 0
		}
		f = parsed
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// coercePrice never returns a negative amount and keeps two decimals.
func coercePrice(v any) float64 {
	f := coerceFloat(v)
	if f < 0 {
		return 0
	}
	return math.Round(f*100) / 100
}

func coerceUint(v any) uint {
	f := coerceFloat(v)
	if f < 1 || f != math.Trunc(f) || f > math.MaxUint32 {
		return 0
	}
	return uint(f)
}

// coerceStringList reads a sequence from a JSON array or from text holding
// one. Malformed text yields an empty list, never an error.
func coerceStringList(v any) []string {
	out := []string{}
	var items []any
	switch t := v.(type) {
	case nil:
		return out
	case []any:
		items = t
	case []string:
		for _, s := range t {
			items = append(items, s)
		}
	default:
		raw := strings.TrimSpace(coerceString(v))
		if raw == "" {
			return out
		}
		dec := json.NewDecoder(strings.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&items); err != nil {
			return out
		}
	}
	for _, item := range items {
		switch item.(type) {
		case string, json.Number, float64, bool:
			if s := strings.TrimSpace(coerceString(item)); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
