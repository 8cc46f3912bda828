// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"math"
	"strconv"
	"strings"
)

// ResourceType names one independently persisted collection of records.
type ResourceType string

const (
	ResourceProjects     ResourceType = "projects"
	ResourceServices     ResourceType = "services"
	ResourceTestimonials ResourceType = "testimonials"
	ResourceTeam         ResourceType = "team"
	ResourcePosts        ResourceType = "posts"
)

// ResourceTypes lists every collection served by the admin backend, in the
// order the dashboard reports them.
var ResourceTypes = []ResourceType{
	ResourceProjects,
	ResourceTestimonials,
	ResourceServices,
	ResourceTeam,
	ResourcePosts,
}

// CacheKeyPrefix is prepended to the resource name to form the cache key.
const CacheKeyPrefix = "crud_"

// ParseResourceType returns the ResourceType named by s, or false when s is not
// one of [ResourceTypes].
func ParseResourceType(s string) (ResourceType, bool) {
	for _, rt := range ResourceTypes {
		if string(rt) == s {
			return rt, true
		}
	}
	return "", false
}

// CacheKey returns the key under which the collection is persisted.
func (r ResourceType) CacheKey() string {
	return CacheKeyPrefix + string(r)
}

func (r ResourceType) String() string {
	return string(r)
}

// ErrInvalidRecordID is returned when an id cannot be normalized to int64.
var ErrInvalidRecordID = errors.New("invalid record id")

// Record is one uniquely identified item of a collection. ID is owned by the
// store; Fields holds every other named value of the record.
//
// On the wire a Record is a flat JSON object: {"id": 1, "title": "A", ...}.
type Record struct {
	ID     int64
	Fields map[string]any
}

// NewRecord builds a Record from a flat field map. An "id" entry in fields
// is moved into ID when it can be normalized and dropped otherwise.
func NewRecord(fields map[string]any) Record {
	r := Record{Fields: make(map[string]any, len(fields))}
	for k, v := range fields {
		if k == "id" {
			if id, err := NormalizeID(v); err == nil {
				r.ID = id
			}
			continue
		}
		r.Fields[k] = v
	}
	return r
}

// HasID reports whether the record carries a store-assigned id.
func (r Record) HasID() bool {
	return r.ID > 0
}

// Get returns the value of the named field.
func (r Record) Get(field string) (any, bool) {
	v, ok := r.Fields[field]
	return v, ok
}

// Text returns the value of the named field formatted as a string, or an
// empty string when the field is absent.
func (r Record) Text(field string) string {
	v, ok := r.Fields[field]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Clone returns a copy of r whose field map can be mutated independently.
func (r Record) Clone() Record {
	return Record{ID: r.ID, Fields: maps.Clone(r.Fields)}
}

// Flatten returns the record as a single map including the "id" key.
func (r Record) Flatten() map[string]any {
	out := make(map[string]any, len(r.Fields)+1)
	maps.Copy(out, r.Fields)
	if r.HasID() {
		out["id"] = r.ID
	}
	return out
}

func (r Record) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Flatten())
}

func (r *Record) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return err
	}

	*r = NewRecord(fields)
	return nil
}

// NormalizeID converts an id coming from JSON, a query string or a path
// parameter to int64. Integral JSON numbers and numeric strings are accepted.
func NormalizeID(v any) (int64, error) {
	switch id := v.(type) {
	case int64:
		return id, nil
	case int:
		return int64(id), nil
	case int32:
		return int64(id), nil
	case float64:
		if id != math.Trunc(id) || math.IsInf(id, 0) || math.IsNaN(id) {
			return 0, fmt.Errorf("%w: %v", ErrInvalidRecordID, v)
		}
		return int64(id), nil
	case json.Number:
		return ParseID(id.String())
	case string:
		return ParseID(id)
	}
	return 0, fmt.Errorf("%w: %v", ErrInvalidRecordID, v)
}

// ParseID parses a decimal id string. Values such as "2.0" are accepted when
// they are integral.
func ParseID(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if id, err := strconv.ParseInt(s, 10, 64); err == nil {
		return id, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRecordID, s)
	}
	return int64(f), nil
}

// Collection is the ordered sequence of records of one resource type.
type Collection []Record

// Clone returns a deep copy of the collection.
func (c Collection) Clone() Collection {
	if c == nil {
		return nil
	}
	out := make(Collection, len(c))
	for i, r := range c {
		out[i] = r.Clone()
	}
	return out
}

// MaxID returns the greatest id in the collection, or 0 when it is empty.
func (c Collection) MaxID() int64 {
	var maxID int64
	for _, r := range c {
		maxID = max(maxID, r.ID)
	}
	return maxID
}

// NextID returns the id the store assigns to the next created record.
func (c Collection) NextID() int64 {
	return c.MaxID() + 1
}

// IndexOf returns the position of the record with the given id, or -1.
func (c Collection) IndexOf(id int64) int {
	for i, r := range c {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// AssignMissingIDs gives every record without an id its 1-based position in
// source order and reports whether anything changed. A position already
// taken by another record's id is skipped in favour of the next id above
// the current maximum, so ids stay unique.
func (c Collection) AssignMissingIDs() bool {
	used := make(map[int64]struct{}, len(c))
	for _, r := range c {
		if r.HasID() {
			used[r.ID] = struct{}{}
		}
	}

	maxID := c.MaxID()
	changed := false
	for i := range c {
		if c[i].HasID() {
			continue
		}

		id := int64(i + 1)
		if _, taken := used[id]; taken {
			id = maxID + 1
		}
		c[i].ID = id
		used[id] = struct{}{}
		maxID = max(maxID, id)
		changed = true
	}
	return changed
}
