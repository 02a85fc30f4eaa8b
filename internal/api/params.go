package api

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/leapstack-labs/leapadmin/pkg/core"
	"github.com/leapstack-labs/leapadmin/pkg/resource"
)

const (
	defaultPerPage = 25
	maxPerPage     = 500

	filterPrefix = "filter."
)

// parseQuery turns the request's query string into a resource query.
// Filter parameters reference properties by name:
//
//	filter.name=bob          value filter
//	filter.created_at.from=  range lower bound (date and datetime kinds)
//	filter.created_at.to=    range upper bound
//
// Parameters naming a property the resource does not declare are
// rejected.
func parseQuery(values url.Values, res *resource.Resource) (resource.Query, error) {
	q := resource.Query{Limit: defaultPerPage}

	if sortBy := values.Get("sortBy"); sortBy != "" {
		q.SortBy = sortBy
	}
	q.Descending = strings.EqualFold(values.Get("direction"), "desc")

	perPage := defaultPerPage
	if raw := values.Get("perPage"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return q, fmt.Errorf("invalid perPage %q", raw)
		}
		if n > maxPerPage {
			n = maxPerPage
		}
		perPage = n
	}
	q.Limit = perPage

	if raw := values.Get("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return q, fmt.Errorf("invalid page %q", raw)
		}
		q.Offset = (n - 1) * perPage
	}

	filter, err := parseFilter(values, res)
	if err != nil {
		return q, err
	}
	q.Filter = filter
	return q, nil
}

// parseFilter collects filter.* parameters into clauses, merging a
// property's .from and .to bounds into one range clause.
func parseFilter(values url.Values, res *resource.Resource) (core.Filter, error) {
	type pending struct {
		clause core.Clause
		index  int
	}
	byProp := make(map[string]*pending)
	var order int

	clauseFor := func(name string) (*pending, error) {
		if p, ok := byProp[name]; ok {
			return p, nil
		}
		prop, ok := res.Property(name)
		if !ok {
			return nil, &core.UnknownPropertyError{Resource: res.Name(), Field: name}
		}
		p := &pending{clause: core.Clause{Property: prop}, index: order}
		order++
		byProp[name] = p
		return p, nil
	}

	// Iterate keys in sorted order so identical requests produce the
	// same clause order, and with it the same rendered SQL.
	keys := make([]string, 0, len(values))
	for key := range values {
		if strings.HasPrefix(key, filterPrefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)

	for _, key := range keys {
		vals := values[key]
		if len(vals) == 0 {
			continue
		}
		rest := strings.TrimPrefix(key, filterPrefix)
		value := vals[len(vals)-1]

		switch {
		case strings.HasSuffix(rest, ".from"):
			p, err := clauseFor(strings.TrimSuffix(rest, ".from"))
			if err != nil {
				return nil, err
			}
			t, err := parseTime(value)
			if err != nil {
				return nil, fmt.Errorf("invalid %s: %w", key, err)
			}
			if p.clause.Range == nil {
				p.clause.Range = &core.DateRange{}
			}
			p.clause.Range.From = t
		case strings.HasSuffix(rest, ".to"):
			p, err := clauseFor(strings.TrimSuffix(rest, ".to"))
			if err != nil {
				return nil, err
			}
			t, err := parseTime(value)
			if err != nil {
				return nil, fmt.Errorf("invalid %s: %w", key, err)
			}
			if p.clause.Range == nil {
				p.clause.Range = &core.DateRange{}
			}
			p.clause.Range.To = t
		default:
			p, err := clauseFor(rest)
			if err != nil {
				return nil, err
			}
			p.clause.Value = value
		}
	}

	filter := make(core.Filter, len(byProp))
	for _, p := range byProp {
		filter[p.index] = p.clause
	}
	return filter, nil
}

var timeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"}

func parseTime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unrecognized time %q", value)
}
