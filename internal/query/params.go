package query

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"salesdash/internal/domain"
)

// Defaults for the page request.
const (
	DefaultPage  = 1
	DefaultLimit = 10
)

const dateLayout = "2006-01-02"

// ParseParams normalizes a request's query parameters into the engine's
// specs. Malformed values never fail the request: bad numbers and dates
// degrade to "not constraining", unknown sort keys fall back to the
// default ordering.
func ParseParams(values url.Values) (domain.FilterSpec, domain.SortSpec, domain.PageRequest) {
	filter := domain.FilterSpec{
		Search:         firstParam(values, "search", "q"),
		Regions:        multiParam(values, "region"),
		Genders:        multiParam(values, "gender"),
		Categories:     multiParam(values, "category"),
		PaymentMethods: multiParam(values, "paymentMethod"),
		Tags:           multiParam(values, "tags"),
		MinAge:         intParam(values, "minAge"),
		MaxAge:         intParam(values, "maxAge"),
		StartDate:      dateParam(values, "startDate"),
		EndDate:        dateParam(values, "endDate"),
	}

	return filter, sortParam(values), pageParam(values)
}

func firstParam(values url.Values, keys ...string) string {
	for _, k := range keys {
		if v := strings.TrimSpace(values.Get(k)); v != "" {
			return v
		}
	}
	return ""
}

// multiParam accepts both repeated parameters and comma-joined values, and
// normalizes them into one trimmed set.
func multiParam(values url.Values, key string) []string {
	var out []string
	for _, raw := range values[key] {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

func intParam(values url.Values, key string) *int {
	v := strings.TrimSpace(values.Get(key))
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

func dateParam(values url.Values, key string) *time.Time {
	v := strings.TrimSpace(values.Get(key))
	if v == "" {
		return nil
	}
	t, err := time.ParseInLocation(dateLayout, v, time.UTC)
	if err != nil {
		return nil
	}
	return &t
}

// sortParam understands three forms: sortBy=<key> with an optional
// sortOrder=asc|desc, sort=<key>_asc|<key>_desc, and a bare sort=<key>.
func sortParam(values url.Values) domain.SortSpec {
	key := firstParam(values, "sortBy", "sort")
	if key == "" {
		return domain.DefaultSort
	}

	direction := domain.SortDirection(strings.ToLower(values.Get("sortOrder")))
	if strings.HasSuffix(key, "_asc") {
		key = strings.TrimSuffix(key, "_asc")
		direction = domain.SortAsc
	} else if strings.HasSuffix(key, "_desc") {
		key = strings.TrimSuffix(key, "_desc")
		direction = domain.SortDesc
	}
	if direction != domain.SortAsc && direction != domain.SortDesc {
		direction = domain.SortDesc
	}

	switch key {
	case "date":
		return domain.SortSpec{Key: domain.SortByDate, Direction: direction}
	case "quantity":
		return domain.SortSpec{Key: domain.SortByQuantity, Direction: direction}
	case "name", "customer_name", "customerName":
		return domain.SortSpec{Key: domain.SortByCustomerName, Direction: direction}
	default:
		return domain.DefaultSort
	}
}

func pageParam(values url.Values) domain.PageRequest {
	req := domain.PageRequest{Page: DefaultPage, Limit: DefaultLimit}
	if v := values.Get("page"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			req.Page = n
		}
	}
	if v := values.Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			req.Limit = n
		}
	}
	return req
}
