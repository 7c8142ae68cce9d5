package query

import (
	"net/url"
	"testing"

	"salesdash/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseParamsDefaults(t *testing.T) {
	filter, sortSpec, page := ParseParams(url.Values{})

	assert.True(t, filter.Empty())
	assert.Equal(t, domain.DefaultSort, sortSpec)
	assert.Equal(t, DefaultPage, page.Page)
	assert.Equal(t, DefaultLimit, page.Limit)
}

func TestParseParamsMultiSelectForms(t *testing.T) {
	commaJoined, _, _ := ParseParams(url.Values{"region": {"North,South"}})
	repeated, _, _ := ParseParams(url.Values{"region": {"North", "South"}})
	mixed, _, _ := ParseParams(url.Values{"region": {"North, South", "East"}})

	assert.Equal(t, []string{"North", "South"}, commaJoined.Regions)
	assert.Equal(t, []string{"North", "South"}, repeated.Regions)
	assert.Equal(t, []string{"North", "South", "East"}, mixed.Regions)
}

func TestParseParamsSearchAliases(t *testing.T) {
	viaSearch, _, _ := ParseParams(url.Values{"search": {"anita"}})
	viaQ, _, _ := ParseParams(url.Values{"q": {"anita"}})

	assert.Equal(t, "anita", viaSearch.Search)
	assert.Equal(t, "anita", viaQ.Search)
}

func TestParseParamsSortForms(t *testing.T) {
	tests := []struct {
		name   string
		values url.Values
		want   domain.SortSpec
	}{
		{
			"sortBy with sortOrder",
			url.Values{"sortBy": {"quantity"}, "sortOrder": {"asc"}},
			domain.SortSpec{Key: domain.SortByQuantity, Direction: domain.SortAsc},
		},
		{
			"suffixed sort param",
			url.Values{"sort": {"date_asc"}},
			domain.SortSpec{Key: domain.SortByDate, Direction: domain.SortAsc},
		},
		{
			"suffixed name desc",
			url.Values{"sort": {"name_desc"}},
			domain.SortSpec{Key: domain.SortByCustomerName, Direction: domain.SortDesc},
		},
		{
			"customer_name alias",
			url.Values{"sortBy": {"customer_name"}, "sortOrder": {"ASC"}},
			domain.SortSpec{Key: domain.SortByCustomerName, Direction: domain.SortAsc},
		},
		{
			"missing order defaults desc",
			url.Values{"sortBy": {"date"}},
			domain.SortSpec{Key: domain.SortByDate, Direction: domain.SortDesc},
		},
		{
			"unknown key falls back",
			url.Values{"sortBy": {"price"}},
			domain.DefaultSort,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, got, _ := ParseParams(tt.values)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseParamsMalformedValuesDegrade(t *testing.T) {
	filter, _, page := ParseParams(url.Values{
		"minAge":    {"abc"},
		"maxAge":    {"25"},
		"startDate": {"not-a-date"},
		"page":      {"zero"},
		"limit":     {"-3"},
	})

	assert.Nil(t, filter.MinAge, "unparseable bound is dropped, not an error")
	require.NotNil(t, filter.MaxAge)
	assert.Equal(t, 25, *filter.MaxAge)
	assert.Nil(t, filter.StartDate)
	assert.Equal(t, DefaultPage, page.Page)
	assert.Equal(t, DefaultLimit, page.Limit)
}

func TestParseParamsDates(t *testing.T) {
	filter, _, _ := ParseParams(url.Values{
		"startDate": {"2024-01-01"},
		"endDate":   {"2024-06-30"},
	})

	require.NotNil(t, filter.StartDate)
	require.NotNil(t, filter.EndDate)
	assert.Equal(t, date("2024-01-01"), *filter.StartDate)
	assert.Equal(t, date("2024-06-30"), *filter.EndDate)
}
