package query

import (
	"math"
	"net/url"
	"strconv"
	"testing"

	"github.com/stretchr/testify/require"
	appErr "github.com/trackr/api/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type widget struct {
	ID   int
	Name string
}

func TestParseSortOrder(t *testing.T) {
	o, err := ParseSortOrder("")
	require.NoError(t, err)
	require.Equal(t, Desc, o)

	o, err = ParseSortOrder("asc")
	require.NoError(t, err)
	require.Equal(t, Asc, o)

	for _, bad := range []string{"ASC", "up", "descending", " desc"} {
		_, err := ParseSortOrder(bad)
		require.True(t, appErr.IsCode(err, appErr.CodeInvalid), bad)
	}
}

func TestParseParamsDefaults(t *testing.T) {
	p, err := ParseParams(url.Values{})
	require.NoError(t, err)
	require.Equal(t, Params{Page: 1, PageSize: 10, Sort: Desc}, p)
	require.Equal(t, 0, p.Offset())
}

func TestParseParams(t *testing.T) {
	p, err := ParseParams(url.Values{
		"searchValue": {"Acme"},
		"page":        {"3"},
		"pageSize":    {"25"},
		"sortOrder":   {"asc"},
	})
	require.NoError(t, err)
	require.Equal(t, "Acme", p.Search)
	require.Equal(t, 50, p.Offset())
	require.Equal(t, Asc, p.Sort)

	p, err = ParseParams(url.Values{"pageSize": {"100"}})
	require.NoError(t, err)
	require.Equal(t, MaxPageSize, p.PageSize)
}

func TestParseParamsOffsetNeverOverflows(t *testing.T) {
	p, err := ParseParams(url.Values{"page": {strconv.Itoa(math.MaxInt / 100)}, "pageSize": {"100"}})
	require.NoError(t, err)
	require.Positive(t, p.Offset())
}

func TestParseParamsRejects(t *testing.T) {
	for _, v := range []url.Values{
		{"page": {"0"}},
		{"page": {"-1"}},
		{"pageSize": {"0"}},
		{"pageSize": {"101"}},
		{"pageSize": {"150"}},
		{"page": {"922337203685477581"}, "pageSize": {"100"}},
		{"page": {"99999999999999999999"}},
		{"page": {"two"}},
		{"sortOrder": {"sideways"}},
	} {
		_, err := ParseParams(v)
		require.True(t, appErr.IsCode(err, appErr.CodeInvalid), "%v", v)
	}
}

type level int

func (l level) valid() bool { return l >= 0 && l <= 2 }

func TestParseFilterDistinguishesZeroFromAbsent(t *testing.T) {
	f, err := ParseFilter[level](url.Values{}, "roleFilter", level.valid)
	require.NoError(t, err)
	require.Nil(t, f)

	f, err = ParseFilter[level](url.Values{"roleFilter": {"0"}}, "roleFilter", level.valid)
	require.NoError(t, err)
	require.NotNil(t, f)
	require.Equal(t, level(0), *f)

	_, err = ParseFilter[level](url.Values{"roleFilter": {"7"}}, "roleFilter", level.valid)
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))

	_, err = ParseFilter[level](url.Values{"roleFilter": {"x"}}, "roleFilter", level.valid)
	require.True(t, appErr.IsCode(err, appErr.CodeInvalid))
}

func TestMapKeepsTotal(t *testing.T) {
	in := Page[int]{Items: []int{1, 2, 3}, TotalItems: 42}
	out := Map(in, func(i int) string { return string(rune('a' + i)) })
	require.Equal(t, []string{"b", "c", "d"}, out.Items)
	require.EqualValues(t, 42, out.TotalItems)

	empty := Map(Page[int]{}, func(i int) int { return i })
	require.NotNil(t, empty.Items)
}

func dryRunDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(postgres.New(postgres.Config{DSN: "host=localhost user=x dbname=x sslmode=disable"}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return db
}

func TestSearchAndOrderSQL(t *testing.T) {
	db := dryRunDB(t)

	sql := db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return tx.Model(&widget{}).Scopes(Search("name", "Ac_ME%"), OrderBy("created_at", Asc)).Find(&[]widget{})
	})
	require.Contains(t, sql, "LOWER(name) LIKE")
	require.Contains(t, sql, `%ac\_me\%%`)
	require.Contains(t, sql, "created_at ASC")
	require.Contains(t, sql, "id ASC")

	sql = db.ToSQL(func(tx *gorm.DB) *gorm.DB {
		return tx.Model(&widget{}).Scopes(Search("name", ""), OrderBy("created_at", Desc)).Find(&[]widget{})
	})
	require.NotContains(t, sql, "LIKE")
	require.Contains(t, sql, "created_at DESC")
}
