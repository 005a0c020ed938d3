package query

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var bookOpts = Options{
	DefaultSort: "createdAt",
	Allowed:     []string{"createdAt", "title", "year"},
}

func TestParse_Defaults(t *testing.T) {
	p, err := Parse("", "", "", bookOpts)
	require.NoError(t, err)

	assert.Equal(t, 0, p.Skip)
	assert.Equal(t, 10, p.Limit)
	assert.Equal(t, "createdAt", p.SortField)
	assert.False(t, p.Desc)
	assert.Equal(t, 1, p.SortDirection())
}

func TestParse_DescendingDefault(t *testing.T) {
	opts := Options{
		DefaultSort: "timestamp",
		DefaultDesc: true,
		Allowed:     []string{"timestamp", "action", "entityType"},
	}

	p, err := Parse("", "", "", opts)
	require.NoError(t, err)
	assert.Equal(t, "timestamp", p.SortField)
	assert.Equal(t, -1, p.SortDirection())
}

func TestParse_Skip(t *testing.T) {
	tests := []struct {
		name    string
		skip    string
		want    int
		wantErr error
	}{
		{"valid", "25", 25, nil},
		{"zero", "0", 0, nil},
		{"negative", "-1", 0, ErrInvalidSkip},
		{"non numeric", "abc", 0, ErrInvalidSkip},
		{"float", "1.5", 0, ErrInvalidSkip},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse(tt.skip, "", "", bookOpts)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Skip)
		})
	}
}

func TestParse_Limit(t *testing.T) {
	tests := []struct {
		name    string
		limit   string
		want    int
		wantErr error
	}{
		{"valid", "50", 50, nil},
		{"max", "100", 100, nil},
		{"min", "1", 1, nil},
		{"zero", "0", 0, ErrInvalidLimit},
		{"over max", "101", 0, ErrInvalidLimit},
		{"negative", "-10", 0, ErrInvalidLimit},
		{"non numeric", "ten", 0, ErrInvalidLimit},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Parse("", tt.limit, "", bookOpts)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, p.Limit)
		})
	}
}

func TestParse_Sort(t *testing.T) {
	t.Run("ascending", func(t *testing.T) {
		p, err := Parse("", "", "title", bookOpts)
		require.NoError(t, err)
		assert.Equal(t, "title", p.SortField)
		assert.False(t, p.Desc)
	})

	t.Run("descending prefix", func(t *testing.T) {
		p, err := Parse("", "", "-title", bookOpts)
		require.NoError(t, err)
		assert.Equal(t, "title", p.SortField)
		assert.True(t, p.Desc)
		assert.Equal(t, -1, p.SortDirection())
	})

	t.Run("field outside allow-list", func(t *testing.T) {
		_, err := Parse("", "", "price", bookOpts)
		assert.ErrorIs(t, err, ErrInvalidSort)
	})

	t.Run("descending field outside allow-list", func(t *testing.T) {
		_, err := Parse("", "", "-price", bookOpts)
		assert.ErrorIs(t, err, ErrInvalidSort)
	})

	t.Run("bare dash", func(t *testing.T) {
		_, err := Parse("", "", "-", bookOpts)
		assert.ErrorIs(t, err, ErrInvalidSort)
	})
}

func TestParse_CombinedValidRequest(t *testing.T) {
	p, err := Parse("20", "5", "-year", bookOpts)
	require.NoError(t, err)

	assert.Equal(t, Params{Skip: 20, Limit: 5, SortField: "year", Desc: true}, p)
}
