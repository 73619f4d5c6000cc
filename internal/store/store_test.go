package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/grant-parser/pkg/types"
)

func str(s string) *string { return &s }

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(types.StoreConfig{DBPath: filepath.Join(t.TempDir(), "grants.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func record(id, title string, inventors ...string) types.GrantRecord {
	if inventors == nil {
		inventors = []string{}
	}
	return types.GrantRecord{
		GrantID:    str(id),
		Kind:       str("B2"),
		Title:      str(title),
		Abstract:   str("An abstract about " + title + "."),
		NumClaims:  1,
		ClaimsText: []string{"1. A " + title + "."},
		Inventors:  inventors,
	}
}

func TestInsertAndCount(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)

	require.NoError(t, s.Insert(ctx, record("US0000001", "widget")))
	require.NoError(t, s.Insert(ctx, record("US0000002", "gadget")))

	n, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestInsertRecordWithNilFields(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	rec := types.GrantRecord{ClaimsText: []string{}, Inventors: []string{}}
	require.NoError(t, s.Insert(ctx, rec))

	got, err := s.Retrieve(ctx, QueryOptions{Kind: ""})
	require.NoError(t, err)
	require.Len(t, got, 1)

	assert.Nil(t, got[0].GrantID)
	assert.Nil(t, got[0].Kind)
	assert.Nil(t, got[0].Title)
	assert.Nil(t, got[0].Abstract)
	assert.NotNil(t, got[0].ClaimsText, "multi-value fields round-trip as empty, not nil")
	assert.NotNil(t, got[0].Inventors)
	assert.Empty(t, got[0].ClaimsText)
}

func TestInsertKeepsDuplicateGrantIDs(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, record("US0000001", "widget")))
	require.NoError(t, s.Insert(ctx, record("US0000001", "widget")))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n, "the archive mirrors the parse output, duplicates included")
}

func TestRetrieveFullText(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, record("US0000001", "battery separator")))
	require.NoError(t, s.Insert(ctx, record("US0000002", "hinge assembly")))

	got, err := s.Retrieve(ctx, QueryOptions{Query: "separator"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "US0000001", *got[0].GrantID)

	got, err = s.Retrieve(ctx, QueryOptions{Query: "turbine"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRetrieveMatchesClaimText(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	rec := record("US0000003", "widget")
	rec.ClaimsText = []string{"1. A polyethylene substrate."}
	require.NoError(t, s.Insert(ctx, rec))

	got, err := s.Retrieve(ctx, QueryOptions{Query: "polyethylene"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "US0000003", *got[0].GrantID)
}

func TestRetrieveByKind(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	utility := record("US0000001", "widget")
	design := record("USD000002", "ornament")
	design.Kind = str("S1")
	require.NoError(t, s.Insert(ctx, utility))
	require.NoError(t, s.Insert(ctx, design))

	got, err := s.Retrieve(ctx, QueryOptions{Kind: "S1"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "USD000002", *got[0].GrantID)
}

func TestRetrieveByInventor(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, record("US0000001", "widget", "Kenji Sato", "Yuki Mori")))
	require.NoError(t, s.Insert(ctx, record("US0000002", "gadget", "Hana Tanaka")))

	got, err := s.Retrieve(ctx, QueryOptions{Inventor: "Yuki Mori"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "US0000001", *got[0].GrantID)

	// Name matching is exact, not substring.
	got, err = s.Retrieve(ctx, QueryOptions{Inventor: "Mori"})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestRetrieveCombinedFilters(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	match := record("US0000001", "battery separator", "Kenji Sato")
	wrongKind := record("USD000002", "battery separator", "Kenji Sato")
	wrongKind.Kind = str("S1")
	wrongInventor := record("US0000003", "battery separator", "Hana Tanaka")
	require.NoError(t, s.Insert(ctx, match))
	require.NoError(t, s.Insert(ctx, wrongKind))
	require.NoError(t, s.Insert(ctx, wrongInventor))

	got, err := s.Retrieve(ctx, QueryOptions{Query: "battery", Kind: "B2", Inventor: "Kenji Sato"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "US0000001", *got[0].GrantID)
}

func TestRetrieveMaxResults(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Insert(ctx, record("US000000"+string(rune('1'+i)), "widget")))
	}

	got, err := s.Retrieve(ctx, QueryOptions{Kind: "B2", MaxResults: 3})
	require.NoError(t, err)
	assert.Len(t, got, 3)

	// Structured queries come back in insertion order.
	assert.Equal(t, "US0000001", *got[0].GrantID)
	assert.Equal(t, "US0000003", *got[2].GrantID)
}

func TestRetrieveRoundTripsFields(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	rec := record("US0000009", "separator", "Kenji Sato")
	rec.NumClaims = 2
	rec.ClaimsText = []string{"1. A separator.", "2. The separator of claim 1."}
	rec.NumCitations = 3
	rec.CitationsExaminerCount = 2
	rec.CitationsApplicantCount = 1
	require.NoError(t, s.Insert(ctx, rec))

	got, err := s.Retrieve(ctx, QueryOptions{Kind: "B2"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, rec, got[0])
}

func TestRetrieveCorruptedRow(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	require.NoError(t, s.Insert(ctx, record("US0000001", "widget")))
	_, err := s.db.ExecContext(ctx, `UPDATE grants SET claims = 'not json'`)
	require.NoError(t, err)

	_, err = s.Retrieve(ctx, QueryOptions{Kind: "B2"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decoding stored claims")
}

func TestQueryOptionsIsEmpty(t *testing.T) {
	assert.True(t, QueryOptions{}.IsEmpty())
	assert.True(t, QueryOptions{MaxResults: 10}.IsEmpty())
	assert.False(t, QueryOptions{Query: "separator"}.IsEmpty())
	assert.False(t, QueryOptions{Kind: "B2"}.IsEmpty())
	assert.False(t, QueryOptions{Inventor: "Kenji Sato"}.IsEmpty())
}
