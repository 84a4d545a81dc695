package listing_test

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/solharvest/harvester/internal/listing"
)

// renderPage embeds payload in a listing page the way the rendering
// framework does: escaped into a streaming push inside a script block,
// surrounded by unrelated scripts.
func renderPage(payload string) string {
	escaped := strings.ReplaceAll(payload, `"`, `\"`)
	push := `self.__next_f.push([1,"f:[\"$\",\"div\",null,` + escaped + `]\n"])`
	return `<html><head><script>window.__telemetry = {};</script></head><body>` +
		`<div id="root"></div>` +
		`<script>` + push + `</script>` +
		`<script>console.log("hydrated");</script>` +
		`</body></html>`
}

func wrapContests(records string) string {
	return `{"children":[null,null,null,{"children":[null,null,null,{"contests":[` + records + `]}]}]}`
}

func TestLocatePayload(t *testing.T) {
	payload := wrapContests(`{"contest_id":1}`)
	got, err := listing.LocatePayload(renderPage(payload))
	require.NoError(t, err)
	require.Equal(t, payload, got)
}

func TestLocatePayloadLastMatchWins(t *testing.T) {
	stale := wrapContests(`{"contest_id":1}`)
	fresh := wrapContests(`{"contest_id":2}`)

	escape := func(payload string) string {
		escaped := strings.ReplaceAll(payload, `"`, `\"`)
		return `self.__next_f.push([1,"f:[\"$\",\"div\",null,` + escaped + `]\n"])`
	}
	page := `<html><body>` +
		`<script>` + escape(stale) + `</script>` +
		`<script>` + escape(fresh) + `</script>` +
		`</body></html>`

	got, err := listing.LocatePayload(page)
	require.NoError(t, err)
	require.Equal(t, fresh, got)
}

func TestExtractContestsFromCapturedPage(t *testing.T) {
	page, err := os.ReadFile("testdata/listing_page.html")
	require.NoError(t, err)

	contests, err := listing.ExtractContests(string(page))
	require.NoError(t, err)
	require.Len(t, contests, 2)

	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	first := contests[0]
	require.Equal(t, 472, first.ID())
	require.Equal(t, "2026-07-vaultcraft", first.Label())
	require.Equal(t, "public", first.CodeAccess())
	require.True(t, first.Active(now))
	repo, err := first.RepoName()
	require.NoError(t, err)
	require.Equal(t, "2026-07-vaultcraft", repo)

	second := contests[1]
	require.Equal(t, 455, second.ID())
	require.Equal(t, "private", second.CodeAccess())
	require.False(t, second.Active(now))

	eligible := listing.FilterEligible(contests, now)
	require.Len(t, eligible, 1)
	require.Equal(t, "2026-07-vaultcraft", eligible[0].Label())
}

func TestLocatePayloadMissingMarker(t *testing.T) {
	page := `<html><body><script>self.__next_f.push([1,"something else"])</script></body></html>`
	_, err := listing.LocatePayload(page)
	require.Error(t, err)

	_, err = listing.LocatePayload(`<html><body>no scripts at all</body></html>`)
	require.Error(t, err)
}

func TestExtractContests(t *testing.T) {
	records := `{"contest_id":411,"slug":"example-audit","sponsor":"Example",` +
		`"repo":"https://github.com/code-423n4/2026-08-example",` +
		`"end_time":"2099-01-02T15:04:05Z","code_access":"public"},` +
		`42,` + // malformed record, dropped without failing the page
		`{"contestid":7,"codeAccess":"private","end_time":"2000-01-01T00:00:00Z"}`

	contests, err := listing.ExtractContests(renderPage(wrapContests(records)))
	require.NoError(t, err)
	require.Len(t, contests, 2)

	first := contests[0]
	require.Equal(t, 411, first.ID())
	require.Equal(t, "example-audit", first.Label())
	require.Equal(t, "public", first.CodeAccess())
	require.True(t, first.Active(time.Now()))

	repo, err := first.RepoName()
	require.NoError(t, err)
	require.Equal(t, "2026-08-example", repo)

	second := contests[1]
	require.Equal(t, 7, second.ID())
	require.Equal(t, "private", second.CodeAccess())
	require.Equal(t, "contest-7", second.Label())
	require.False(t, second.Active(time.Now()))
}

func TestExtractContestsShapeDrift(t *testing.T) {
	// too few children to descend the fixed path
	_, err := listing.ExtractContests(renderPage(`{"children":[null,null]}`))
	require.Error(t, err)

	// path present but no contests array at its end
	_, err = listing.ExtractContests(renderPage(
		`{"children":[null,null,null,{"children":[null,null,null,{"chart":[]}]}]}`))
	require.Error(t, err)
}

func TestRepoNameVariants(t *testing.T) {
	name := func(ref string) string {
		c := listing.Contest{Repo: &ref}
		got, err := c.RepoName()
		require.NoError(t, err)
		return got
	}

	require.Equal(t, "2026-08-example", name("https://github.com/code-423n4/2026-08-example"))
	require.Equal(t, "2026-08-example", name("https://github.com/code-423n4/2026-08-example/"))
	require.Equal(t, "2026-08-example", name("https://github.com/code-423n4/2026-08-example.git"))
	require.Equal(t, "bare-name", name("bare-name"))

	var empty listing.Contest
	_, err := empty.RepoName()
	require.Error(t, err)
}
