package musicbrainz

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"helictag/internal/release"
	"helictag/internal/tagkey"
)

const baseURL = "https://musicbrainz.org/ws/2"

// Client is the MusicBrainz web service v2 client (spec.md §4.10, §6),
// built on resty.Client the way
// kirbs-btw-spotify-playlist-dataset/main.go builds its Spotify client:
// one shared resty.Client, request-scoped query params, JSON unmarshaled
// from the response body.
type Client struct {
	http      *resty.Client
	cache     *Cache
	userAgent string
	logger    *log.Logger
}

// NewClient builds a Client with the given contact User-Agent (MusicBrainz
// requires an identifying UA; spec.md §6 treats it as a config key, not a
// secret) and cache directory.
func NewClient(userAgent string, cache *Cache, logger *log.Logger) *Client {
	http := resty.New().
		SetBaseURL(baseURL).
		SetHeader("User-Agent", userAgent).
		SetTimeout(15 * time.Second).
		SetRetryCount(2)
	return &Client{http: http, cache: cache, userAgent: userAgent, logger: logger}
}

// includeParams lists every relation/entity MusicBrainz should expand on a
// lookup, per spec.md §4.10: "artists, recordings, release-groups, labels,
// artist credits, aliases, recording-/work-/artist-/url-relations".
const includeParams = "artists+recordings+release-groups+labels+artist-credits+aliases+recording-rels+work-rels+artist-rels+url-rels"

// wireRelease mirrors the subset of the MusicBrainz JSON release schema
// this client reads (spec.md §6: "exact URL construction is the client
// library's responsibility" — we still need a minimal shape to decode
// into before projecting to our own Release).
type wireRelation struct {
	Type       string   `json:"type"`
	Attributes []string `json:"attributes"`
	Artist     struct {
		Name string `json:"name"`
	} `json:"artist"`
}

// toPerformerCredits projects relations into the domain PerformerCredit
// shape (spec.md §4.11): an instrument attribute names the involvement
// more precisely than the bare relation type ("vocal", "instrument",
// "producer", ...), so it wins when present.
func toPerformerCredits(rels []wireRelation) []tagkey.PerformerCredit {
	var out []tagkey.PerformerCredit
	for _, r := range rels {
		if r.Artist.Name == "" {
			continue
		}
		involvement := r.Type
		if len(r.Attributes) > 0 {
			involvement = r.Attributes[0]
		}
		out = append(out, tagkey.PerformerCredit{Involvement: involvement, Involvee: r.Artist.Name})
	}
	return out
}

type wireRelease struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Date         string `json:"date"`
	Barcode      string `json:"barcode"`
	ArtistCredit []struct {
		Name string `json:"name"`
	} `json:"artist-credit"`
	LabelInfo []struct {
		CatalogNumber string `json:"catalog-number"`
		Label         struct {
			Name string `json:"name"`
		} `json:"label"`
	} `json:"label-info"`
	Relations []wireRelation `json:"relations"`
	Media     []struct {
		Format   string `json:"format"`
		Position int    `json:"position"`
		Tracks   []struct {
			Number    string `json:"number"`
			Title     string `json:"title"`
			Length    int    `json:"length"` // milliseconds
			Recording struct {
				ID           string `json:"id"`
				ArtistCredit []struct {
					Name string `json:"name"`
				} `json:"artist-credit"`
				Relations []wireRelation `json:"relations"`
			} `json:"recording"`
		} `json:"tracks"`
	} `json:"media"`
}

func (w *wireRelease) toRelease() *Release {
	r := &Release{ID: w.ID, Title: w.Title, Date: w.Date, Barcode: w.Barcode}
	if len(w.ArtistCredit) > 0 {
		r.ArtistCredit = joinNames(w.ArtistCredit)
	}
	if len(w.LabelInfo) > 0 {
		r.Label = w.LabelInfo[0].Label.Name
		r.CatalogNum = w.LabelInfo[0].CatalogNumber
	}
	r.Performers = toPerformerCredits(w.Relations)
	for _, m := range w.Media {
		medium := Medium{Format: m.Format, Position: m.Position}
		for _, t := range m.Tracks {
			artist := t.Recording.ArtistCredit
			track := Track{
				Title:       t.Title,
				Number:      t.Number,
				Length:      time.Duration(t.Length) * time.Millisecond,
				RecordingID: t.Recording.ID,
				Performers:  toPerformerCredits(t.Recording.Relations),
			}
			if len(artist) > 0 {
				track.ArtistCredit = joinNames(artist)
			}
			medium.Tracks = append(medium.Tracks, track)
		}
		r.Media = append(r.Media, medium)
	}
	if len(r.Media) > 0 {
		r.Format = r.Media[0].Format
	}
	return r
}

func joinNames(credits []struct{ Name string `json:"name"` }) string {
	names := make([]string, len(credits))
	for i, c := range credits {
		names[i] = c.Name
	}
	return strings.Join(names, ", ")
}

// LookupByID fetches a single release by MBID, cache-read-through on
// release/{id} (spec.md §4.10). Errors here are fatal to the candidate
// attempt in progress.
func (c *Client) LookupByID(ctx context.Context, mbid string) (*Release, error) {
	if cached, err := c.cache.GetRelease(mbid); err == nil {
		return cached, nil
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("inc", includeParams).
		SetQueryParam("fmt", "json").
		Get("/release/" + mbid)
	if err != nil {
		return nil, fmt.Errorf("musicbrainz: lookup %s: %w", mbid, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("musicbrainz: lookup %s: status %d", mbid, resp.StatusCode())
	}

	var w wireRelease
	if err := json.Unmarshal(resp.Body(), &w); err != nil {
		return nil, fmt.Errorf("musicbrainz: decode %s: %w", mbid, err)
	}
	r := w.toRelease()

	if err := c.cache.PutRelease(r); err != nil {
		c.logf("cache write for release %s failed: %v", mbid, err)
	}
	return r, nil
}

// LookupByReleaseGroupID expands a release group into its member releases,
// fetching each by id (spec.md §4.10). Individual fetch failures are
// logged and skipped — the caller gets at least the successes.
func (c *Client) LookupByReleaseGroupID(ctx context.Context, rgid string) ([]*Release, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("release-group", rgid).
		SetQueryParam("fmt", "json").
		Get("/release")
	if err != nil {
		return nil, fmt.Errorf("musicbrainz: release-group %s: %w", rgid, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("musicbrainz: release-group %s: status %d", rgid, resp.StatusCode())
	}

	var listing struct {
		Releases []struct {
			ID string `json:"id"`
		} `json:"releases"`
	}
	if err := json.Unmarshal(resp.Body(), &listing); err != nil {
		return nil, fmt.Errorf("musicbrainz: decode release-group %s: %w", rgid, err)
	}

	var out []*Release
	for _, entry := range listing.Releases {
		r, err := c.LookupByID(ctx, entry.ID)
		if err != nil {
			c.logf("release-group %s: skipping release %s: %v", rgid, entry.ID, err)
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

// SearchQuery is the set of optional search fields spec.md §4.10 lists;
// each contributes to the Lucene-style query string only when non-zero.
type SearchQuery struct {
	TrackCount    int
	Artist        string
	ReleaseTitle  string
	CatalogNumber string
	Barcode       string
}

func (q SearchQuery) toQueryString() string {
	var parts []string
	if q.TrackCount > 0 {
		parts = append(parts, fmt.Sprintf("tracks:%d", q.TrackCount))
	}
	if q.Artist != "" {
		parts = append(parts, fmt.Sprintf("artist:%q", q.Artist))
	}
	if q.ReleaseTitle != "" {
		parts = append(parts, fmt.Sprintf("release:%q", q.ReleaseTitle))
	}
	if q.CatalogNumber != "" {
		parts = append(parts, fmt.Sprintf("catno:%q", q.CatalogNumber))
	}
	if q.Barcode != "" {
		parts = append(parts, fmt.Sprintf("barcode:%q", q.Barcode))
	}
	return strings.Join(parts, " AND ")
}

// Search executes a release search, limit in [1,100], paged by offset;
// cache-read-through keyed by SearchKey (spec.md §4.10).
func (c *Client) Search(ctx context.Context, q SearchQuery, limit, offset int) (*SearchResult, error) {
	if limit < 1 || limit > 100 {
		limit = 25
	}
	queryString := q.toQueryString()
	key := SearchKey(queryString, limit, offset)

	if cached, err := c.cache.GetSearch(key); err == nil {
		return cached, nil
	}

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("query", queryString).
		SetQueryParam("limit", strconv.Itoa(limit)).
		SetQueryParam("offset", strconv.Itoa(offset)).
		SetQueryParam("fmt", "json").
		Get("/release")
	if err != nil {
		return nil, fmt.Errorf("musicbrainz: search: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("musicbrainz: search: status %d", resp.StatusCode())
	}

	var listing struct {
		Count    int           `json:"count"`
		Releases []wireRelease `json:"releases"`
	}
	if err := json.Unmarshal(resp.Body(), &listing); err != nil {
		return nil, fmt.Errorf("musicbrainz: decode search: %w", err)
	}

	result := &SearchResult{Count: listing.Count}
	for i := range listing.Releases {
		result.Releases = append(result.Releases, listing.Releases[i].toRelease())
	}

	if err := c.cache.PutSearch(key, result); err != nil {
		c.logf("cache write for search %q failed: %v", queryString, err)
	}
	return result, nil
}

// SearchBySimilarity implements spec.md §4.10's "by similarity" primitive:
// if the local release has an MBID, fetch by id; otherwise build a search
// query from available hints, rank results by ReleaseSimilarity against
// local, and return up to limit candidates.
func (c *Client) SearchBySimilarity(ctx context.Context, local release.Like, weights release.Weights, limit int) (*release.Collection[*Release], error) {
	collection := release.NewCollection[*Release]()

	if mbid := local.MusicBrainzReleaseID(); mbid != nil && *mbid != "" {
		r, err := c.LookupByID(ctx, *mbid)
		if err != nil {
			return nil, err
		}
		sim := release.Detect(local, r, weights)
		collection.Insert(r, sim, weights)
		return collection, nil
	}

	q := SearchQuery{TrackCount: len(local.Tracks())}
	if v := local.ReleaseArtist(); v != nil {
		q.Artist = *v
	}
	if v := local.ReleaseTitle(); v != nil {
		q.ReleaseTitle = *v
	}
	if v := local.CatalogNumber(); v != nil {
		q.CatalogNumber = *v
	}
	if v := local.Barcode(); v != nil {
		q.Barcode = *v
	}

	result, err := c.Search(ctx, q, 25, 0)
	if err != nil {
		return nil, fmt.Errorf("musicbrainz: search fallback: %w", err)
	}

	for _, r := range result.Releases {
		sim := release.Detect(local, r, weights)
		collection.Insert(r, sim, weights)
	}
	collection.Truncate(limit)
	return collection, nil
}

func (c *Client) logf(format string, args ...any) {
	if c.logger != nil {
		c.logger.Printf(format, args...)
	}
}
