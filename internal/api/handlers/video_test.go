package handlers_test

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/streamhive/streamhive/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type videoListPage struct {
	Videos []struct {
		ID    string `json:"id"`
		Title string `json:"title"`
		Views int64  `json:"views"`
		Owner struct {
			ID       string `json:"id"`
			Username string `json:"username"`
		} `json:"owner"`
	} `json:"videos"`
	TotalVideos int64 `json:"totalVideos"`
	TotalPages  int64 `json:"totalPages"`
	Page        int   `json:"page"`
}

func TestVideoHandler_List(t *testing.T) {
	ts := testutil.NewTestServer(t)

	owner, _ := testutil.NewUserBuilder().WithUsername("channelowner").Build(t, ts.DB.DB)
	for i := 0; i < 12; i++ {
		testutil.NewVideoBuilder().
			WithTitle(fmt.Sprintf("Video %02d", i)).
			WithViews(int64(i)).
			Build(t, ts.DB.DB, owner.ID)
	}
	// Unpublished videos never show up in the public listing.
	testutil.NewVideoBuilder().WithTitle("Secret draft").Unpublished().Build(t, ts.DB.DB, owner.ID)

	t.Run("first page with defaults", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/videos"))
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var page videoListPage
		testutil.DecodeData(t, resp, &page)
		assert.Len(t, page.Videos, 10)
		assert.Equal(t, int64(12), page.TotalVideos)
		assert.Equal(t, int64(2), page.TotalPages)
		assert.Equal(t, 1, page.Page)
		assert.Equal(t, "channelowner", page.Videos[0].Owner.Username)
	})

	t.Run("second page holds the remainder", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/videos?page=2"))
		require.NoError(t, err)
		defer resp.Body.Close()

		var page videoListPage
		testutil.DecodeData(t, resp, &page)
		assert.Len(t, page.Videos, 2)
		assert.Equal(t, 2, page.Page)
	})

	t.Run("sort by views ascending", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/videos?sortBy=views&sortType=asc&limit=5"))
		require.NoError(t, err)
		defer resp.Body.Close()

		var page videoListPage
		testutil.DecodeData(t, resp, &page)
		require.Len(t, page.Videos, 5)
		for i := 1; i < len(page.Videos); i++ {
			assert.LessOrEqual(t, page.Videos[i-1].Views, page.Videos[i].Views)
		}
	})

	t.Run("text search filters by title", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/videos?query=video%2005"))
		require.NoError(t, err)
		defer resp.Body.Close()

		var page videoListPage
		testutil.DecodeData(t, resp, &page)
		require.Len(t, page.Videos, 1)
		assert.Equal(t, "Video 05", page.Videos[0].Title)
	})

	t.Run("owner filter", func(t *testing.T) {
		other, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)
		testutil.NewVideoBuilder().WithTitle("Other channel video").Build(t, ts.DB.DB, other.ID)

		resp, err := http.Get(ts.APIURL("/videos?userId=" + other.ID.String()))
		require.NoError(t, err)
		defer resp.Body.Close()

		var page videoListPage
		testutil.DecodeData(t, resp, &page)
		require.Len(t, page.Videos, 1)
		assert.Equal(t, "Other channel video", page.Videos[0].Title)
	})

	t.Run("invalid sort field", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/videos?sortBy=password_hash"))
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertErrorEnvelope(t, resp, http.StatusBadRequest, "Invalid sortBy field")
	})

	t.Run("invalid page", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/videos?page=0"))
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertErrorEnvelope(t, resp, http.StatusBadRequest, "page must be a positive integer")
	})

	t.Run("no matches is a 404", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/videos?query=nosuchvideoanywhere"))
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertErrorEnvelope(t, resp, http.StatusNotFound, "no videos found")
	})
}

func TestVideoHandler_Publish(t *testing.T) {
	ts := testutil.NewTestServer(t)
	_, tokens := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

	t.Run("successful publish", func(t *testing.T) {
		body, contentType := testutil.MultipartBody(t,
			map[string]string{
				"title":       "My first upload",
				"description": "hello",
				"duration":    "93.4",
			},
			map[string]string{
				"videoFile": "clip.mp4",
				"thumbnail": "thumb.png",
			},
		)
		resp := testutil.DoMultipart(t, http.MethodPost, ts.APIURL("/videos"), tokens.AccessToken, body, contentType)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusCreated)

		var video struct {
			ID        string  `json:"id"`
			Title     string  `json:"title"`
			Duration  float64 `json:"duration"`
			VideoFile string  `json:"videoFile"`
			Thumbnail string  `json:"thumbnail"`
		}
		testutil.DecodeData(t, resp, &video)
		assert.Equal(t, "My first upload", video.Title)
		assert.Equal(t, 93.4, video.Duration)
		assert.NotEmpty(t, video.VideoFile)
		assert.NotEmpty(t, video.Thumbnail)
	})

	t.Run("missing video file", func(t *testing.T) {
		body, contentType := testutil.MultipartBody(t,
			map[string]string{"title": "No file"},
			map[string]string{"thumbnail": "thumb.png"},
		)
		resp := testutil.DoMultipart(t, http.MethodPost, ts.APIURL("/videos"), tokens.AccessToken, body, contentType)
		defer resp.Body.Close()
		testutil.AssertErrorEnvelope(t, resp, http.StatusBadRequest, "videoFile file is required")
	})

	t.Run("missing title", func(t *testing.T) {
		body, contentType := testutil.MultipartBody(t,
			map[string]string{},
			map[string]string{"videoFile": "clip.mp4", "thumbnail": "thumb.png"},
		)
		resp := testutil.DoMultipart(t, http.MethodPost, ts.APIURL("/videos"), tokens.AccessToken, body, contentType)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})

	t.Run("unauthenticated", func(t *testing.T) {
		body, contentType := testutil.MultipartBody(t,
			map[string]string{"title": "Nope"},
			map[string]string{"videoFile": "clip.mp4", "thumbnail": "thumb.png"},
		)
		resp := testutil.DoMultipart(t, http.MethodPost, ts.APIURL("/videos"), "", body, contentType)
		defer resp.Body.Close()
		testutil.AssertErrorEnvelope(t, resp, http.StatusUnauthorized, "unauthorized request")
	})
}

func TestVideoHandler_GetAndWatchHistory(t *testing.T) {
	ts := testutil.NewTestServer(t)
	owner, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	video := testutil.NewVideoBuilder().WithTitle("Watched video").Build(t, ts.DB.DB, owner.ID)

	t.Run("anonymous view increments the counter", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/videos/" + video.ID.String()))
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var got struct {
			Title string `json:"title"`
			Views int64  `json:"views"`
		}
		testutil.DecodeData(t, resp, &got)
		assert.Equal(t, "Watched video", got.Title)
		assert.Equal(t, int64(1), got.Views)
	})

	t.Run("authenticated view lands in watch history", func(t *testing.T) {
		_, tokens := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)

		resp := testutil.DoJSON(t, http.MethodGet, ts.APIURL("/videos/"+video.ID.String()), tokens.AccessToken, nil)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		history := testutil.DoJSON(t, http.MethodGet, ts.APIURL("/users/history"), tokens.AccessToken, nil)
		defer history.Body.Close()
		testutil.AssertStatusCode(t, history, http.StatusOK)

		var videos []struct {
			ID string `json:"id"`
		}
		testutil.DecodeData(t, history, &videos)
		require.Len(t, videos, 1)
		assert.Equal(t, video.ID.String(), videos[0].ID)

		// Re-watching does not duplicate the entry.
		again := testutil.DoJSON(t, http.MethodGet, ts.APIURL("/videos/"+video.ID.String()), tokens.AccessToken, nil)
		again.Body.Close()

		history2 := testutil.DoJSON(t, http.MethodGet, ts.APIURL("/users/history"), tokens.AccessToken, nil)
		defer history2.Body.Close()
		var videos2 []struct {
			ID string `json:"id"`
		}
		testutil.DecodeData(t, history2, &videos2)
		assert.Len(t, videos2, 1)
	})

	t.Run("unknown video", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/videos/3f1c8a54-0000-0000-0000-000000000000"))
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertErrorEnvelope(t, resp, http.StatusNotFound, "video not found")
	})

	t.Run("malformed id", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/videos/not-a-uuid"))
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
	})
}

func TestVideoHandler_Ownership(t *testing.T) {
	ts := testutil.NewTestServer(t)

	owner, ownerTokens := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	_, strangerTokens := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	video := testutil.NewVideoBuilder().Build(t, ts.DB.DB, owner.ID)

	t.Run("stranger cannot delete", func(t *testing.T) {
		resp := testutil.DoJSON(t, http.MethodDelete, ts.APIURL("/videos/"+video.ID.String()), strangerTokens.AccessToken, nil)
		defer resp.Body.Close()
		testutil.AssertErrorEnvelope(t, resp, http.StatusForbidden, "you are not allowed to delete this video")
	})

	t.Run("stranger cannot toggle publish", func(t *testing.T) {
		resp := testutil.DoJSON(t, http.MethodPatch, ts.APIURL("/videos/toggle/publish/"+video.ID.String()), strangerTokens.AccessToken, nil)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusForbidden)
	})

	t.Run("owner toggles publish", func(t *testing.T) {
		resp := testutil.DoJSON(t, http.MethodPatch, ts.APIURL("/videos/toggle/publish/"+video.ID.String()), ownerTokens.AccessToken, nil)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var got struct {
			IsPublished bool `json:"isPublished"`
		}
		testutil.DecodeData(t, resp, &got)
		assert.False(t, got.IsPublished)
	})

	t.Run("owner deletes", func(t *testing.T) {
		resp := testutil.DoJSON(t, http.MethodDelete, ts.APIURL("/videos/"+video.ID.String()), ownerTokens.AccessToken, nil)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)
	})
}
