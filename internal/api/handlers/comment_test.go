package handlers_test

import (
	"net/http"
	"testing"

	"github.com/streamhive/streamhive/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type commentListPage struct {
	Comments []struct {
		ID      string `json:"id"`
		Content string `json:"content"`
		Owner   struct {
			Username string `json:"username"`
		} `json:"owner"`
	} `json:"comments"`
	TotalComments int64 `json:"totalComments"`
	TotalPages    int64 `json:"totalPages"`
	Page          int   `json:"page"`
}

func TestCommentHandler_ListByVideo(t *testing.T) {
	ts := testutil.NewTestServer(t)

	owner, _ := testutil.NewUserBuilder().Build(t, ts.DB.DB)
	video := testutil.NewVideoBuilder().Build(t, ts.DB.DB, owner.ID)
	for i := 0; i < 3; i++ {
		testutil.NewCommentBuilder().Build(t, ts.DB.DB, owner.ID, video.ID)
	}

	t.Run("paginated listing", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/comments/" + video.ID.String() + "?limit=2"))
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var page commentListPage
		testutil.DecodeData(t, resp, &page)
		assert.Len(t, page.Comments, 2)
		assert.Equal(t, int64(3), page.TotalComments)
		assert.Equal(t, int64(2), page.TotalPages)
	})

	t.Run("video without comments returns an empty page", func(t *testing.T) {
		empty := testutil.NewVideoBuilder().Build(t, ts.DB.DB, owner.ID)

		resp, err := http.Get(ts.APIURL("/comments/" + empty.ID.String()))
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var page commentListPage
		testutil.DecodeData(t, resp, &page)
		assert.Empty(t, page.Comments)
		assert.Equal(t, int64(0), page.TotalComments)
	})

	t.Run("sort field outside allow-list", func(t *testing.T) {
		resp, err := http.Get(ts.APIURL("/comments/" + video.ID.String() + "?sortBy=content"))
		require.NoError(t, err)
		defer resp.Body.Close()
		testutil.AssertErrorEnvelope(t, resp, http.StatusBadRequest, "Invalid sortBy field")
	})
}

func TestCommentHandler_Lifecycle(t *testing.T) {
	ts := testutil.NewTestServer(t)

	owner, ownerTokens := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	_, strangerTokens := testutil.NewUserBuilder().BuildAndAuthenticate(t, ts)
	video := testutil.NewVideoBuilder().Build(t, ts.DB.DB, owner.ID)

	var commentID string

	t.Run("add", func(t *testing.T) {
		resp := testutil.DoJSON(t, http.MethodPost, ts.APIURL("/comments/"+video.ID.String()), ownerTokens.AccessToken, map[string]string{
			"content": "first!",
		})
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusCreated)

		var created struct {
			ID      string `json:"id"`
			Content string `json:"content"`
		}
		testutil.DecodeData(t, resp, &created)
		assert.Equal(t, "first!", created.Content)
		commentID = created.ID
	})

	t.Run("add to unknown video", func(t *testing.T) {
		resp := testutil.DoJSON(t, http.MethodPost, ts.APIURL("/comments/6a1b2c3d-0000-0000-0000-000000000000"), ownerTokens.AccessToken, map[string]string{
			"content": "into the void",
		})
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusNotFound)
	})

	t.Run("stranger cannot update", func(t *testing.T) {
		require.NotEmpty(t, commentID)
		resp := testutil.DoJSON(t, http.MethodPatch, ts.APIURL("/comments/c/"+commentID), strangerTokens.AccessToken, map[string]string{
			"content": "hijacked",
		})
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusForbidden)
	})

	t.Run("owner updates", func(t *testing.T) {
		resp := testutil.DoJSON(t, http.MethodPatch, ts.APIURL("/comments/c/"+commentID), ownerTokens.AccessToken, map[string]string{
			"content": "edited",
		})
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		var updated struct {
			Content string `json:"content"`
		}
		testutil.DecodeData(t, resp, &updated)
		assert.Equal(t, "edited", updated.Content)
	})

	t.Run("owner deletes", func(t *testing.T) {
		resp := testutil.DoJSON(t, http.MethodDelete, ts.APIURL("/comments/c/"+commentID), ownerTokens.AccessToken, nil)
		defer resp.Body.Close()
		testutil.AssertStatusCode(t, resp, http.StatusOK)

		gone := testutil.DoJSON(t, http.MethodDelete, ts.APIURL("/comments/c/"+commentID), ownerTokens.AccessToken, nil)
		defer gone.Body.Close()
		testutil.AssertStatusCode(t, gone, http.StatusNotFound)
	})
}
