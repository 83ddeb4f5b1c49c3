package testutil

import (
	"bytes"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/streamhive/streamhive/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// UserBuilder creates test users with a builder pattern
type UserBuilder struct {
	username string
	email    string
	fullName string
	password string
}

// NewUserBuilder creates a new UserBuilder with default values
func NewUserBuilder() *UserBuilder {
	suffix := uuid.New().String()[:8]
	return &UserBuilder{
		username: fmt.Sprintf("testuser_%s", suffix),
		email:    fmt.Sprintf("testuser_%s@example.com", suffix),
		fullName: "Test User",
		password: "testpassword123",
	}
}

func (b *UserBuilder) WithUsername(username string) *UserBuilder {
	b.username = username
	return b
}

func (b *UserBuilder) WithEmail(email string) *UserBuilder {
	b.email = email
	return b
}

func (b *UserBuilder) WithPassword(password string) *UserBuilder {
	b.password = password
	return b
}

// Build creates the user directly in the database and returns the user with
// the raw password
func (b *UserBuilder) Build(t *testing.T, db *gorm.DB) (*domain.User, string) {
	t.Helper()

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(b.password), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &domain.User{
		ID:           uuid.New(),
		Username:     b.username,
		Email:        b.email,
		FullName:     b.fullName,
		Avatar:       "http://media.test/uploads/avatar.png",
		PasswordHash: string(hashedPassword),
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}

	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	return user, b.password
}

// AuthTokens is a signed token pair returned by login
type AuthTokens struct {
	AccessToken  string
	RefreshToken string
}

// BuildAndAuthenticate registers the user through the API and logs in,
// returning the created user and its token pair. Tests authenticate with
// the Authorization header since the secure auth cookies do not travel
// over the plain HTTP test server.
func (b *UserBuilder) BuildAndAuthenticate(t *testing.T, ts *TestServer) (*domain.User, *AuthTokens) {
	t.Helper()

	body, contentType := MultipartBody(t,
		map[string]string{
			"username": b.username,
			"email":    b.email,
			"fullName": b.fullName,
			"password": b.password,
		},
		map[string]string{
			"avatar": "avatar.png",
		},
	)

	resp, err := http.Post(ts.APIURL("/users/register"), contentType, body)
	if err != nil {
		t.Fatalf("failed to register user: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("unexpected register status: %d", resp.StatusCode)
	}

	loginResp := PostJSON(t, http.DefaultClient, ts.APIURL("/users/login"), map[string]string{
		"username": b.username,
		"password": b.password,
	})
	defer loginResp.Body.Close()
	if loginResp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected login status: %d", loginResp.StatusCode)
	}

	var loginData struct {
		User         domain.User `json:"user"`
		AccessToken  string      `json:"accessToken"`
		RefreshToken string      `json:"refreshToken"`
	}
	DecodeData(t, loginResp, &loginData)

	return &loginData.User, &AuthTokens{
		AccessToken:  loginData.AccessToken,
		RefreshToken: loginData.RefreshToken,
	}
}

// MultipartBody assembles a multipart form with string fields and small
// placeholder files keyed by form field name.
func MultipartBody(t *testing.T, fields map[string]string, files map[string]string) (io.Reader, string) {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			t.Fatalf("failed to write form field %s: %v", name, err)
		}
	}
	for field, filename := range files {
		part, err := writer.CreateFormFile(field, filename)
		if err != nil {
			t.Fatalf("failed to create form file %s: %v", field, err)
		}
		if _, err := part.Write([]byte("test-file-content")); err != nil {
			t.Fatalf("failed to write form file %s: %v", field, err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("failed to close multipart writer: %v", err)
	}

	return &buf, writer.FormDataContentType()
}

// VideoBuilder creates test videos directly in the database
type VideoBuilder struct {
	title       string
	description string
	duration    float64
	views       int64
	published   bool
}

func NewVideoBuilder() *VideoBuilder {
	return &VideoBuilder{
		title:       fmt.Sprintf("Test Video %s", uuid.New().String()[:8]),
		description: "a test video",
		duration:    120.5,
		published:   true,
	}
}

func (b *VideoBuilder) WithTitle(title string) *VideoBuilder {
	b.title = title
	return b
}

func (b *VideoBuilder) WithViews(views int64) *VideoBuilder {
	b.views = views
	return b
}

func (b *VideoBuilder) Unpublished() *VideoBuilder {
	b.published = false
	return b
}

func (b *VideoBuilder) Build(t *testing.T, db *gorm.DB, ownerID uuid.UUID) *domain.Video {
	t.Helper()

	video := &domain.Video{
		ID:          uuid.New(),
		OwnerID:     ownerID,
		VideoFile:   "http://media.test/uploads/video.mp4",
		Thumbnail:   "http://media.test/uploads/thumb.png",
		Title:       b.title,
		Description: b.description,
		Duration:    b.duration,
		Views:       b.views,
		IsPublished: b.published,
	}

	if err := db.Create(video).Error; err != nil {
		t.Fatalf("failed to create video: %v", err)
	}
	return video
}

// CommentBuilder creates test comments directly in the database
type CommentBuilder struct {
	content string
}

func NewCommentBuilder() *CommentBuilder {
	return &CommentBuilder{content: "a test comment"}
}

func (b *CommentBuilder) WithContent(content string) *CommentBuilder {
	b.content = content
	return b
}

func (b *CommentBuilder) Build(t *testing.T, db *gorm.DB, ownerID, videoID uuid.UUID) *domain.Comment {
	t.Helper()

	comment := &domain.Comment{
		ID:      uuid.New(),
		Content: b.content,
		VideoID: videoID,
		OwnerID: ownerID,
	}
	if err := db.Create(comment).Error; err != nil {
		t.Fatalf("failed to create comment: %v", err)
	}
	return comment
}

// PostBuilder creates test community posts directly in the database
type PostBuilder struct {
	content string
}

func NewPostBuilder() *PostBuilder {
	return &PostBuilder{content: "a test post"}
}

func (b *PostBuilder) WithContent(content string) *PostBuilder {
	b.content = content
	return b
}

func (b *PostBuilder) Build(t *testing.T, db *gorm.DB, ownerID uuid.UUID) *domain.CommunityPost {
	t.Helper()

	post := &domain.CommunityPost{
		ID:      uuid.New(),
		Content: b.content,
		OwnerID: ownerID,
	}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("failed to create post: %v", err)
	}
	return post
}
