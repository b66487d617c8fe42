package routes

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"inkwell/inkwell/controllers"
	"inkwell/inkwell/middlewares"
	"inkwell/inkwell/sources/psql"
	"inkwell/inkwell/sources/psql/dao"
	"inkwell/inkwell/sources/psql/models"
	"inkwell/inkwell/sources/uploads"
	"inkwell/inkwell/utils/logging"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type testApp struct {
	router    chi.Router
	db        *gorm.DB
	uploadDir string
}

// newTestApp wires the full application the way main does, against an
// in-memory store and a temp upload dir.
func newTestApp(t *testing.T) *testApp {
	logging.InitTestLogger()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, psql.Migrate(context.Background(), db))

	userDAO := dao.NewUserDAO(db)
	postDAO := dao.NewPostDAO(db)
	sessionDAO := dao.NewSessionDAO(db)
	store, err := uploads.NewStore(t.TempDir())
	require.NoError(t, err)

	r := chi.NewRouter()
	r.Use(middlewares.Session(sessionDAO, userDAO))
	HomeRoutes(r, controllers.NewPostsController(postDAO, store))
	AuthRoutes(r, controllers.NewAuthController(userDAO, sessionDAO))
	PostRoutes(r, controllers.NewPostsController(postDAO, store))
	HealthRoutes(r, controllers.NewHealthController())

	return &testApp{router: r, db: db, uploadDir: store.Dir()}
}

func (app *testApp) do(req *http.Request, cookie *http.Cookie) *httptest.ResponseRecorder {
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	app.router.ServeHTTP(rr, req)
	return rr
}

func formReq(path string, values url.Values) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func (app *testApp) register(t *testing.T, name, email, password string) {
	rr := app.do(formReq("/register", url.Values{
		"name":     {name},
		"email":    {email},
		"password": {password},
		"confirmP": {password},
	}), nil)
	require.Equal(t, http.StatusFound, rr.Code)
	require.Equal(t, "/login", rr.Header().Get("Location"))
}

func (app *testApp) login(t *testing.T, email, password string) *http.Cookie {
	rr := app.do(formReq("/login", url.Values{
		"email":    {email},
		"password": {password},
	}), nil)
	require.Equal(t, http.StatusFound, rr.Code)
	require.Equal(t, "/", rr.Header().Get("Location"))
	for _, c := range rr.Result().Cookies() {
		if c.Name == middlewares.CookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie set on login")
	return nil
}

func (app *testApp) firstPost(t *testing.T) *models.Post {
	var post models.Post
	require.NoError(t, app.db.First(&post).Error)
	return &post
}

func TestRegisterLoginCreateAndViewPost(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "alice", "a@x.com", "pw123")
	cookie := app.login(t, "a@x.com", "pw123")

	rr := app.do(formReq("/post", url.Values{
		"title":   {"Hi"},
		"content": {"World"},
	}), cookie)
	require.Equal(t, http.StatusFound, rr.Code)
	require.Equal(t, "/", rr.Header().Get("Location"))

	post := app.firstPost(t)
	rr = app.do(httptest.NewRequest("GET", "/posts/"+strconv.Itoa(post.ID), nil), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	body := rr.Body.String()
	assert.Contains(t, body, "Hi")
	assert.Contains(t, body, "alice")
}

func TestRegisterPasswordMismatchIsRejected(t *testing.T) {
	app := newTestApp(t)
	rr := app.do(formReq("/register", url.Values{
		"name":     {"alice"},
		"email":    {"a@x.com"},
		"password": {"pw123"},
		"confirmP": {"different"},
	}), nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "Passwords do not match!")

	var count int64
	app.db.Model(&models.User{}).Count(&count)
	assert.Zero(t, count)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "alice", "a@x.com", "pw123")

	for _, form := range []url.Values{
		{"email": {"a@x.com"}, "password": {"wrong"}},
		{"email": {"nobody@x.com"}, "password": {"pw123"}},
	} {
		rr := app.do(formReq("/login", form), nil)
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Contains(t, rr.Body.String(), "Invalid email or password")
	}

	var count int64
	app.db.Model(&models.Session{}).Count(&count)
	assert.Zero(t, count)
}

func TestProtectedRoutesRedirectAnonymous(t *testing.T) {
	app := newTestApp(t)
	for _, path := range []string{"/post", "/myposts", "/post/edit/1"} {
		rr := app.do(httptest.NewRequest("GET", path, nil), nil)
		assert.Equal(t, http.StatusFound, rr.Code, path)
		assert.Equal(t, "/login", rr.Header().Get("Location"), path)
	}
}

func TestEditByNonOwnerIsRejected(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "alice", "a@x.com", "pw123")
	aliceCookie := app.login(t, "a@x.com", "pw123")
	app.do(formReq("/post", url.Values{"title": {"Hi"}, "content": {"World"}}), aliceCookie)
	post := app.firstPost(t)

	app.register(t, "bob", "b@x.com", "pw456")
	bobCookie := app.login(t, "b@x.com", "pw456")

	editPath := "/post/edit/" + strconv.Itoa(post.ID)
	rr := app.do(httptest.NewRequest("GET", editPath, nil), bobCookie)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = app.do(formReq(editPath, url.Values{"title": {"stolen"}, "content": {"post"}}), bobCookie)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	assert.Equal(t, "Hi", app.firstPost(t).Title, "title must be unchanged")

	// The owner can still edit.
	rr = app.do(formReq(editPath, url.Values{"title": {"Hi2"}, "content": {"World"}}), aliceCookie)
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "Hi2", app.firstPost(t).Title)
}

func TestDeleteByNonOwnerIsSilentNoOp(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "alice", "a@x.com", "pw123")
	aliceCookie := app.login(t, "a@x.com", "pw123")
	app.do(formReq("/post", url.Values{"title": {"Hi"}, "content": {"World"}}), aliceCookie)
	post := app.firstPost(t)

	app.register(t, "bob", "b@x.com", "pw456")
	bobCookie := app.login(t, "b@x.com", "pw456")

	rr := app.do(formReq("/post/delete/"+strconv.Itoa(post.ID), nil), bobCookie)
	assert.Equal(t, http.StatusFound, rr.Code)

	var count int64
	app.db.Model(&models.Post{}).Count(&count)
	assert.EqualValues(t, 1, count, "post must survive a non-owner delete")

	// Deleting a post that never existed also just redirects.
	rr = app.do(formReq("/post/delete/9999", nil), aliceCookie)
	assert.Equal(t, http.StatusFound, rr.Code)
}

func TestHomeWithNoPosts(t *testing.T) {
	app := newTestApp(t)
	rr := app.do(httptest.NewRequest("GET", "/", nil), nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "No posts yet.")
	assert.NotContains(t, rr.Body.String(), "Featured")
}

func TestPostDetailMissing(t *testing.T) {
	app := newTestApp(t)
	rr := app.do(httptest.NewRequest("GET", "/posts/42", nil), nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "Post not found")
}

func TestLogoutEndsSession(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "alice", "a@x.com", "pw123")
	cookie := app.login(t, "a@x.com", "pw123")

	rr := app.do(httptest.NewRequest("GET", "/logout", nil), cookie)
	require.Equal(t, http.StatusFound, rr.Code)
	require.Equal(t, "/", rr.Header().Get("Location"))

	// The old token no longer authenticates.
	rr = app.do(httptest.NewRequest("GET", "/myposts", nil), cookie)
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/login", rr.Header().Get("Location"))

	// Logout while anonymous still redirects home.
	rr = app.do(httptest.NewRequest("GET", "/logout", nil), nil)
	assert.Equal(t, http.StatusFound, rr.Code)
	assert.Equal(t, "/", rr.Header().Get("Location"))
}

func TestCreatePostWithImage(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "alice", "a@x.com", "pw123")
	cookie := app.login(t, "a@x.com", "pw123")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	require.NoError(t, mw.WriteField("title", "With image"))
	require.NoError(t, mw.WriteField("content", "body"))
	fw, err := mw.CreateFormFile("image", "cat.jpg")
	require.NoError(t, err)
	fw.Write([]byte("jpeg bytes"))
	mw.Close()

	req := httptest.NewRequest("POST", "/post", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	rr := app.do(req, cookie)
	require.Equal(t, http.StatusFound, rr.Code)

	post := app.firstPost(t)
	require.NotNil(t, post.Image)
	assert.True(t, strings.HasPrefix(*post.Image, uploads.PublicPrefix))
	assert.Equal(t, ".jpg", filepath.Ext(*post.Image))

	// The file actually landed in the upload dir.
	name := strings.TrimPrefix(*post.Image, uploads.PublicPrefix)
	data, err := os.ReadFile(filepath.Join(app.uploadDir, name))
	require.NoError(t, err)
	assert.Equal(t, "jpeg bytes", string(data))
}

func TestEditWithoutImageKeepsExisting(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "alice", "a@x.com", "pw123")
	cookie := app.login(t, "a@x.com", "pw123")

	image := "/uploads/keep.png"
	var user models.User
	require.NoError(t, app.db.First(&user).Error)
	require.NoError(t, app.db.Create(&models.Post{Title: "t", Content: "c", Image: &image, UserID: user.ID}).Error)
	post := app.firstPost(t)

	rr := app.do(formReq("/post/edit/"+strconv.Itoa(post.ID), url.Values{
		"title":   {"t2"},
		"content": {"c2"},
	}), cookie)
	require.Equal(t, http.StatusFound, rr.Code)

	updated := app.firstPost(t)
	assert.Equal(t, "t2", updated.Title)
	require.NotNil(t, updated.Image)
	assert.Equal(t, image, *updated.Image)
}

func TestMyPostsListsOnlyOwn(t *testing.T) {
	app := newTestApp(t)
	app.register(t, "alice", "a@x.com", "pw123")
	aliceCookie := app.login(t, "a@x.com", "pw123")
	app.register(t, "bob", "b@x.com", "pw456")
	bobCookie := app.login(t, "b@x.com", "pw456")

	app.do(formReq("/post", url.Values{"title": {"alice post"}, "content": {"a"}}), aliceCookie)
	app.do(formReq("/post", url.Values{"title": {"bob post"}, "content": {"b"}}), bobCookie)

	rr := app.do(httptest.NewRequest("GET", "/myposts", nil), aliceCookie)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "alice post")
	assert.NotContains(t, rr.Body.String(), "bob post")
}

func TestHealthz(t *testing.T) {
	app := newTestApp(t)
	rr := app.do(httptest.NewRequest("GET", "/healthz", nil), nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `{"status": "ok"}`, rr.Body.String())
}
