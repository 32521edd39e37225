package api

import (
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
)

// ---------------------------------------------------------------------------
// Fake Kommer backend. The real one is a black box behind REST; this double
// mirrors its observable contract: bearer auth, the error envelope, string
// post types on reads and integer codes on create.
// ---------------------------------------------------------------------------

const testSecret = "test-secret"

type fakeUser struct {
	id           string
	email        string
	userName     string
	passwordHash []byte
	role         string
	profileID    int
}

type fakeBackend struct {
	e *echo.Echo

	mu             sync.Mutex
	users          map[string]fakeUser // by email
	posts          map[int]postWire
	businesses     map[int]businessWire
	branches       []branchWire
	favourites     map[int]bool
	views          map[int]int
	promoCopies    map[int]int
	lastCreate     *createPostRequest
	lastRegister   map[string]any
	lastAuthHeader string
	failWith       int // when non-zero, every route returns this status
}

func newFakeBackend(t *testing.T) *fakeBackend {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}

	b := &fakeBackend{
		users: map[string]fakeUser{
			"owner@example.com": {id: "u1", email: "owner@example.com", userName: "owner", passwordHash: hash, role: "Business", profileID: 7},
			"fan@example.com":   {id: "u2", email: "fan@example.com", userName: "fan", passwordHash: hash, role: "Client", profileID: 12},
		},
		posts:       map[int]postWire{},
		businesses:  map[int]businessWire{},
		favourites:  map[int]bool{},
		views:       map[int]int{},
		promoCopies: map[int]int{},
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(b.recordAuth)

	e.POST("/api/users/login", b.login)
	e.POST("/api/users/client/register", b.register("Client"))
	e.POST("/api/users/business/register", b.register("Business"))
	e.GET("/api/users/me", b.me)
	e.GET("/api/Post", b.listPosts)
	e.GET("/api/post/:id", b.getPost)
	e.POST("/api/Post/create", b.createPost)
	e.GET("/api/business", b.listBusinesses)
	e.GET("/api/business/:id", b.getBusiness)
	e.GET("/api/business/:id/branches", b.listBusinessBranches)
	e.GET("/api/branch", b.listBranches)
	e.GET("/api/Post/favourites", b.listFavourites)
	e.POST("/api/Post/favourites/:id", b.addFavourite)
	e.DELETE("/api/Post/favourites/:id", b.removeFavourite)
	e.GET("/api/Analitics", b.analytics)
	e.POST("/api/Analitics/:id/view", b.countView)
	e.POST("/api/Analitics/:id/promo-copy", b.countPromoCopy)
	e.POST("/api/YandexGpt/ask", b.ask)

	b.e = e
	return b
}

// start serves the fake backend and returns a Client pointed at it.
func (b *fakeBackend) start(t *testing.T, tokens *memStore) *Client {
	t.Helper()
	srv := httptest.NewServer(b.e)
	t.Cleanup(srv.Close)
	return New(Options{BaseURL: srv.URL, Timeout: 2 * time.Second, Tokens: tokens, Logger: zerolog.Nop()})
}

func (b *fakeBackend) recordAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		b.mu.Lock()
		b.lastAuthHeader = c.Request().Header.Get("Authorization")
		fail := b.failWith
		b.mu.Unlock()
		if fail != 0 {
			return c.JSON(fail, map[string]string{"error": "boom"})
		}
		return next(c)
	}
}

func (b *fakeBackend) issueToken(t *testing.T, email string) string {
	t.Helper()
	u := b.users[email]
	claims := jwt.MapClaims{
		"sub": u.id,
		"exp": time.Now().Add(time.Hour).Unix(),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	return token
}

func (b *fakeBackend) authedUser(c echo.Context) (fakeUser, bool) {
	header := c.Request().Header.Get("Authorization")
	if len(header) < 8 || header[:7] != "Bearer " {
		return fakeUser{}, false
	}
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(header[7:], claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testSecret), nil
	})
	if err != nil || !parsed.Valid {
		return fakeUser{}, false
	}
	sub, _ := claims["sub"].(string)
	for _, u := range b.users {
		if u.id == sub {
			return u, true
		}
	}
	return fakeUser{}, false
}

func (b *fakeBackend) login(c echo.Context) error {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	u, ok := b.users[req.Email]
	if !ok || bcrypt.CompareHashAndPassword(u.passwordHash, []byte(req.Password)) != nil {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid credentials"})
	}
	claims := jwt.MapClaims{"sub": u.id, "exp": time.Now().Add(time.Hour).Unix()}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "signing failed"})
	}
	return c.JSON(http.StatusOK, map[string]string{"accessToken": token})
}

func (b *fakeBackend) me(c echo.Context) error {
	u, ok := b.authedUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"id":        u.id,
		"email":     u.email,
		"userName":  u.userName,
		"userType":  u.role,
		"profileId": u.profileID,
	})
}

func (b *fakeBackend) listPosts(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]postWire, 0, len(b.posts))
	for _, p := range b.posts {
		out = append(out, p)
	}
	return c.JSON(http.StatusOK, out)
}

func (b *fakeBackend) getPost(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	b.mu.Lock()
	p, ok := b.posts[id]
	b.mu.Unlock()
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "post not found"})
	}
	return c.JSON(http.StatusOK, p)
}

var wireTypeTags = map[int]string{0: "event", 1: "promotion", 2: "discount"}

func (b *fakeBackend) createPost(c echo.Context) error {
	if _, ok := b.authedUser(c); !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}
	var req createPostRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	b.mu.Lock()
	b.lastCreate = &req
	id := len(b.posts) + 100
	wire := postWire{
		ID:        id,
		Title:     req.Title,
		Content:   req.Content,
		Type:      wireTypeTags[req.Type],
		ImageURL:  req.ImageURL,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
	}
	b.posts[id] = wire
	b.mu.Unlock()

	return c.JSON(http.StatusCreated, wire)
}

func (b *fakeBackend) listFavourites(c echo.Context) error {
	if _, ok := b.authedUser(c); !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	ids := make([]int, 0, len(b.favourites))
	for id, on := range b.favourites {
		if on {
			ids = append(ids, id)
		}
	}
	return c.JSON(http.StatusOK, ids)
}

func (b *fakeBackend) addFavourite(c echo.Context) error {
	if _, ok := b.authedUser(c); !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}
	id, _ := strconv.Atoi(c.Param("id"))
	b.mu.Lock()
	b.favourites[id] = true
	b.mu.Unlock()
	return c.NoContent(http.StatusOK)
}

func (b *fakeBackend) removeFavourite(c echo.Context) error {
	if _, ok := b.authedUser(c); !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}
	id, _ := strconv.Atoi(c.Param("id"))
	b.mu.Lock()
	delete(b.favourites, id)
	b.mu.Unlock()
	return c.NoContent(http.StatusOK)
}

func (b *fakeBackend) register(role string) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req map[string]any
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
		}
		email, _ := req["email"].(string)
		if email == "" {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "email is required"})
		}

		b.mu.Lock()
		b.lastRegister = req
		userName, _ := req["userName"].(string)
		u := fakeUser{id: "u" + strconv.Itoa(len(b.users)+1), email: email, userName: userName, role: role, profileID: len(b.users) + 50}
		b.users[email] = u
		b.mu.Unlock()

		claims := jwt.MapClaims{"sub": u.id, "exp": time.Now().Add(time.Hour).Unix()}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "signing failed"})
		}
		return c.JSON(http.StatusCreated, map[string]string{"accessToken": token})
	}
}

func (b *fakeBackend) listBusinesses(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]businessWire, 0, len(b.businesses))
	for _, w := range b.businesses {
		out = append(out, w)
	}
	return c.JSON(http.StatusOK, out)
}

func (b *fakeBackend) getBusiness(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	b.mu.Lock()
	w, ok := b.businesses[id]
	b.mu.Unlock()
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "business not found"})
	}
	return c.JSON(http.StatusOK, w)
}

func (b *fakeBackend) listBusinessBranches(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]branchWire, 0)
	for _, br := range b.branches {
		if br.BusinessProfileID == id {
			out = append(out, br)
		}
	}
	return c.JSON(http.StatusOK, out)
}

func (b *fakeBackend) listBranches(c echo.Context) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	return c.JSON(http.StatusOK, b.branches)
}

func (b *fakeBackend) analytics(c echo.Context) error {
	u, ok := b.authedUser(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
	}
	if u.role != "Business" {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
	}
	return c.JSON(http.StatusOK, map[string]any{
		"totalViews":       42,
		"totalLikes":       7,
		"subscribersCount": 3,
		"postAnalitics": []map[string]any{
			{"title": "Jazz Night", "type": "event", "guestViews": 30, "subscriberViews": 12},
		},
	})
}

func (b *fakeBackend) countView(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	b.mu.Lock()
	b.views[id]++
	b.mu.Unlock()
	return c.NoContent(http.StatusOK)
}

func (b *fakeBackend) countPromoCopy(c echo.Context) error {
	id, _ := strconv.Atoi(c.Param("id"))
	b.mu.Lock()
	b.promoCopies[id]++
	b.mu.Unlock()
	return c.NoContent(http.StatusOK)
}

func (b *fakeBackend) ask(c echo.Context) error {
	var req askRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	return c.JSON(http.StatusOK, askResponse{Answer: "polished: " + req.Prompt})
}

// memStore is an in-memory ports.TokenStore for tests.
type memStore struct {
	mu    sync.Mutex
	token string
}

func (s *memStore) Load() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *memStore) Save(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *memStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
