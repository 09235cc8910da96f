package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"errors"
	"image"
	"image/color"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trueshade/api/analysis"
	"github.com/trueshade/api/catalog"
	"github.com/trueshade/api/colorscience"
	"github.com/trueshade/api/datastore"
	"github.com/trueshade/api/matcher"
	"github.com/trueshade/api/models"
)

const testSecret = "test-secret"

var errNoRows = datastore.NoRowsError{NoRows: true, Err: sql.ErrNoRows}

type fakeUserRepo struct {
	datastore.UserRepository
	users    map[string]models.User
	password string
	devices  []models.UserDevice
}

func (f *fakeUserRepo) Get(userID string) (models.User, error) {
	user, ok := f.users[userID]
	if !ok {
		return models.User{}, errNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) GetUserByEmail(email string) (models.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return models.User{}, errNoRows
}

func (f *fakeUserRepo) Create(user models.User) (models.User, error) {
	f.users[user.UserID] = user
	return user, nil
}

func (f *fakeUserRepo) Update(user models.User) (models.User, error) {
	f.users[user.UserID] = user
	return user, nil
}

func (f *fakeUserRepo) ValidateAndGetUser(creds models.Credentials) (models.User, error) {
	user, err := f.GetUserByEmail(creds.Email)
	if err != nil || creds.Password != f.password {
		return models.User{}, datastore.ErrInvalidCredentials
	}
	return user, nil
}

func (f *fakeUserRepo) CreateDevice(device models.UserDevice) error {
	f.devices = append(f.devices, device)
	return nil
}

func (f *fakeUserRepo) GetDeviceByFingerprint(userID, fingerprint string) (models.UserDevice, error) {
	for _, d := range f.devices {
		if d.UserID == userID && d.Fingerprint == fingerprint {
			return d, nil
		}
	}
	return models.UserDevice{}, errNoRows
}

type fakeAnalysisRepo struct {
	datastore.AnalysisRepository
	created []models.AnalysisRecord
	limit   int
}

func (f *fakeAnalysisRepo) Create(record models.AnalysisRecord) (models.AnalysisRecord, error) {
	f.created = append(f.created, record)
	return record, nil
}

func (f *fakeAnalysisRepo) ListByUser(userID string, limit int) ([]models.AnalysisRecord, error) {
	f.limit = limit
	var out []models.AnalysisRecord
	for _, r := range f.created {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAnalysisRepo) GetLatest(userID string) (models.AnalysisRecord, error) {
	for i := len(f.created) - 1; i >= 0; i-- {
		if f.created[i].UserID == userID {
			return f.created[i], nil
		}
	}
	return models.AnalysisRecord{}, errNoRows
}

type fakeProductRepo struct {
	datastore.ProductRepository
	products map[string]models.Product
}

func (f *fakeProductRepo) GetByID(productID string) (models.Product, error) {
	p, ok := f.products[productID]
	if !ok {
		return models.Product{}, errNoRows
	}
	return p, nil
}

type fakeFavoriteRepo struct {
	datastore.FavoriteRepository
	favorites map[string]bool
}

func (f *fakeFavoriteRepo) Add(userID, productID string) (models.Favorite, error) {
	f.favorites[userID+"/"+productID] = true
	return models.Favorite{FavoriteID: len(f.favorites), UserID: userID, ProductID: productID}, nil
}

func (f *fakeFavoriteRepo) Remove(userID, productID string) (bool, error) {
	key := userID + "/" + productID
	if !f.favorites[key] {
		return false, nil
	}
	delete(f.favorites, key)
	return true, nil
}

func (f *fakeFavoriteRepo) ListByUser(userID string) ([]models.FavoriteProduct, error) {
	return []models.FavoriteProduct{}, nil
}

type fakePruner struct {
	deleted int64
	err     error
}

func (f fakePruner) PruneOnce(now time.Time) (int64, error) { return f.deleted, f.err }

type testServer struct {
	app       *Application
	handler   http.Handler
	users     *fakeUserRepo
	analyses  *fakeAnalysisRepo
	favorites *fakeFavoriteRepo
}

func newTestServer(t *testing.T, withDatabase bool) *testServer {
	t.Helper()

	loader := catalog.NewLoader(catalog.BuiltinSource{})
	analyzer, err := analysis.NewAnalyzer(colorscience.DefaultEstimatorConfig(), matcher.Default(), loader)
	require.NoError(t, err)

	app := &Application{
		Config: Config{
			JwtSecret:          testSecret,
			JwtAccessDuration:  900,
			JwtRefreshDuration: 3600,
			AllowedOrigins:     []string{"https://trueshade.app"},
			MaxImageDimension:  1024,
			MaxUploadBytes:     1 << 20,
		},
		Analyzer: analyzer,
		Catalog:  loader,
	}

	ts := &testServer{app: app}
	if withDatabase {
		ts.users = &fakeUserRepo{users: map[string]models.User{}, password: "correct horse"}
		ts.analyses = &fakeAnalysisRepo{}
		ts.favorites = &fakeFavoriteRepo{favorites: map[string]bool{}}
		app.UserRepo = ts.users
		app.AnalysisRepo = ts.analyses
		app.FavoriteRepo = ts.favorites
		app.ProductRepo = &fakeProductRepo{products: map[string]models.Product{
			"p-1": {ProductID: "p-1", Brand: "Nars", ShadeName: "Barcelona"},
		}}
	}

	ts.handler = app.BuildRoutes(http.NewServeMux())
	return ts
}

// addUser registers a user with a live device and returns its access cookie
func (ts *testServer) addUser(t *testing.T, kind string) (models.User, *http.Cookie) {
	t.Helper()

	user := models.User{UserID: "user-" + kind, Email: strings.ToLower(kind) + "@example.com", Kind: kind}
	ts.users.users[user.UserID] = user
	ts.users.devices = append(ts.users.devices, models.UserDevice{
		UserID:      user.UserID,
		Fingerprint: "fp-" + kind,
		Expiry:      time.Now().Add(time.Hour),
	})

	return user, signedCookie(t, user, "fp-"+kind, models.ScopeAuthentication)
}

func signedCookie(t *testing.T, user models.User, fingerprint, scope string) *http.Cookie {
	t.Helper()
	token, err := models.SignJWT(models.NewJWTClaims(user, fingerprint, scope, time.Now().Add(time.Hour)), testSecret)
	require.NoError(t, err)

	name := models.JWT.ACCESS_COOKIE_NAME
	if scope == models.ScopeRefresh {
		name = models.JWT.REFRESH_COOKIE_NAME
	}
	return &http.Cookie{Name: name, Value: token}
}

func (ts *testServer) do(req *http.Request, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	ts.handler.ServeHTTP(rec, req)
	return rec
}

func pixelBody(t *testing.T, rgb []int, n int, brands ...string) *bytes.Reader {
	t.Helper()
	pixels := make([][]int, n)
	for i := range pixels {
		pixels[i] = rgb
	}
	body, err := json.Marshal(models.AnalysisRequest{Pixels: pixels, Brands: brands})
	require.NoError(t, err)
	return bytes.NewReader(body)
}

var skinRGB = []int{198, 134, 80}

func TestAnalyzeJSON(t *testing.T) {
	ts := newTestServer(t, false)

	rec := ts.do(httptest.NewRequest(http.MethodPost, "/v1/analyze", pixelBody(t, skinRGB, 30)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var result models.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	lab := colorscience.RGBToLab(colorscience.Pixel{R: 198, G: 134, B: 80})
	assert.Equal(t, [3]float64{lab.L, lab.A, lab.B}, result.SkinLab)
	assert.Equal(t, 30, result.SupportingPixels)
	assert.Len(t, result.Matches, 3)
}

func TestAnalyzeSelectedBrands(t *testing.T) {
	ts := newTestServer(t, false)

	rec := ts.do(httptest.NewRequest(http.MethodPost, "/v1/analyze", pixelBody(t, skinRGB, 30, "nars")))
	require.Equal(t, http.StatusOK, rec.Code)

	var result models.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	require.Len(t, result.Matches, 1)
	assert.Len(t, result.Matches["nars"], 3)
}

func TestAnalyzeErrors(t *testing.T) {
	ts := newTestServer(t, false)

	tests := []struct {
		name   string
		method string
		body   string
		want   int
	}{
		{"too few samples", http.MethodPost, `{"pixels":[[198,134,80],[198,134,80]]}`, http.StatusUnprocessableEntity},
		{"all shadows", http.MethodPost, `{"pixels":[` + strings.TrimSuffix(strings.Repeat(`[2,2,2],`, 20), ",") + `]}`, http.StatusUnprocessableEntity},
		{"channel out of range", http.MethodPost, `{"pixels":[[198,134,300]]}`, http.StatusBadRequest},
		{"wrong arity", http.MethodPost, `{"pixels":[[198,134]]}`, http.StatusBadRequest},
		{"no pixels", http.MethodPost, `{"pixels":[]}`, http.StatusBadRequest},
		{"malformed json", http.MethodPost, `{"pixels":`, http.StatusBadRequest},
		{"wrong method", http.MethodGet, ``, http.StatusMethodNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(httptest.NewRequest(tt.method, "/v1/analyze", strings.NewReader(tt.body)))
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())

			var handlerErr HandlerError
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &handlerErr))
			assert.NotEmpty(t, handlerErr.ErrorName)
		})
	}
}

func TestAnalyzeSavesHistoryForSignedInUser(t *testing.T) {
	ts := newTestServer(t, true)
	user, cookie := ts.addUser(t, models.Member)

	rec := ts.do(httptest.NewRequest(http.MethodPost, "/v1/analyze", pixelBody(t, skinRGB, 30)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, ts.analyses.created)

	rec = ts.do(httptest.NewRequest(http.MethodPost, "/v1/analyze", pixelBody(t, skinRGB, 30)), cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, ts.analyses.created, 1)
	assert.Equal(t, user.UserID, ts.analyses.created[0].UserID)
	assert.Len(t, ts.analyses.created[0].Matches, 3)
}

func TestAnalyzeImageUpload(t *testing.T) {
	ts := newTestServer(t, false)

	img := image.NewNRGBA(image.Rect(0, 0, 20, 20))
	for y := 0; y < 20; y++ {
		for x := 0; x < 20; x++ {
			img.Set(x, y, color.NRGBA{R: 198, G: 134, B: 80, A: 255})
		}
	}
	var encoded bytes.Buffer
	require.NoError(t, png.Encode(&encoded, img))

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("image", "face.png")
	require.NoError(t, err)
	_, err = part.Write(encoded.Bytes())
	require.NoError(t, err)
	require.NoError(t, form.WriteField("regions", `[{"name":"cheek","points":[{"x":0,"y":0},{"x":1,"y":0},{"x":1,"y":1},{"x":0,"y":1}]}]`))
	require.NoError(t, form.WriteField("brands", "Fenty, Nars"))
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())

	rec := ts.do(req)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result models.AnalysisResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 400, result.SupportingPixels)
	assert.Len(t, result.Matches, 2)
	assert.Contains(t, result.Matches, "Fenty")
	assert.Contains(t, result.Matches, "Nars")
}

func TestAnalyzeRejectsGarbageImage(t *testing.T) {
	ts := newTestServer(t, false)

	var body bytes.Buffer
	form := multipart.NewWriter(&body)
	part, err := form.CreateFormFile("image", "face.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("not an image"))
	require.NoError(t, err)
	require.NoError(t, form.Close())

	req := httptest.NewRequest(http.MethodPost, "/v1/analyze", &body)
	req.Header.Set("Content-Type", form.FormDataContentType())

	rec := ts.do(req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid Image")
}

func TestAnalyzeDebug(t *testing.T) {
	ts := newTestServer(t, false)

	rec := ts.do(httptest.NewRequest(http.MethodPost, "/v1/analyze/debug", pixelBody(t, skinRGB, 30)))
	require.Equal(t, http.StatusOK, rec.Code)

	var debug models.AnalysisDebug
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &debug))
	assert.Equal(t, "success", debug.Status)
	assert.Equal(t, 30, debug.TotalPixels)
	assert.Equal(t, 30, debug.ValidPixels)
	require.NotNil(t, debug.SkinLab)

	rec = ts.do(httptest.NewRequest(http.MethodPost, "/v1/analyze/debug", pixelBody(t, []int{2, 2, 2}, 30)))
	require.Equal(t, http.StatusOK, rec.Code)

	debug = models.AnalysisDebug{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &debug))
	assert.Equal(t, "error", debug.Status)
	assert.Equal(t, 30, debug.ShadowPixels)
	assert.Nil(t, debug.SkinLab)
	assert.NotEmpty(t, debug.Error)
}

func TestBrandsAndProducts(t *testing.T) {
	ts := newTestServer(t, false)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/v1/brands", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var brands struct {
		Source string                `json:"source"`
		Brands []models.BrandSummary `json:"brands"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &brands))
	assert.Equal(t, "builtin", brands.Source)
	require.Len(t, brands.Brands, 3)

	total := 0
	for _, b := range brands.Brands {
		total += b.ShadeCount
	}
	assert.Equal(t, 89, total)

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/v1/products?brand=nars", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var products struct {
		Count    int                    `json:"count"`
		Products []models.ShadeResponse `json:"products"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &products))
	assert.Equal(t, 20, products.Count)
	assert.Equal(t, "Nars", products.Products[0].Brand)

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/v1/products?brand=Maybelline", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"count":0,"products":[]}`, rec.Body.String())
}

func TestHomeAndHealth(t *testing.T) {
	ts := newTestServer(t, false)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"database":"Local"`)

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"shade_matching":"ready"`)

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDatabaseEndpointsWithoutDatabase(t *testing.T) {
	ts := newTestServer(t, false)

	for _, path := range []string{"/v1/auth/login", "/v1/users/me", "/v1/users/me/history", "/v1/users/me/favorites"} {
		rec := ts.do(httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusServiceUnavailable, rec.Code, path)
	}
}

func TestAuthenticateRejects(t *testing.T) {
	ts := newTestServer(t, true)
	user, _ := ts.addUser(t, models.Member)

	tests := []struct {
		name   string
		cookie *http.Cookie
	}{
		{"no cookie", nil},
		{"garbage token", &http.Cookie{Name: models.JWT.ACCESS_COOKIE_NAME, Value: "abc"}},
		{"refresh token as access", func() *http.Cookie {
			c := signedCookie(t, user, "fp-Member", models.ScopeRefresh)
			c.Name = models.JWT.ACCESS_COOKIE_NAME
			return c
		}()},
		{"unknown device", signedCookie(t, user, "other-device", models.ScopeAuthentication)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/users/me", nil)
			var rec *httptest.ResponseRecorder
			if tt.cookie != nil {
				rec = ts.do(req, tt.cookie)
			} else {
				rec = ts.do(req)
			}
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestGetAndUpdateCurrentUser(t *testing.T) {
	ts := newTestServer(t, true)
	user, cookie := ts.addUser(t, models.Member)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/v1/users/me", nil), cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), user.UserID)

	rec = ts.do(httptest.NewRequest(http.MethodPut, "/v1/users/me/update", strings.NewReader(`{"displayName":"Ama"}`)), cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ama", ts.users.users[user.UserID].DisplayName)

	rec = ts.do(httptest.NewRequest(http.MethodPut, "/v1/users/me/update", strings.NewReader(`{"email":"nope"}`)), cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSignup(t *testing.T) {
	ts := newTestServer(t, true)
	ts.addUser(t, models.Member)

	tests := []struct {
		name string
		body string
		want int
	}{
		{"created", `{"displayName":"Ama","email":"ama@example.com","password":"longenough"}`, http.StatusCreated},
		{"existing email", `{"email":"member@example.com","password":"longenough"}`, http.StatusConflict},
		{"short password", `{"email":"new@example.com","password":"short"}`, http.StatusBadRequest},
		{"invalid email", `{"email":"not-an-email","password":"longenough"}`, http.StatusBadRequest},
		{"malformed json", `{`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := ts.do(httptest.NewRequest(http.MethodPost, "/v1/auth/signup", strings.NewReader(tt.body)))
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}

	created, err := ts.users.GetUserByEmail("ama@example.com")
	require.NoError(t, err)
	assert.Equal(t, models.Member, created.Kind)
	assert.NotEmpty(t, created.HashedPassword)
}

func TestLoginAndRefresh(t *testing.T) {
	ts := newTestServer(t, true)
	ts.addUser(t, models.Member)

	rec := ts.do(httptest.NewRequest(http.MethodPost, "/v1/auth/login",
		strings.NewReader(`{"email":"member@example.com","password":"wrong","deviceFingerprint":"laptop"}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(httptest.NewRequest(http.MethodPost, "/v1/auth/login",
		strings.NewReader(`{"email":"member@example.com","password":"correct horse"}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(httptest.NewRequest(http.MethodPost, "/v1/auth/login",
		strings.NewReader(`{"email":"member@example.com","password":"correct horse","deviceFingerprint":"laptop"}`)))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	cookies := map[string]*http.Cookie{}
	for _, c := range rec.Result().Cookies() {
		cookies[c.Name] = c
	}
	require.Contains(t, cookies, models.JWT.ACCESS_COOKIE_NAME)
	require.Contains(t, cookies, models.JWT.REFRESH_COOKIE_NAME)
	assert.True(t, cookies[models.JWT.ACCESS_COOKIE_NAME].HttpOnly)

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/v1/users/me", nil), cookies[models.JWT.ACCESS_COOKIE_NAME])
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = ts.do(httptest.NewRequest(http.MethodPost, "/v1/auth/refresh", nil), cookies[models.JWT.REFRESH_COOKIE_NAME])
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, rec.Result().Cookies(), 1)

	rec = ts.do(httptest.NewRequest(http.MethodPost, "/v1/auth/refresh", nil), cookies[models.JWT.ACCESS_COOKIE_NAME])
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestHistory(t *testing.T) {
	ts := newTestServer(t, true)
	_, cookie := ts.addUser(t, models.Member)

	ts.do(httptest.NewRequest(http.MethodPost, "/v1/analyze", pixelBody(t, skinRGB, 30)), cookie)

	tests := []struct {
		query     string
		want      int
		wantLimit int
	}{
		{"", http.StatusOK, 10},
		{"?limit=50", http.StatusOK, 50},
		{"?limit=1", http.StatusOK, 1},
		{"?limit=0", http.StatusBadRequest, 0},
		{"?limit=51", http.StatusBadRequest, 0},
		{"?limit=ten", http.StatusBadRequest, 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			ts.analyses.limit = 0
			rec := ts.do(httptest.NewRequest(http.MethodGet, "/v1/users/me/history"+tt.query, nil), cookie)
			require.Equal(t, tt.want, rec.Code)
			assert.Equal(t, tt.wantLimit, ts.analyses.limit)

			if tt.want == http.StatusOK {
				var history models.AnalysisHistory
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
				assert.Equal(t, 1, history.TotalAnalyses)
			}
		})
	}
}

func TestLatestAnalysis(t *testing.T) {
	ts := newTestServer(t, true)
	_, cookie := ts.addUser(t, models.Member)

	rec := ts.do(httptest.NewRequest(http.MethodGet, "/v1/users/me/latest", nil), cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	ts.do(httptest.NewRequest(http.MethodPost, "/v1/analyze", pixelBody(t, skinRGB, 30)), cookie)

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/v1/users/me/latest", nil), cookie)
	require.Equal(t, http.StatusOK, rec.Code)

	var latest models.AnalysisRecord
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &latest))
	assert.Equal(t, ts.analyses.created[0].AnalysisID, latest.AnalysisID)
}

func TestFavorites(t *testing.T) {
	ts := newTestServer(t, true)
	_, cookie := ts.addUser(t, models.Member)

	rec := ts.do(httptest.NewRequest(http.MethodPost, "/v1/users/me/favorites", strings.NewReader(`{"productId":"p-1"}`)), cookie)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = ts.do(httptest.NewRequest(http.MethodPost, "/v1/users/me/favorites", strings.NewReader(`{"productId":"missing"}`)), cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(httptest.NewRequest(http.MethodPost, "/v1/users/me/favorites", strings.NewReader(`{}`)), cookie)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = ts.do(httptest.NewRequest(http.MethodGet, "/v1/users/me/favorites", nil), cookie)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"favorites":[]}`, rec.Body.String())

	rec = ts.do(httptest.NewRequest(http.MethodDelete, "/v1/users/me/favorites/p-1", nil), cookie)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = ts.do(httptest.NewRequest(http.MethodDelete, "/v1/users/me/favorites/p-1", nil), cookie)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = ts.do(httptest.NewRequest(http.MethodPut, "/v1/users/me/favorites", nil), cookie)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestAdminPrune(t *testing.T) {
	ts := newTestServer(t, true)
	_, member := ts.addUser(t, models.Member)
	_, admin := ts.addUser(t, models.Admin)

	rec := ts.do(httptest.NewRequest(http.MethodPost, "/v1/admin/history/prune", nil), admin)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	ts.app.Pruner = fakePruner{deleted: 4}

	rec = ts.do(httptest.NewRequest(http.MethodPost, "/v1/admin/history/prune", nil), member)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = ts.do(httptest.NewRequest(http.MethodPost, "/v1/admin/history/prune", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = ts.do(httptest.NewRequest(http.MethodPost, "/v1/admin/history/prune", nil), admin)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"deleted":4}`, rec.Body.String())

	ts.app.Pruner = fakePruner{err: errors.New("lock timeout")}
	rec = ts.do(httptest.NewRequest(http.MethodPost, "/v1/admin/history/prune", nil), admin)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestOriginCheck(t *testing.T) {
	ts := newTestServer(t, false)

	req := httptest.NewRequest(http.MethodGet, "/v1/brands", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec := ts.do(req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/v1/brands", nil)
	req.Header.Set("Origin", "https://trueshade.app")
	rec = ts.do(req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "https://trueshade.app", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodOptions, "/v1/analyze", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	rec = ts.do(req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())

	ts.app.Config.DevMode = true
	req = httptest.NewRequest(http.MethodGet, "/v1/brands", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = ts.do(req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIsAllowedOrigin(t *testing.T) {
	allowed := []string{"https://trueshade.app", " https://www.trueshade.app/ "}

	tests := []struct {
		origin string
		want   bool
	}{
		{"https://trueshade.app", true},
		{"https://trueshade.app/analyze", true},
		{"https://www.trueshade.app", true},
		{"http://localhost:3000", true},
		{"https://trueshade.app.evil.example", false},
		{"https://localhost.evil.example", false},
	}

	for _, tt := range tests {
		t.Run(tt.origin, func(t *testing.T) {
			assert.Equal(t, tt.want, isAllowedOrigin(tt.origin, allowed))
		})
	}
}
