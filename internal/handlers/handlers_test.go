package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	apperrors "gymhub/internal/errors"
	"gymhub/internal/middleware"
	"gymhub/internal/models"
	"gymhub/internal/service"
	"gymhub/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testEnv struct {
	router *gin.Engine
	stores *stores
}

func setupRouter(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Setup()

	st := newStores()
	users := service.NewUserService(st.users, nil, nil, bcrypt.MinCost)
	services := &service.Services{
		Activities: service.NewActivityService(st.activities),
		Rooms:      service.NewRoomService(st.rooms),
		Sessions:   service.NewSessionService(st.sessions),
		Bookings:   service.NewBookingService(st.bookings, nil),
		Blogs:      service.NewBlogService(st.blogs),
		Users:      users,
		Imports:    service.NewImportService(st.activities, st.rooms, nil, nil, 2),
	}
	h := NewHandlers(services, 1<<20)

	r := gin.New()
	r.POST("/activities", h.CreateActivity)
	r.GET("/activities", h.ListActivities)
	r.GET("/activities/:id", h.GetActivity)
	r.PATCH("/activities", h.UpdateActivity)
	r.DELETE("/activities", h.DeleteActivity)
	r.POST("/rooms", h.CreateRoom)
	r.GET("/rooms", h.ListRooms)
	r.POST("/sessions", h.CreateSession)
	r.GET("/top-sessions/:amount", h.TopSessions)
	r.POST("/bookings", h.CreateBooking)
	r.GET("/bookings/:id", h.GetBooking)
	r.PATCH("/bookings", h.UpdateBooking)
	r.GET("/my-bookings/:user_id", h.ListUserBookings)
	r.POST("/blogs", h.CreateBlog)
	r.PATCH("/blogs", h.UpdateBlog)
	r.GET("/my-blogs/:user_id", h.ListUserBlogs)
	r.POST("/upload-xml-activities", h.UploadActivities)
	r.POST("/upload-xml-rooms", h.UploadRooms)
	r.POST("/users/register", h.Register)
	r.POST("/users/login", h.Login)
	r.POST("/users/logout", h.Logout)
	r.POST("/users", middleware.Auth(users, nil, models.RoleAdmin), h.CreateUser)
	r.GET("/users", middleware.Auth(users, nil, models.RoleAdmin, models.RoleTrainer), h.ListUsers)
	r.GET("/users/:id", h.GetUser)
	r.GET("/users/by-key/:key", h.GetUserByKey)
	r.PATCH("/users", middleware.Auth(users, nil, models.RoleAdmin, models.RoleTrainer), h.UpdateUser)
	r.DELETE("/users", h.DeleteUser)

	return &testEnv{router: r, stores: st}
}

type envelope struct {
	Status            int                    `json:"status"`
	Message           string                 `json:"message"`
	AuthenticationKey string                 `json:"authenticationKey"`
	Errors            []validation.Violation `json:"errors"`
	Activity          *models.Activity       `json:"activity"`
	Activities        []models.Activity      `json:"activities"`
	Sessions          []models.Session       `json:"sessions"`
	Booking           *models.Booking        `json:"booking"`
	Bookings          []models.UserBooking   `json:"bookings"`
	Blog              *models.Blog           `json:"blog"`
	Blogs             []models.Blog          `json:"blogs"`
	User              *models.User           `json:"user"`
	Users             []models.User          `json:"users"`
}

func (e *testEnv) do(t *testing.T, method, path, body string, headers ...string) (int, envelope) {
	t.Helper()
	var reader *strings.Reader
	if body != "" {
		reader = strings.NewReader(body)
	} else {
		reader = strings.NewReader("")
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}

	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	assert.Equal(t, w.Code, env.Status)
	return w.Code, env
}

func TestActivityLifecycle(t *testing.T) {
	env := setupRouter(t)

	code, resp := env.do(t, http.MethodGet, "/activities", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "No activities available", resp.Message)

	code, resp = env.do(t, http.MethodPost, "/activities",
		`{"activity_id": 99, "activity_name":"Yoga","activity_description":"Stretch","activity_duration":"45"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Created activity", resp.Message)
	require.NotNil(t, resp.Activity)
	assert.Equal(t, int64(1), resp.Activity.ID)
	assert.Equal(t, int64(45), resp.Activity.Duration)

	code, resp = env.do(t, http.MethodGet, "/activities/1", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Got activity by ID", resp.Message)
	assert.Equal(t, "Yoga", resp.Activity.Name)

	code, resp = env.do(t, http.MethodPatch, "/activities",
		`{"activity_id":"1","activity_name":"Hot Yoga","activity_description":"Warm","activity_duration":60}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Activity updated", resp.Message)

	code, resp = env.do(t, http.MethodGet, "/activities", "")
	assert.Equal(t, http.StatusOK, code)
	require.Len(t, resp.Activities, 1)
	assert.Equal(t, "Hot Yoga", resp.Activities[0].Name)

	code, resp = env.do(t, http.MethodDelete, "/activities", `{"activity_id":1}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Deleted activity by ID", resp.Message)

	code, _ = env.do(t, http.MethodDelete, "/activities", `{"activity_id":1}`)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestUpdateWithoutIDIs404(t *testing.T) {
	env := setupRouter(t)

	code, resp := env.do(t, http.MethodPatch, "/activities",
		`{"activity_name":"Yoga","activity_description":"Stretch","activity_duration":45}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Cannot find activity to update without ID", resp.Message)

	code, _ = env.do(t, http.MethodPatch, "/activities",
		`{"activity_id":7,"activity_name":"Yoga","activity_description":"Stretch","activity_duration":45}`)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestValidationErrorsUseWireNames(t *testing.T) {
	env := setupRouter(t)

	code, resp := env.do(t, http.MethodPost, "/activities", `{"activity_description":"x","activity_duration":10}`)
	assert.Equal(t, http.StatusBadRequest, code)
	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, "activity_name", resp.Errors[0].Field)
	assert.Equal(t, "required", resp.Errors[0].Rule)

	code, resp = env.do(t, http.MethodPost, "/rooms", `{"room_location":"North","room_number":"12a"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, "room_number", resp.Errors[0].Field)

	code, resp = env.do(t, http.MethodGet, "/activities/0", "")
	assert.Equal(t, http.StatusBadRequest, code)
	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, "id", resp.Errors[0].Field)
}

func TestStoreFailureHidesCause(t *testing.T) {
	env := setupRouter(t)
	env.stores.activities.err = apperrors.Store("query failed", errors.New("pq: connection refused"))

	code, resp := env.do(t, http.MethodGet, "/activities", "")
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "Failed to get all activities", resp.Message)
}

func TestTopSessions(t *testing.T) {
	env := setupRouter(t)
	for i := 1; i <= 3; i++ {
		when := time.Now().Add(time.Duration(i) * time.Hour).Format("2006-01-02T15:04")
		code, _ := env.do(t, http.MethodPost, "/sessions",
			`{"session_datetime":"`+when+`","session_room_id":1,"session_activity_id":"1","session_trainer_user_id":2}`)
		require.Equal(t, http.StatusOK, code)
	}

	code, resp := env.do(t, http.MethodGet, "/top-sessions/2", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Get top sessions", resp.Message)
	assert.Len(t, resp.Sessions, 2)

	code, _ = env.do(t, http.MethodGet, "/top-sessions/two", "")
	assert.Equal(t, http.StatusBadRequest, code)

	code, _ = env.do(t, http.MethodGet, "/top-sessions/0", "")
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestUserScopedListsAreEmptyNotMissing(t *testing.T) {
	env := setupRouter(t)

	code, resp := env.do(t, http.MethodGet, "/my-bookings/5", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Got all bookings by user ID", resp.Message)
	assert.Empty(t, resp.Bookings)

	code, _ = env.do(t, http.MethodPost, "/bookings", `{"booking_user_id":5,"booking_session_id":"3"}`)
	require.Equal(t, http.StatusOK, code)

	_, resp = env.do(t, http.MethodGet, "/my-bookings/5", "")
	require.Len(t, resp.Bookings, 1)
	assert.Equal(t, int64(3), resp.Bookings[0].Booking.SessionID)

	code, resp = env.do(t, http.MethodGet, "/my-blogs/5", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Empty(t, resp.Blogs)
}

func TestBookingUpdateKeepsCreatedDatetime(t *testing.T) {
	env := setupRouter(t)

	code, resp := env.do(t, http.MethodPost, "/bookings", `{"booking_user_id":5,"booking_session_id":3}`)
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, resp.Booking)
	created := resp.Booking.CreatedDatetime
	require.False(t, created.IsZero())

	code, resp = env.do(t, http.MethodPatch, "/bookings",
		`{"booking_id":1,"booking_user_id":6,"booking_session_id":4,"booking_created_datetime":"2001-01-01T00:00:00Z"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Booking updated", resp.Message)
	require.NotNil(t, resp.Booking)
	assert.Equal(t, int64(6), resp.Booking.UserID)
	assert.True(t, created.Equal(resp.Booking.CreatedDatetime))

	code, resp = env.do(t, http.MethodGet, "/bookings/1", "")
	require.Equal(t, http.StatusOK, code)
	require.NotNil(t, resp.Booking)
	assert.Equal(t, int64(4), resp.Booking.SessionID)
	assert.True(t, created.Equal(resp.Booking.CreatedDatetime))

	code, _ = env.do(t, http.MethodPatch, "/bookings", `{"booking_id":9,"booking_user_id":6,"booking_session_id":4}`)
	assert.Equal(t, http.StatusNotFound, code)
}

func TestBlogUpdateWithoutID(t *testing.T) {
	env := setupRouter(t)

	code, resp := env.do(t, http.MethodPatch, "/blogs", `{"blog_title":"t","blog_content":"c","blog_user_id":1}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Cannot find blog to update without ID", resp.Message)
}

const registerBody = `{"user_email":"ann@example.com","user_password":"secret","user_role":"Admin",
	"user_firstname":"Ann","user_lastname":"Lee","user_phone":"0400","user_address":"1 Main St"}`

func TestRegisterForcesMemberAndRejectsDuplicate(t *testing.T) {
	env := setupRouter(t)

	code, resp := env.do(t, http.MethodPost, "/users/register", registerBody)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Registration successful", resp.Message)
	assert.Equal(t, models.RoleMember, resp.User.Role)
	assert.True(t, strings.HasPrefix(resp.User.Password, "$2"))

	code, resp = env.do(t, http.MethodPost, "/users/register", registerBody)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "A user with that email already exists", resp.Message)
}

func TestLoginLogout(t *testing.T) {
	env := setupRouter(t)
	_, _ = env.do(t, http.MethodPost, "/users/register", registerBody)

	code, resp := env.do(t, http.MethodPost, "/users/login", `{"user_email":"ann@example.com","user_password":"wrong"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid credentials", resp.Message)

	code, resp = env.do(t, http.MethodPost, "/users/login", `{"user_email":"nobody@example.com","user_password":"secret"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid credentials", resp.Message)

	code, resp = env.do(t, http.MethodPost, "/users/login", `{"user_email":"ann@example.com","user_password":"secret"}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "User logged in", resp.Message)
	key := resp.AuthenticationKey
	require.NotEmpty(t, key)

	code, resp = env.do(t, http.MethodGet, "/users/by-key/"+key, "")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ann@example.com", resp.User.Email)

	code, resp = env.do(t, http.MethodPost, "/users/logout", `{"user_authenticationkey":"`+key+`"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "User logged out", resp.Message)

	code, _ = env.do(t, http.MethodPost, "/users/logout", "", middleware.AuthHeader, key)
	assert.Equal(t, http.StatusNotFound, code)

	code, resp = env.do(t, http.MethodPost, "/users/logout", "")
	assert.Equal(t, http.StatusBadRequest, code)
	require.NotEmpty(t, resp.Errors)
	assert.Equal(t, "user_authenticationkey", resp.Errors[0].Field)

	code, _ = env.do(t, http.MethodGet, "/users/by-key/"+key, "")
	assert.Equal(t, http.StatusNotFound, code)
}

// seedUser stores a user with the given role and a known authentication key.
func seedUser(t *testing.T, env *testEnv, email, role, key string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("pw"), bcrypt.MinCost)
	require.NoError(t, err)
	u := &models.User{
		Email: email, Password: string(hash), Role: role,
		Firstname: "F", Lastname: "L", Phone: "1", Address: "A",
		AuthenticationKey: &key,
	}
	require.NoError(t, env.stores.users.Create(t.Context(), u))
	return u
}

func TestUsersRequireRole(t *testing.T) {
	env := setupRouter(t)
	seedUser(t, env, "admin@example.com", models.RoleAdmin, "admin-key")
	seedUser(t, env, "member@example.com", models.RoleMember, "member-key")

	code, resp := env.do(t, http.MethodGet, "/users", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Authentication key missing", resp.Message)

	code, _ = env.do(t, http.MethodGet, "/users?authenticationKey=stale", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = env.do(t, http.MethodGet, "/users", "", middleware.AuthHeader, "member-key")
	assert.Equal(t, http.StatusForbidden, code)

	code, resp = env.do(t, http.MethodGet, "/users", "", middleware.AuthHeader, "admin-key")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, resp.Users, 2)

	code, resp = env.do(t, http.MethodPost, "/users",
		`{"authenticationKey":"admin-key","user_email":"coach@example.com","user_password":"pw","user_role":"Trainer",
		"user_firstname":"C","user_lastname":"D","user_phone":"2","user_address":"B"}`)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Created new user", resp.Message)
	assert.Equal(t, models.RoleTrainer, resp.User.Role)
}

func TestUpdateUserNestedBodyKeepsKey(t *testing.T) {
	env := setupRouter(t)
	seedUser(t, env, "admin@example.com", models.RoleAdmin, "admin-key")
	member := seedUser(t, env, "member@example.com", models.RoleMember, "member-key")

	body := `{"authenticationKey":"admin-key","user":{"user_id":` + jsonInt(member.ID) + `,
		"user_email":"member@example.com","user_password":"` + member.Password + `","user_role":"Trainer",
		"user_firstname":"New","user_lastname":"L","user_phone":"1","user_address":"A"}}`
	code, resp := env.do(t, http.MethodPatch, "/users", body)
	require.Equal(t, http.StatusOK, code, resp.Message)
	assert.Equal(t, "Updated user", resp.Message)

	stored, err := env.stores.users.GetByID(t.Context(), member.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", stored.Firstname)
	assert.Equal(t, models.RoleTrainer, stored.Role)
	assert.Equal(t, member.Password, stored.Password)
	require.NotNil(t, stored.AuthenticationKey)
	assert.Equal(t, "member-key", *stored.AuthenticationKey)
}

func TestUpdateUserFlatBodyAndMissingID(t *testing.T) {
	env := setupRouter(t)
	seedUser(t, env, "admin@example.com", models.RoleAdmin, "admin-key")

	code, resp := env.do(t, http.MethodPatch, "/users",
		`{"user_email":"x@example.com","user_password":"pw","user_role":"Member",
		"user_firstname":"F","user_lastname":"L","user_phone":"1","user_address":"A"}`,
		middleware.AuthHeader, "admin-key")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "Cannot find user to update without ID", resp.Message)

	code, resp = env.do(t, http.MethodPatch, "/users",
		`{"user_id":1,"user_email":"not-an-email","user_password":"pw","user_role":"Boss",
		"user_firstname":"F","user_lastname":"L","user_phone":"1","user_address":"A"}`,
		middleware.AuthHeader, "admin-key")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Len(t, resp.Errors, 2)
}

func jsonInt(v int64) string {
	b, _ := json.Marshal(v)
	return string(b)
}

func upload(t *testing.T, env *testEnv, path, field, content string) (int, envelope) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	if field != "" {
		fw, err := mw.CreateFormFile(field, "upload.xml")
		require.NoError(t, err)
		_, err = fw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	var resp envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), w.Body.String())
	return w.Code, resp
}

func TestUploadActivities(t *testing.T) {
	env := setupRouter(t)
	doc := `<activity-upload operation="insert"><activities>
		<activity><activity_name>Yoga</activity_name><activity_description>Stretch</activity_description><activity_duration>45</activity_duration></activity>
		<activity><activity_name>Boxing</activity_name><activity_description>Punch</activity_description><activity_duration>60</activity_duration></activity>
	</activities></activity-upload>`

	code, resp := upload(t, env, "/upload-xml-activities", "xml-file", doc)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "XML Upload insert successful", resp.Message)

	all, err := env.stores.activities.GetAll(t.Context())
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestUploadRoomsErrors(t *testing.T) {
	env := setupRouter(t)

	code, resp := upload(t, env, "/upload-xml-rooms", "", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "No file selected", resp.Message)

	code, resp = upload(t, env, "/upload-xml-rooms", "xml-file",
		`<room-upload operation="upsert"><rooms/></room-upload>`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "XML Contains invalid operation element value", resp.Message)

	code, resp = upload(t, env, "/upload-xml-rooms", "xml-file", `<room-upload operation="insert"><rooms>`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.True(t, strings.HasPrefix(resp.Message, "Error parsing XML - "), resp.Message)

	code, resp = upload(t, env, "/upload-xml-rooms", "xml-file",
		`<room-upload operation="update"><rooms><room><room_id>9</room_id><room_location>N</room_location><room_number>1</room_number></room></rooms></room-upload>`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.True(t, strings.HasPrefix(resp.Message, "XML upload failed on database operation - "), resp.Message)
}

func TestUploadStoreFailureHidesDriverText(t *testing.T) {
	env := setupRouter(t)
	env.stores.rooms.err = apperrors.Store("failed to create room", errors.New("pq: connection refused"))

	code, resp := upload(t, env, "/upload-xml-rooms", "xml-file",
		`<room-upload operation="insert"><rooms><room><room_location>N</room_location><room_number>1</room_number></room></rooms></room-upload>`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "XML upload failed on database operation - failed to create room", resp.Message)
	assert.NotContains(t, resp.Message, "pq:")

	env.stores.rooms.err = errors.New("pq: connection refused")
	code, resp = upload(t, env, "/upload-xml-rooms", "xml-file",
		`<room-upload operation="insert"><rooms><room><room_location>N</room_location><room_number>1</room_number></room></rooms></room-upload>`)
	assert.Equal(t, http.StatusInternalServerError, code)
	assert.Equal(t, "XML upload failed on database operation - record could not be saved", resp.Message)
}
