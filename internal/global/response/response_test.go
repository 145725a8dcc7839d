package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"activity-signup/config"
	"activity-signup/internal/model"
	"activity-signup/internal/store"

	"github.com/gin-gonic/gin"
	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
	config.Set(config.Default())
}

func TestErrorIs(t *testing.T) {
	wrapped := ErrActivityFull.WithOrigin(errors.New("3/2"))
	require.ErrorIs(t, wrapped, ErrActivityFull)
	require.NotErrorIs(t, wrapped, ErrAlreadyEnrolled)
	require.Equal(t, http.StatusConflict, wrapped.HTTPStatus())
	require.NotNil(t, wrapped.StackTrace())
	require.Equal(t, "Chess Club is full", ErrActivityFull.WithTips("Chess Club is full").Message)
}

func TestFailWritesStatusAndBody(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Fail(c, ErrActivityNotFound)

	require.Equal(t, http.StatusNotFound, w.Code)
	var body ResponseBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, int32(40401), body.Code)
	require.Equal(t, "Activity not found", body.Msg)
	require.Empty(t, body.Origin)
	require.True(t, c.IsAborted())
}

func TestFailPlainErrorIsInternal(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	Fail(c, errors.New("disk on fire"))
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestRecovery(t *testing.T) {
	r := gin.New()
	r.Use(func(c *gin.Context) {
		defer Recovery(c)
		c.Next()
	})
	r.GET("/boom", func(*gin.Context) { panic("boom") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestSuccess(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	Success(c, gin.H{"message": "ok"})

	var body ResponseBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, int32(200), body.Code)
	require.Equal(t, map[string]any{"message": "ok"}, body.Data)
}

func TestFromStore(t *testing.T) {
	require.Equal(t, ErrActivityFull, FromStore(store.ErrActivityFull))
	require.Equal(t, ErrNotEnrolled, FromStore(pkgerrors.Wrap(store.ErrNotEnrolled, "unregister")))
	require.Equal(t, ErrInvalidEmail, FromStore(&model.ValidationError{Field: "email", Reason: "invalid email format"}))

	verr := FromStore(&model.ValidationError{Field: "max_participants", Reason: "must be greater than 0"})
	require.ErrorIs(t, verr, ErrValidation)
	require.Equal(t, http.StatusBadRequest, verr.HTTPStatus())
	require.Contains(t, verr.Message, "max_participants")

	dbErr := FromStore(errors.New("connection reset"))
	require.ErrorIs(t, dbErr, ErrDatabase)
	require.Equal(t, http.StatusInternalServerError, dbErr.HTTPStatus())
}
